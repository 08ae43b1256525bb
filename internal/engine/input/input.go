// Package input translates SDL2 events for the viewer.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int // Relative motion, or wheel steps
	DeltaY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events   []Event
	held     map[sdl.Scancode]bool
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and translates them.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.Feed(event) {
			quit = true
		}
	}
	return quit
}

// Feed translates one SDL event and records it. Returns true on quit.
func (i *Input) Feed(event sdl.Event) bool {
	e, ok := Translate(event)
	if !ok {
		return false
	}

	switch e.Type {
	case EventKeyDown:
		i.held[e.Key] = true
	case EventKeyUp:
		delete(i.held, e.Key)
	case EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = true
		}
	case EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = false
		}
	}

	i.events = append(i.events, e)
	return e.Type == EventQuit
}

// Translate converts an SDL event into an Event. Events the viewer does
// not care about report false.
func Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{
			Type:   t,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}, true

	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, DeltaX: int(e.X), DeltaY: int(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Dragging reports whether the left mouse button is held.
func (i *Input) Dragging() bool {
	return i.dragging
}

// Drag returns the summed mouse motion of this frame while dragging.
func (i *Input) Drag() (dx, dy float32) {
	if !i.dragging {
		return 0, 0
	}
	for _, e := range i.events {
		if e.Type == EventMouseMove {
			dx += float32(e.DeltaX)
			dy += float32(e.DeltaY)
		}
	}
	return dx, dy
}

// Wheel returns the summed vertical wheel steps of this frame.
func (i *Input) Wheel() float32 {
	var w float32
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			w += float32(e.DeltaY)
		}
	}
	return w
}

// Reset clears the frame's events without polling.
func (i *Input) Reset() {
	i.events = i.events[:0]
}
