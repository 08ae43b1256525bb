package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/config"
	"github.com/Faultbox/softras/internal/engine/input"
	"github.com/Faultbox/softras/internal/engine/window"
)

const windowTitle = "softras"

// Viewer shows a Scene in an SDL window and maps input onto it.
type Viewer struct {
	cfg     *config.Config
	scene   *Scene
	window  *window.Window
	input   *input.Input
	running bool
	log     *zap.Logger
}

// New opens the window for scene.
func New(cfg *config.Config, scene *Scene, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Scale:      cfg.Graphics.Scale,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	return &Viewer{
		cfg:    cfg,
		scene:  scene,
		window: win,
		input:  input.New(),
		log:    log,
	}, nil
}

// Run starts the main loop. It returns when the window closes or Escape
// is pressed.
func (v *Viewer) Run() error {
	v.running = true

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()

		v.scene.Update(float32(dt))
		if err := v.scene.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if err := v.window.Present(v.scene.Surface()); err != nil {
			return fmt.Errorf("present error: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := v.scene.Stats()
			v.window.SetTitle(fmt.Sprintf("%s - %s - %d fps", windowTitle, v.scene.Program().Name(), frameCount))
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Int("faces", stats.Faces),
				zap.Int("rasterized", stats.Rasterized),
				zap.Int("fragments", stats.Fragments),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// handleInput applies this frame's events to the scene and camera.
func (v *Viewer) handleInput() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := v.window.SurfaceSize()
			v.scene.Resize(w, h)
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}

	cam := v.scene.Camera()
	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		cam.HandleDrag(dx, dy)
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		cam.HandleZoom(wheel)
	}

	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		cam.HandleMovement(forward, right, up)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_TAB:
		v.scene.CycleShading()
	case sdl.SCANCODE_F:
		v.log.Info("wireframe", zap.Bool("on", v.scene.ToggleWireframe()))
	case sdl.SCANCODE_B:
		v.log.Info("double sided", zap.Bool("on", v.scene.ToggleDoubleSided()))
	}
}

// Close releases the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.window != nil {
		v.window.Close()
	}
}
