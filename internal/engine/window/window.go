// Package window presents raster surfaces in an SDL2 window through a
// streaming texture.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/softras/internal/engine/raster"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// textureFormat matches the surface byte layout (A, B, G, R in memory) on
// little-endian hosts.
const textureFormat = sdl.PIXELFORMAT_RGBA8888

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Scale      int // Window pixels per surface pixel
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window, renderer and streaming texture.
type Window struct {
	config   Config
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texW     int
	texH     int
	log      *zap.Logger
}

// New creates a window sized for a Width x Height surface at Scale.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.Scale = max(cfg.Scale, 1)
	w := &Window{config: cfg, log: log}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width*cfg.Scale),
		int32(cfg.Height*cfg.Scale),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.window, -1, rflags)
	if err != nil {
		// Fall back to the software renderer
		w.renderer, err = sdl.CreateRenderer(w.window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		w.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	if err := w.ensureTexture(cfg.Width, cfg.Height); err != nil {
		w.Close()
		return nil, err
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("scale", cfg.Scale),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *Window) ensureTexture(width, height int) error {
	if w.texture != nil && w.texW == width && w.texH == height {
		return nil
	}
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	tex, err := w.renderer.CreateTexture(textureFormat, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return fmt.Errorf("SDL_CreateTexture %dx%d failed: %w", width, height, err)
	}
	w.texture = tex
	w.texW = width
	w.texH = height
	w.log.Debug("streaming texture created", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Present copies the surface into the streaming texture and shows it,
// stretched to the window.
func (w *Window) Present(s *raster.Surface) error {
	if !s.Present() {
		return nil
	}
	if err := w.ensureTexture(s.Width(), s.Height()); err != nil {
		return err
	}
	if err := w.upload(s); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// upload holds the texture lock only for the copy; the deferred unlock
// runs on every path.
func (w *Window) upload(s *raster.Surface) error {
	pixels, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking texture: %w", err)
	}
	defer w.texture.Unlock()

	return CopyRows(pixels, pitch, s.Pix(), s.Width()*4, s.Height())
}

// CopyRows copies rows of src into dst where the two buffers may use
// different row pitches.
func CopyRows(dst []byte, dstPitch int, src []byte, srcPitch, rows int) error {
	if dstPitch < srcPitch {
		return fmt.Errorf("destination pitch %d narrower than row %d", dstPitch, srcPitch)
	}
	if len(dst) < (rows-1)*dstPitch+srcPitch || len(src) < rows*srcPitch {
		return fmt.Errorf("buffers too small for %d rows", rows)
	}
	if dstPitch == srcPitch {
		copy(dst, src[:rows*srcPitch])
		return nil
	}
	for y := 0; y < rows; y++ {
		copy(dst[y*dstPitch:y*dstPitch+srcPitch], src[y*srcPitch:(y+1)*srcPitch])
	}
	return nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.texture != nil {
		w.texture.Destroy()
	}
	if w.renderer != nil {
		w.renderer.Destroy()
	}
	if w.window != nil {
		w.window.Destroy()
	}
	sdl.Quit()
}

// Size returns the current window size in window pixels.
func (w *Window) Size() (int, int) {
	width, height := w.window.GetSize()
	return int(width), int(height)
}

// SurfaceSize returns the surface size that fills the window at the
// configured scale.
func (w *Window) SurfaceSize() (int, int) {
	width, height := w.Size()
	return max(width/w.config.Scale, 1), max(height/w.config.Scale, 1)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}
