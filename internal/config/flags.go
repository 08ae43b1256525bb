package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Render surface width")
	flagHeight     = flag.Int("height", 0, "Render surface height")
	flagShading    = flag.String("shading", "", "Shading program (lambert, normal-mapped, reflective)")
	flagMesh       = flag.String("mesh", "", "Mesh to display (quad, cube, sphere, column)")
	flagHeadless   = flag.Bool("headless", false, "Render without a window")
	flagFrames     = flag.Int("frames", 0, "Frames to render in headless mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Headless reports whether the viewer should render without a window.
func Headless() bool {
	return *flagHeadless
}

// Frames returns the headless frame count, or 0 when unset.
func Frames() int {
	return *flagFrames
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagShading != "" {
		cfg.Scene.Shading = *flagShading
	}
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
}
