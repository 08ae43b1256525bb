package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics defaults
	if cfg.Graphics.Width != 320 {
		t.Errorf("expected width 320, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 240 {
		t.Errorf("expected height 240, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Scale != 3 {
		t.Errorf("expected scale 3, got %d", cfg.Graphics.Scale)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Projection defaults
	if cfg.Projection.FOV != 90 || cfg.Projection.Near != 0.1 || cfg.Projection.Far != 100 {
		t.Errorf("unexpected projection defaults: %+v", cfg.Projection)
	}

	// Scene defaults
	if cfg.Scene.Mesh != "cube" {
		t.Errorf("expected mesh 'cube', got %s", cfg.Scene.Mesh)
	}
	if cfg.Scene.Shading != "normal-mapped" {
		t.Errorf("expected shading 'normal-mapped', got %s", cfg.Scene.Shading)
	}
	if cfg.Scene.DoubleSided || cfg.Scene.Wireframe {
		t.Error("expected double_sided and wireframe off by default")
	}

	// Light defaults
	if cfg.Light.Position != [3]float32{10, 10, -1} {
		t.Errorf("expected light at (10, 10, -1), got %v", cfg.Light.Position)
	}
	if cfg.Light.OrbitRadius != 0 {
		t.Errorf("expected static light, got orbit radius %f", cfg.Light.OrbitRadius)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 640
  height: 480
  scale: 2
  fullscreen: true
  vsync: false
  fps_limit: 144

projection:
  fov: 75
  near: 0.5
  far: 250

scene:
  mesh: "sphere"
  shading: "reflective"
  double_sided: true
  wireframe: true
  spin_speed: 1.5

material:
  diffuse: "brick_d.tga"
  normal: "brick_n.tga"
  roughness: "brick_r.png"

environment:
  positive_x: "sky_px.png"
  negative_z: "sky_nz.png"

light:
  position: [1, 2, 3]
  orbit_radius: 4
  orbit_speed: 0.25

camera:
  distance: 6
  pitch: 0.2
  yaw: 1.0

assets:
  paths: ["data", "extra"]

logging:
  level: "debug"
  log_file: "softras.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 640 || cfg.Graphics.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Scale != 2 {
		t.Errorf("expected scale 2, got %d", cfg.Graphics.Scale)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Projection.FOV != 75 || cfg.Projection.Near != 0.5 || cfg.Projection.Far != 250 {
		t.Errorf("unexpected projection: %+v", cfg.Projection)
	}

	if cfg.Scene.Mesh != "sphere" || cfg.Scene.Shading != "reflective" {
		t.Errorf("unexpected scene: %+v", cfg.Scene)
	}
	if !cfg.Scene.DoubleSided || !cfg.Scene.Wireframe {
		t.Error("expected double_sided and wireframe to be true")
	}
	if cfg.Scene.SpinSpeed != 1.5 {
		t.Errorf("expected spin speed 1.5, got %f", cfg.Scene.SpinSpeed)
	}

	if cfg.Material.Diffuse != "brick_d.tga" || cfg.Material.Normal != "brick_n.tga" {
		t.Errorf("unexpected material: %+v", cfg.Material)
	}
	if cfg.Material.Emissive != "" {
		t.Errorf("expected empty emissive, got %s", cfg.Material.Emissive)
	}

	faces := cfg.Environment.Faces()
	if faces[0] != "sky_px.png" || faces[5] != "sky_nz.png" || faces[2] != "" {
		t.Errorf("unexpected environment faces: %v", faces)
	}

	if cfg.Light.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected light at (1, 2, 3), got %v", cfg.Light.Position)
	}
	if cfg.Light.OrbitRadius != 4 || cfg.Light.OrbitSpeed != 0.25 {
		t.Errorf("unexpected light orbit: %+v", cfg.Light)
	}

	if cfg.Camera.Distance != 6 || cfg.Camera.Yaw != 1 {
		t.Errorf("unexpected camera: %+v", cfg.Camera)
	}

	if len(cfg.Assets.Paths) != 2 || cfg.Assets.Paths[1] != "extra" {
		t.Errorf("unexpected asset paths: %v", cfg.Assets.Paths)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "softras.log" {
		t.Errorf("expected log file 'softras.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("scene:\n  mesh: quad\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults
	if cfg.Scene.Mesh != "quad" {
		t.Errorf("expected mesh 'quad', got %s", cfg.Scene.Mesh)
	}
	if cfg.Scene.Shading != "normal-mapped" {
		t.Errorf("expected default shading, got %s", cfg.Scene.Shading)
	}
	if cfg.Projection.FOV != 90 {
		t.Errorf("expected default fov, got %f", cfg.Projection.FOV)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "softras.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find softras.yaml in current directory")
	}
}

func TestFindConfigFileInConfigDir(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}

	dir := filepath.Join(tmpDir, "xdg", "softras")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != configPath {
		t.Errorf("expected %s, got %s", configPath, path)
	}

	// A directory named like a config file is not a match.
	if err := os.Mkdir(filepath.Join(tmpDir, "softras.yaml"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if path := findConfigFile(); path != configPath {
		t.Errorf("expected directory to be skipped, got %s", path)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "scene.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  mesh: sphere\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Scene.Mesh != "sphere" {
		t.Errorf("expected mesh 'sphere' from env config, got %s", cfg.Scene.Mesh)
	}

	// The -config flag wins over the environment.
	*flagConfig = filepath.Join(tmpDir, "missing.yaml")
	defer func() { *flagConfig = "" }()
	if _, err := Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected flag path to be used, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Mesh = "column"
	cfg.Light.OrbitRadius = 3
	cfg.Material.Diffuse = "stone.tga"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Scene.Mesh != "column" || loaded.Light.OrbitRadius != 3 || loaded.Material.Diffuse != "stone.tga" {
		t.Errorf("saved config did not round-trip: %+v", loaded)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 600
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 800 {
					t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 600 {
					t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "shading and mesh flags",
			setup: func() {
				*flagShading = "lambert"
				*flagMesh = "sphere"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Shading != "lambert" {
					t.Errorf("expected shading 'lambert', got %s", cfg.Scene.Shading)
				}
				if cfg.Scene.Mesh != "sphere" {
					t.Errorf("expected mesh 'sphere', got %s", cfg.Scene.Mesh)
				}
			},
			teardown: func() {
				*flagShading = ""
				*flagMesh = ""
			},
		},
		{
			name: "headless flags",
			setup: func() {
				*flagHeadless = true
				*flagFrames = 12
			},
			verify: func(t *testing.T, cfg *Config) {
				if !Headless() || Frames() != 12 {
					t.Errorf("expected headless with 12 frames, got %v %d", Headless(), Frames())
				}
			},
			teardown: func() {
				*flagHeadless = false
				*flagFrames = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
scene:
  shading: reflective
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flags override the config file
	*flagConfig = configPath
	*flagWidth = 1920
	*flagShading = "lambert"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagShading = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Scene.Shading != "lambert" {
		t.Errorf("expected shading 'lambert' from flag, got %s", cfg.Scene.Shading)
	}
}
