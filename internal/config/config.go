// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Projection  ProjectionConfig  `yaml:"projection"`
	Scene       SceneConfig       `yaml:"scene"`
	Material    MaterialConfig    `yaml:"material"`
	Environment EnvironmentConfig `yaml:"environment"`
	Light       LightConfig       `yaml:"light"`
	Camera      CameraConfig      `yaml:"camera"`
	Assets      AssetsConfig      `yaml:"assets"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display settings. Width and Height are the render
// surface size; the window is Scale times larger.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Scale      int  `yaml:"scale"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// ProjectionConfig holds the perspective parameters.
type ProjectionConfig struct {
	FOV  float32 `yaml:"fov"` // Horizontal, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// SceneConfig selects what gets drawn and how.
type SceneConfig struct {
	Mesh        string  `yaml:"mesh"`    // quad, cube, sphere, column
	Shading     string  `yaml:"shading"` // lambert, normal-mapped, reflective
	DoubleSided bool    `yaml:"double_sided"`
	Wireframe   bool    `yaml:"wireframe"`
	SpinSpeed   float32 `yaml:"spin_speed"` // Radians per second
}

// MaterialConfig holds texture paths for the mesh material. Empty paths
// leave the slot unset.
type MaterialConfig struct {
	Diffuse          string `yaml:"diffuse"`
	Normal           string `yaml:"normal"`
	Roughness        string `yaml:"roughness"`
	Metallic         string `yaml:"metallic"`
	AmbientOcclusion string `yaml:"ambient_occlusion"`
	Emissive         string `yaml:"emissive"`
}

// EnvironmentConfig holds the cube map face paths.
type EnvironmentConfig struct {
	PositiveX string `yaml:"positive_x"`
	NegativeX string `yaml:"negative_x"`
	PositiveY string `yaml:"positive_y"`
	NegativeY string `yaml:"negative_y"`
	PositiveZ string `yaml:"positive_z"`
	NegativeZ string `yaml:"negative_z"`
}

// Faces returns the paths in cube face order.
func (e EnvironmentConfig) Faces() [6]string {
	return [6]string{e.PositiveX, e.NegativeX, e.PositiveY, e.NegativeY, e.PositiveZ, e.NegativeZ}
}

// LightConfig holds the point light settings. A positive Distance places
// the light by Longitude/Latitude (degrees) instead of Position.
type LightConfig struct {
	Position    [3]float32 `yaml:"position"`
	Longitude   float32    `yaml:"longitude"`
	Latitude    float32    `yaml:"latitude"`
	Distance    float32    `yaml:"distance"`
	OrbitRadius float32    `yaml:"orbit_radius"`
	OrbitSpeed  float32    `yaml:"orbit_speed"` // Radians per second
}

// CameraConfig holds the initial orbit camera placement. A zero distance
// fits the camera to the mesh bounds.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"`
	Yaw      float32 `yaml:"yaw"`
}

// AssetsConfig holds asset search paths.
type AssetsConfig struct {
	Paths []string `yaml:"paths"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      320,
			Height:     240,
			Scale:      3,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Projection: ProjectionConfig{
			FOV:  90,
			Near: 0.1,
			Far:  100,
		},
		Scene: SceneConfig{
			Mesh:      "cube",
			Shading:   "normal-mapped",
			SpinSpeed: 0.5,
		},
		Light: LightConfig{
			Position: [3]float32{10, 10, -1},
		},
		Assets: AssetsConfig{
			Paths: []string{"assets"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
