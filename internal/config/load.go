package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at a config file.
// It is consulted after the -config flag and before the search locations.
const EnvConfigPath = "SOFTRAS_CONFIG"

// Load builds the renderer configuration. Flags override the file, which
// overrides Default.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading scene config: %w", err)
		}
	}

	applyFlags(cfg)
	return cfg, nil
}

// searchPaths lists where a scene config may live, nearest first.
func searchPaths() []string {
	dir := ConfigDir()
	return []string{
		"softras.yaml",
		"softras.yml",
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

// findConfigFile returns the first existing search path, or "".
func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory holding softras settings.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Softras")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Softras")
		}
		return filepath.Join(home, "AppData", "Roaming", "Softras")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "softras")
	}
	return filepath.Join(home, ".config", "softras")
}

// loadFromFile merges the YAML document at path over cfg. Keys the file
// leaves out keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
