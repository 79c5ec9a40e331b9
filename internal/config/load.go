package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tramdock/internal/engine/geometry"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid is returned for settings the program cannot run with.
var ErrInvalid = errors.New("invalid config")

// Validate rejects sizes and tessellation that cannot be used.
func (c *Config) Validate() error {
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, g.Width, g.Height)
	}
	if g.Near <= 0 || g.Far <= g.Near {
		return fmt.Errorf("%w: clip planes %v..%v", ErrInvalid, g.Near, g.Far)
	}
	if g.FOV <= 0 || g.FOV >= 180 {
		return fmt.Errorf("%w: fov %v", ErrInvalid, g.FOV)
	}

	sh := c.Scene.Shapes
	for name, p := range map[string]geometry.Params{
		"disc":      sh.Disc,
		"sphere":    sh.Sphere,
		"cylinder":  sh.Cylinder,
		"torus":     sh.Torus,
		"tram_rail": sh.TramRail,
		"wall":      sh.Wall,
	} {
		if p.Radius <= 0 || p.Segments <= 0 {
			return fmt.Errorf("%w: shape %s radius %v segments %d", ErrInvalid, name, p.Radius, p.Segments)
		}
	}
	if len(c.Scene.AssetPaths) == 0 {
		return fmt.Errorf("%w: no asset paths", ErrInvalid)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Tramdock")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Tramdock")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tramdock")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tramdock")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
