// Package config handles configuration loading and management.
package config

import (
	"github.com/Faultbox/tramdock/internal/engine/geometry"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Fullscreen  bool    `yaml:"fullscreen"`
	VSync       bool    `yaml:"vsync"`
	StencilBits int     `yaml:"stencil_bits"`
	FOV         float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Mipmaps     bool    `yaml:"mipmaps"`
	NTSCSafe    bool    `yaml:"ntsc_safe"`
}

// TextureConfig names the scene's image assets.
type TextureConfig struct {
	DoorTop           string `yaml:"door_top"`
	DoorBottom        string `yaml:"door_bottom"`
	DoorTopFlipped    string `yaml:"door_top_flipped"`
	DoorBottomFlipped string `yaml:"door_bottom_flipped"`
	Grate             string `yaml:"grate"`
	Hazard            string `yaml:"hazard"`
	Wall              string `yaml:"wall"`
}

// SceneConfig holds asset locations and tessellation.
type SceneConfig struct {
	AssetPaths     []string             `yaml:"asset_paths"` // searched last to first
	TramModel      string               `yaml:"tram_model"`
	TramMaterials  string               `yaml:"tram_materials"`
	TramTexture    string               `yaml:"tram_texture"`
	CrowbarModel   string               `yaml:"crowbar_model"`
	CrowbarTexture string               `yaml:"crowbar_texture"`
	Textures       TextureConfig        `yaml:"textures"`
	Shapes         geometry.ShapeParams `yaml:"shapes"`
}

// ControlsConfig holds camera control settings.
type ControlsConfig struct {
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // pixels per degree
	MoveSpeed        float32 `yaml:"move_speed"`        // units per second
	CaptureMouse     bool    `yaml:"capture_mouse"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowStatus    bool   `yaml:"show_status"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			StencilBits: 8,
			FOV:         45,
			Near:        0.1,
			Far:         1000,
			Mipmaps:     true,
			NTSCSafe:    true,
		},
		Scene: SceneConfig{
			AssetPaths:    []string{"."},
			TramModel:     "Models/tram.obj",
			TramMaterials: "models/tram.mtl",
			CrowbarModel:  "Models/Crowbar.obj",
			Textures: TextureConfig{
				DoorTop:           "gfx/doorTop.png",
				DoorBottom:        "gfx/doorBottom.png",
				DoorTopFlipped:    "gfx/doorTopFlipped.png",
				DoorBottomFlipped: "gfx/doorBottomFlipped.png",
				Grate:             "gfx/grate.png",
				Hazard:            "gfx/hazard.png",
				Wall:              "gfx/wall.png",
			},
			Shapes: geometry.DefaultShapeParams(),
		},
		Controls: ControlsConfig{
			MouseSensitivity: 10,
			MoveSpeed:        1,
			CaptureMouse:     true,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
			ShowStatus:    true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
