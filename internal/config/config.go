// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/derethmap/pkg/landblock"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Map      MapConfig      `yaml:"map"`
	Route    RouteConfig    `yaml:"route"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int  `yaml:"width"`
	Height        int  `yaml:"height"`
	Fullscreen    bool `yaml:"fullscreen"`
	VSync         bool `yaml:"vsync"`
	FPSLimit      int  `yaml:"fps_limit"`
	RenderQuality int  `yaml:"render_quality"` // pixel divisor, 1..4
	ShowFPS       bool `yaml:"show_fps"`
	ShowHUD       bool `yaml:"show_hud"`
}

// CameraConfig holds camera limits and input sensitivity.
type CameraConfig struct {
	InitialMode      string  `yaml:"initial_mode"` // planar or flying
	MinZoom          float32 `yaml:"min_zoom"`
	MaxZoom          float32 `yaml:"max_zoom"`
	WheelSensitivity float32 `yaml:"wheel_sensitivity"`
	PinchSensitivity float32 `yaml:"pinch_sensitivity"`

	FlyMoveSpeed        float32 `yaml:"fly_move_speed"` // 0 derives it from the map size
	FlyMouseSensitivity float32 `yaml:"fly_mouse_sensitivity"`
	FlyFOV              float32 `yaml:"fly_fov"`
}

// MapConfig holds terrain data sources and drawing options.
type MapConfig struct {
	GridPath     string `yaml:"grid_path"` // empty generates a map from GenerateSeed
	TexturesDir  string `yaml:"textures_dir"`
	AlphaDir     string `yaml:"alpha_dir"` // empty uses procedural masks
	GenerateSeed int64  `yaml:"generate_seed"`

	MinZoomForTextures float64 `yaml:"min_zoom_for_textures"`
	TextureRepeat      float32 `yaml:"texture_repeat"`
	ShowLandblockLines bool    `yaml:"show_landblock_lines"`
	ShowLandcellLines  bool    `yaml:"show_landcell_lines"`
	Hillshade          bool    `yaml:"hillshade"`
}

// RouteConfig holds the start location and route publishing settings.
type RouteConfig struct {
	Start    string        `yaml:"start"`
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Camera modes accepted by CameraConfig.InitialMode.
const (
	ModePlanar = "planar"
	ModeFlying = "flying"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			FPSLimit:      0,
			RenderQuality: 2,
			ShowHUD:       true,
		},
		Camera: CameraConfig{
			InitialMode:         ModePlanar,
			MinZoom:             0.002,
			MaxZoom:             1000,
			WheelSensitivity:    0.005,
			PinchSensitivity:    0.0075,
			FlyMouseSensitivity: 0.005,
			FlyFOV:              45,
		},
		Map: MapConfig{
			GenerateSeed:       1,
			MinZoomForTextures: 0.02,
			TextureRepeat:      2,
		},
		Route: RouteConfig{
			Debounce: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would leave the viewer unusable and clamps
// the render quality into range.
func (c *Config) Validate() error {
	c.Graphics.RenderQuality = min(max(c.Graphics.RenderQuality, 1), 4)

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	switch c.Camera.InitialMode {
	case ModePlanar, ModeFlying:
	default:
		return fmt.Errorf("unknown camera mode %q", c.Camera.InitialMode)
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MinZoom >= c.Camera.MaxZoom {
		return fmt.Errorf("invalid zoom range [%v, %v]", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if c.Route.Debounce < 0 {
		return fmt.Errorf("negative route debounce %v", c.Route.Debounce)
	}
	if c.Route.Start != "" {
		if _, err := landblock.ParseRouteErr(c.Route.Start); err != nil {
			return fmt.Errorf("start route %q: %w", c.Route.Start, err)
		}
	}
	return nil
}
