package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagQuality    = flag.Int("quality", 0, "Render quality divisor (1-4)")
	flagRoute      = flag.String("route", "", "Start location, e.g. 12.3N,45.6E,0.08")
	flagGrid       = flag.String("grid", "", "Terrain grid image")
	flagLines      = flag.Bool("lines", false, "Show landblock and landcell lines")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
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
	if *flagQuality > 0 {
		cfg.Graphics.RenderQuality = *flagQuality
	}
	if *flagRoute != "" {
		cfg.Route.Start = *flagRoute
	}
	if *flagGrid != "" {
		cfg.Map.GridPath = *flagGrid
	}
	if *flagLines {
		cfg.Map.ShowLandblockLines = true
		cfg.Map.ShowLandcellLines = true
	}
}
