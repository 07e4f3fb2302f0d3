package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "DERETHMAP_"

// Load loads configuration with priority: defaults < file < environment < flags.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads defaults overlaid with a single file, without looking at
// flags or the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config in the working directory
// or the user config directory.
func findConfigFile() string {
	for _, path := range []string{
		"./derethmap.yaml",
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
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
		return filepath.Join(home, "Library", "Application Support", "DerethMap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "DerethMap")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "derethmap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "derethmap")
	}
}

// loadFromFile merges a YAML file into cfg. Unknown keys are errors so a
// misspelt setting does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv reads DERETHMAP_ROUTE, DERETHMAP_GRID, DERETHMAP_TEXTURES,
// DERETHMAP_ALPHAS, DERETHMAP_MODE, DERETHMAP_QUALITY and DERETHMAP_LOG_LEVEL.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ROUTE":     &cfg.Route.Start,
		"GRID":      &cfg.Map.GridPath,
		"TEXTURES":  &cfg.Map.TexturesDir,
		"ALPHAS":    &cfg.Map.AlphaDir,
		"MODE":      &cfg.Camera.InitialMode,
		"LOG_LEVEL": &cfg.Logging.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup(EnvPrefix + "QUALITY"); ok && v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sQUALITY: %w", EnvPrefix, err)
		}
		cfg.Graphics.RenderQuality = q
	}
	return nil
}
