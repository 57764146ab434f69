package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, read from a YAML file next
// to the binary. Every field has a default, so a missing file is not
// an error.
type Config struct {
	Port             int           `yaml:"port"`
	DataDir          string        `yaml:"data_dir"`
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
	CanvasWidth      int           `yaml:"canvas_width"`
	CanvasHeight     int           `yaml:"canvas_height"`
	Background       string        `yaml:"background"`
	Palette          []string      `yaml:"palette"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:             8888,
		DataDir:          "boards",
		AutosaveInterval: 10 * time.Second,
		CanvasWidth:      1200,
		CanvasHeight:     900,
		Background:       "#ffffff",
		Palette: []string{
			"#000000", "#ef4444", "#22c55e", "#3b82f6", "#eab308",
		},
	}
}

// Load reads path and overlays it on the defaults. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Port <= 0 {
		cfg.Port = Default().Port
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = Default().AutosaveInterval
	}
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		cfg.CanvasWidth = Default().CanvasWidth
		cfg.CanvasHeight = Default().CanvasHeight
	}
	if cfg.Background == "" {
		cfg.Background = Default().Background
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = Default().Palette
	}
	return cfg, nil
}
