// Package config loads and validates the mural.yml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muralhq/mural/pkg/pixelboard"
)

// Defaults applied when a field is absent from mural.yml and no
// environment override is set.
const (
	DefaultInstance = "default"
	DefaultRedisURL = "redis://localhost:6379"
	DefaultHTTPAddr = ":8080"
)

// Config represents the top-level mural.yml configuration.
type Config struct {
	Instance string        `yaml:"instance"`
	RedisURL string        `yaml:"redis_url"`
	HTTPAddr string        `yaml:"http_addr"`
	Canvas   *CanvasConfig `yaml:"canvas,omitempty"`
}

// CanvasConfig holds the geometry used when the canvas is reset without
// explicit dimensions. It does not affect lazy initialization, which
// always uses the built-in defaults.
type CanvasConfig struct {
	Width   int      `yaml:"width,omitempty"`
	Height  int      `yaml:"height,omitempty"`
	Palette []string `yaml:"palette,omitempty"`
}

// Load reads and validates a mural.yml file. Environment variables
// REDIS_URL and MURAL_INSTANCE_NAME override the file's values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no mural.yml exists,
// with environment overrides applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Instance == "" {
		c.Instance = DefaultInstance
	}
	if c.RedisURL == "" {
		c.RedisURL = DefaultRedisURL
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}

	if env := os.Getenv("MURAL_INSTANCE_NAME"); env != "" {
		c.Instance = env
	}
	if env := os.Getenv("REDIS_URL"); env != "" {
		c.RedisURL = env
	}
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	if c.Instance == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if c.Canvas != nil {
		if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
			return fmt.Errorf("canvas dimensions cannot be negative, got %dx%d", c.Canvas.Width, c.Canvas.Height)
		}
		if (c.Canvas.Width == 0) != (c.Canvas.Height == 0) {
			return fmt.Errorf("canvas width and height must be set together")
		}
		if len(c.Canvas.Palette) > pixelboard.MaxPaletteSize {
			return fmt.Errorf("canvas palette has %d entries, max %d", len(c.Canvas.Palette), pixelboard.MaxPaletteSize)
		}
	}

	return nil
}
