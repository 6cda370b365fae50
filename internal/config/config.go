// Package config loads launcher settings from ARCADE_* environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds launcher settings. Command-line flags override these.
// A zero Width and Height keep the demo's own size.
type Config struct {
	Width         int    `env:"WIDTH"`
	Height        int    `env:"HEIGHT"`
	TPS           int    `env:"TPS" envDefault:"60"`
	Title         string `env:"TITLE"`
	Seed          uint64 `env:"SEED" envDefault:"1"`
	ScreenshotDir string `env:"SCREENSHOT_DIR" envDefault:"screenshots"`
	DBPath        string `env:"DB" envDefault:"arcade.db"`
	Audio         bool   `env:"AUDIO" envDefault:"true"`
	Debug         bool   `env:"DEBUG"`
	ShowFPS       bool   `env:"FPS"`
	Profile       string `env:"PROFILE"`
	ScriptPath    string `env:"SCRIPT"`
}

// Prefix is prepended to every variable name.
const Prefix = "ARCADE_"

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the launcher cannot honour.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 || (c.Width == 0) != (c.Height == 0) {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: invalid TPS %d", c.TPS)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("config: unknown profile mode %q", c.Profile)
	}
	return nil
}
