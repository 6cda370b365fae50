package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 0 || cfg.Height != 0 || cfg.TPS != 60 {
		t.Errorf("size/tps = %dx%d@%d, want 0x0@60", cfg.Width, cfg.Height, cfg.TPS)
	}
	if !cfg.Audio || cfg.DBPath != "arcade.db" || cfg.Seed != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ARCADE_WIDTH", "1024")
	t.Setenv("ARCADE_HEIGHT", "768")
	t.Setenv("ARCADE_AUDIO", "false")
	t.Setenv("ARCADE_PROFILE", "cpu")
	t.Setenv("ARCADE_SCRIPT", "run.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 1024 || cfg.Audio || cfg.Profile != "cpu" || cfg.ScriptPath != "run.json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"ARCADE_TPS", "fast", "parse env:"},
		{"ARCADE_HEIGHT", "-1", "invalid size"},
		{"ARCADE_WIDTH", "640", "invalid size"},
		{"ARCADE_PROFILE", "trace", "unknown profile"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
