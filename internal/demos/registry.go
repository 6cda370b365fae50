// Package demos holds the runnable demo games. Each demo is a set of scenes
// that publish their state through Signals so scripted runs can check them.
package demos

import (
	"errors"
	"fmt"
	"slices"

	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/save"
	"github.com/phanxgames/arcade/sfx"
)

// ErrUnknownDemo is returned by Get for a name that is not registered.
var ErrUnknownDemo = errors.New("demos: unknown demo")

// Env carries the services a demo may use. Nil fields turn the matching
// feature off.
type Env struct {
	Store  *save.Store
	Sounds *sfx.Bank
}

func (e Env) play(name string) {
	if e.Sounds != nil {
		_ = e.Sounds.Play(name)
	}
}

// Demo is one registered demo.
type Demo struct {
	Name        string
	Description string
	Width       int
	Height      int
	Scenes      func(env Env) []arcade.SceneConfig
}

// Config returns a GameConfig for d. Fields already set on base win over the
// demo's defaults, except Scenes which always come from the demo.
func (d Demo) Config(env Env, base arcade.GameConfig) arcade.GameConfig {
	cfg := base
	cfg.Scenes = d.Scenes(env)
	if cfg.Title == "" {
		cfg.Title = "arcade: " + d.Name
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	return cfg
}

var registry = map[string]Demo{}

func register(d Demo) {
	if d.Width == 0 {
		d.Width, d.Height = 800, 600
	}
	if _, dup := registry[d.Name]; dup {
		panic("demos: duplicate demo " + d.Name)
	}
	registry[d.Name] = d
}

// Names returns every registered demo name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the demo registered under name.
func Get(name string) (Demo, error) {
	d, ok := registry[name]
	if !ok {
		return Demo{}, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
	}
	return d, nil
}
