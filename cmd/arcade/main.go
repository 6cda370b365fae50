// Command arcade lists and runs the demo games.
//
//	arcade -list
//	arcade -demo balls
//	arcade -demo stars -script stars.json -exit
//
// Every flag defaults to the matching ARCADE_* environment variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/internal/config"
	"github.com/phanxgames/arcade/internal/demos"
	"github.com/phanxgames/arcade/save"
	"github.com/phanxgames/arcade/sfx"
	"github.com/pkg/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	list := flag.Bool("list", false, "List demos and exit")
	name := flag.String("demo", "balls", "Demo to run")
	exit := flag.Bool("exit", false, "Exit when the test script finishes")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Logical width (0 uses the demo's size)")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Logical height (0 uses the demo's size)")
	flag.IntVar(&cfg.TPS, "tps", cfg.TPS, "Ticks per second")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.StringVar(&cfg.Title, "title", cfg.Title, "Window title")
	flag.StringVar(&cfg.ScreenshotDir, "screenshots", cfg.ScreenshotDir, "Screenshot directory")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Save database path (empty disables saving)")
	flag.BoolVar(&cfg.Audio, "audio", cfg.Audio, "Play sound effects")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Log debug diagnostics to stderr")
	flag.BoolVar(&cfg.ShowFPS, "fps", cfg.ShowFPS, "Show the FPS widget")
	flag.StringVar(&cfg.Profile, "profile", cfg.Profile, "Profile mode: cpu or mem")
	flag.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "JSON test script to run")
	flag.Parse()

	if *list {
		for _, n := range demos.Names() {
			d, _ := demos.Get(n)
			fmt.Printf("%-14s %s\n", n, d.Description)
		}
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := run(cfg, *name, *exit); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, name string, exitOnScriptEnd bool) error {
	d, err := demos.Get(name)
	if err != nil {
		return err
	}

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	var env demos.Env
	if cfg.DBPath != "" {
		store, err := save.Open(context.Background(), cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		env.Store = store
	}
	env.Sounds = sfx.NewBank(cfg.Audio)
	if err := env.Sounds.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
		env.Sounds = sfx.NewBank(false)
	}
	defer env.Sounds.Close()

	base := arcade.GameConfig{
		Title:           cfg.Title,
		Width:           cfg.Width,
		Height:          cfg.Height,
		TPS:             cfg.TPS,
		Seed:            cfg.Seed,
		ShowFPS:         cfg.ShowFPS,
		Debug:           cfg.Debug,
		ScreenshotDir:   cfg.ScreenshotDir,
		ExitOnScriptEnd: exitOnScriptEnd,
	}
	if cfg.ScriptPath != "" {
		script, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		base.TestScript = script
	}

	log.Printf("Starting %s (%s)", d.Name, d.Description)
	return arcade.Run(d.Config(env, base))
}
