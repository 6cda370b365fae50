package arcade

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownScene is returned when starting a scene key that was never
// registered.
var ErrUnknownScene = errors.New("arcade: unknown scene")

// SceneConfig describes one scene of a game. Preload runs before Create and
// is where procedural textures are generated. Update runs once per step after
// timers, tweens, and systems.
type SceneConfig struct {
	Key        string
	Background Color
	// Width and Height override the game's logical size when non-zero.
	Width, Height int

	Preload func(s *Scene) error
	Create  func(s *Scene) error
	Update  func(s *Scene, dt float64) error
}

// GameConfig configures a Game.
type GameConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the fixed update rate. Zero keeps Ebitengine's default of 60.
	TPS    int
	Scenes []SceneConfig
	// Start is the first scene; empty means Scenes[0].
	Start string
	// Seed feeds every scene's random source.
	Seed          uint64
	ShowFPS       bool
	Debug         bool
	ScreenshotDir string
	// TestScript is a JSON script attached to every scene the game starts.
	TestScript []byte
	// ExitOnScriptEnd ends the loop once the script completes. Failed
	// expectations are returned from Run.
	ExitOnScriptEnd bool
}

// Game runs a set of scenes that share one texture cache and one signal table.
type Game struct {
	cfg      GameConfig
	scenes   map[string]SceneConfig
	active   *Scene
	next     string
	quit     bool
	runner   *TestRunner
	Textures *TextureCache
	Signals  *Signals
}

// NewGame validates cfg and starts its first scene.
func NewGame(cfg GameConfig) (*Game, error) {
	if len(cfg.Scenes) == 0 {
		return nil, errors.New("arcade: game has no scenes")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("arcade: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{
		cfg:      cfg,
		scenes:   make(map[string]SceneConfig, len(cfg.Scenes)),
		Textures: NewTextureCache(),
	}
	for _, sc := range cfg.Scenes {
		if sc.Key == "" {
			return nil, errors.New("arcade: scene without key")
		}
		if _, dup := g.scenes[sc.Key]; dup {
			return nil, fmt.Errorf("arcade: duplicate scene %q", sc.Key)
		}
		g.scenes[sc.Key] = sc
	}
	if len(cfg.TestScript) > 0 {
		r, err := LoadTestScript(cfg.TestScript)
		if err != nil {
			return nil, err
		}
		g.runner = r
	}
	start := cfg.Start
	if start == "" {
		start = cfg.Scenes[0].Key
	}
	if err := g.transition(start); err != nil {
		return nil, err
	}
	return g, nil
}

// Start queues a switch to the scene registered under key. The switch happens
// at the beginning of the next step so the current step finishes on the old
// scene.
func (g *Game) Start(key string) error {
	if _, ok := g.scenes[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, key)
	}
	g.next = key
	return nil
}

// Scene returns the active scene.
func (g *Game) Scene() *Scene {
	return g.active
}

// Runner returns the attached test runner, or nil.
func (g *Game) Runner() *TestRunner {
	return g.runner
}

// Quit ends the game loop after the current step.
func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) transition(key string) error {
	sc, ok := g.scenes[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, key)
	}
	if g.active != nil {
		g.active.debugf("scene %s -> %s", g.active.Key, key)
		g.active.shutdown()
	}

	w, h := g.cfg.Width, g.cfg.Height
	if sc.Width > 0 && sc.Height > 0 {
		w, h = sc.Width, sc.Height
	}
	s := NewScene(w, h)
	s.Key = key
	s.game = g
	s.ClearColor = sc.Background
	s.Textures = g.Textures
	if g.Signals == nil {
		g.Signals = NewSignals(s.Clock.Now)
	} else {
		g.Signals.clock = s.Clock.Now
	}
	s.Signals = g.Signals
	s.Rand = rand.New(rand.NewPCG(g.cfg.Seed, g.cfg.Seed^0x9e3779b97f4a7c15))
	s.ScreenshotDir = g.cfg.ScreenshotDir
	s.testRunner = g.runner
	if g.cfg.Debug {
		s.SetDebugMode(true)
	}
	g.active = s

	if sc.Preload != nil {
		if err := sc.Preload(s); err != nil {
			return fmt.Errorf("preload %s: %w", key, err)
		}
	}
	if sc.Create != nil {
		if err := sc.Create(s); err != nil {
			return fmt.Errorf("create %s: %w", key, err)
		}
	}
	if sc.Update != nil {
		s.SetUpdateFunc(sc.Update)
	}
	if g.cfg.ShowFPS {
		s.Add(NewFPSWidget())
	}
	return nil
}

func (g *Game) pendingTransition() error {
	if g.next == "" {
		return nil
	}
	key := g.next
	g.next = ""
	return g.transition(key)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if err := g.pendingTransition(); err != nil {
		return err
	}
	if err := g.active.Update(); err != nil {
		return err
	}
	return g.endOfStep()
}

// Step advances the active scene by dt without reading devices.
func (g *Game) Step(dt float64) error {
	if err := g.pendingTransition(); err != nil {
		return err
	}
	if err := g.active.Step(dt); err != nil {
		return err
	}
	return g.endOfStep()
}

func (g *Game) endOfStep() error {
	if g.quit {
		return ebiten.Termination
	}
	if g.cfg.ExitOnScriptEnd && g.runner != nil && g.runner.Done() {
		if err := g.runner.Err(); err != nil {
			return err
		}
		// Queued captures are written by the next Draw.
		if g.active.PendingScreenshots() > 0 {
			return nil
		}
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.active.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.active.Width, g.active.Height
}

// Run opens a window and runs cfg until the window closes, Quit is called, or
// a lifecycle callback fails.
func Run(cfg GameConfig) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
