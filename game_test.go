package arcade

import (
	"errors"
	"image"
	"os"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func counterScene(key string) SceneConfig {
	return SceneConfig{
		Key: key,
		Create: func(s *Scene) error {
			btn := s.Add(interactiveRect("btn", 50, 50, 40, 40))
			btn.OnClick = func(ClickContext) { s.Signals.Inc("clicks") }
			s.Signals.Set("scene", s.Key)
			return nil
		},
	}
}

func TestNewGameValidates(t *testing.T) {
	if _, err := NewGame(GameConfig{Width: 10, Height: 10}); err == nil {
		t.Error("expected error for no scenes")
	}
	if _, err := NewGame(GameConfig{Width: 10, Height: 10, Scenes: []SceneConfig{{Key: "a"}, {Key: "a"}}}); err == nil {
		t.Error("expected error for duplicate keys")
	}
	_, err := NewGame(GameConfig{Width: 10, Height: 10, Start: "nope", Scenes: []SceneConfig{{Key: "a"}}})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("err = %v, want ErrUnknownScene", err)
	}
}

func TestGameLifecycleOrder(t *testing.T) {
	var calls []string
	g, err := NewGame(GameConfig{
		Width: 100, Height: 100,
		Scenes: []SceneConfig{{
			Key:     "main",
			Preload: func(*Scene) error { calls = append(calls, "preload"); return nil },
			Create:  func(*Scene) error { calls = append(calls, "create"); return nil },
			Update:  func(*Scene, float64) error { calls = append(calls, "update"); return nil },
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Step(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	want := []string{"preload", "create", "update"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestGameCreateErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewGame(GameConfig{Width: 10, Height: 10, Scenes: []SceneConfig{{
		Key:    "main",
		Create: func(*Scene) error { return boom },
	}}})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestGameStartSwitchesSceneOnNextStep(t *testing.T) {
	g, err := NewGame(GameConfig{Width: 100, Height: 100, Scenes: []SceneConfig{counterScene("menu"), counterScene("play")}})
	if err != nil {
		t.Fatal(err)
	}
	menu := g.Scene()
	menuRoot := menu.Root()
	menu.Textures.Add("shared", ebiten.NewImage(1, 1))

	if err := g.Start("play"); err != nil {
		t.Fatal(err)
	}
	if g.Scene() != menu {
		t.Fatal("Start switched scenes immediately")
	}
	if err := g.Step(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if g.Scene().Key != "play" {
		t.Errorf("scene = %s, want play", g.Scene().Key)
	}
	if !menuRoot.IsDisposed() {
		t.Error("old scene graph was not disposed")
	}
	if !g.Scene().Textures.Has("shared") {
		t.Error("texture cache not shared across scenes")
	}
	if got := g.Signals.String("scene"); got != "play" {
		t.Errorf("scene signal = %q, want play", got)
	}
	if err := g.Start("missing"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Start(missing) = %v, want ErrUnknownScene", err)
	}
}

func TestGameQuitTerminates(t *testing.T) {
	g, err := NewGame(GameConfig{Width: 10, Height: 10, Scenes: []SceneConfig{{Key: "a"}}})
	if err != nil {
		t.Fatal(err)
	}
	g.Quit()
	if err := g.Step(0.1); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Step after Quit = %v, want Termination", err)
	}
}

func TestGameSeedIsDeterministic(t *testing.T) {
	draw := func() float64 {
		g, err := NewGame(GameConfig{Width: 10, Height: 10, Seed: 42, Scenes: []SceneConfig{{Key: "a"}}})
		if err != nil {
			t.Fatal(err)
		}
		return g.Scene().Rand.Float64()
	}
	if a, b := draw(), draw(); a != b {
		t.Errorf("seeded draws differ: %v vs %v", a, b)
	}
}

func TestGameExitWaitsForFinalScreenshot(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGame(GameConfig{
		Width: 10, Height: 10,
		ScreenshotDir:   dir,
		TestScript:      []byte(`{"steps": [{"action": "screenshot", "label": "last"}]}`),
		ExitOnScriptEnd: true,
		Scenes:          []SceneConfig{{Key: "a"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Step(1.0 / 60); err != nil {
		t.Fatalf("Step with a queued capture = %v, want nil", err)
	}
	if !g.Runner().Done() {
		t.Fatal("runner not done")
	}
	if n := g.Scene().PendingScreenshots(); n != 1 {
		t.Fatalf("PendingScreenshots = %d, want 1", n)
	}

	// Stands in for the Draw that follows the step.
	g.Scene().writeScreenshots(image.NewNRGBA(image.Rect(0, 0, 10, 10)))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("screenshots written = %d, want 1", len(entries))
	}
	if err := g.Step(1.0 / 60); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Step after capture = %v, want Termination", err)
	}
}
