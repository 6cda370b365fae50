package achievement

import (
	"context"
	"testing"

	"github.com/phanxgames/arcade/save"
)

func testConfig() Config {
	return Config{
		Definitions: []Definition{
			{ID: "first", Name: "First Blood", Target: 1},
			{ID: "ten", Name: "Ten Down", Target: 10},
			{ID: "combo", Name: "Combo", Target: 3},
		},
		Meta: Definition{ID: "master", Name: "Master", Target: 2},
	}
}

func TestNewTrackerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing id", Config{Definitions: []Definition{{Target: 1}}}},
		{"duplicate", Config{Definitions: []Definition{{ID: "a", Target: 1}, {ID: "a", Target: 1}}}},
		{"zero target", Config{Definitions: []Definition{{ID: "a"}}}},
		{"meta too large", Config{Definitions: []Definition{{ID: "a", Target: 1}}, Meta: Definition{ID: "m", Target: 2}}},
	}
	for _, tt := range tests {
		if _, err := NewTracker(tt.cfg); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestProgressUnlocksOnce(t *testing.T) {
	var fired []string
	cfg := testConfig()
	cfg.OnUnlock = func(d Definition) { fired = append(fired, d.ID) }
	tr, err := NewTracker(cfg)
	if err != nil {
		t.Fatal(err)
	}

	got, _ := tr.Progress("ten", 9)
	if len(got) != 0 {
		t.Errorf("unlocked at 9 = %v", got)
	}
	got, _ = tr.Progress("ten", 10)
	if len(got) != 1 || got[0].ID != "ten" {
		t.Errorf("unlocked at 10 = %v", got)
	}
	got, _ = tr.Progress("ten", 12)
	if len(got) != 0 {
		t.Errorf("unlocked twice = %v", got)
	}
	tr.Progress("ten", 4)
	if tr.Value("ten") != 12 {
		t.Errorf("Value = %d, want 12", tr.Value("ten"))
	}

	got, _ = tr.Increment("first", 1)
	if len(got) != 2 || got[0].ID != "first" || got[1].ID != "master" {
		t.Errorf("unlocked with meta = %v", got)
	}
	if len(fired) != 3 || tr.UnlockedCount() != 3 {
		t.Errorf("fired = %v, count = %d", fired, tr.UnlockedCount())
	}
	if _, err := tr.Progress("nope", 1); err == nil {
		t.Error("expected error for unknown id")
	}

	tr.Reset()
	if tr.UnlockedCount() != 0 || tr.Value("ten") != 0 {
		t.Error("Reset left state behind")
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store, err := save.Open(ctx, save.MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	tr, _ := NewTracker(testConfig())
	if err := tr.Load(ctx, store); err != nil {
		t.Fatalf("load empty: %v", err)
	}
	tr.Progress("combo", 3)
	tr.Progress("ten", 5)
	if err := tr.Save(ctx, store); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, _ := NewTracker(testConfig())
	if err := again.Load(ctx, store); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !again.Unlocked("combo") || again.Value("ten") != 5 || again.Unlocked("ten") {
		t.Errorf("loaded state: combo=%v ten=%d/%v", again.Unlocked("combo"), again.Value("ten"), again.Unlocked("ten"))
	}
	got, _ := again.Progress("first", 1)
	if len(got) != 2 {
		t.Errorf("meta after load: %v", got)
	}
}

func TestLoadUnlocksEarnedMeta(t *testing.T) {
	ctx := context.Background()
	store, err := save.Open(ctx, save.MemoryPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	noMeta := testConfig()
	noMeta.Meta = Definition{}
	before, _ := NewTracker(noMeta)
	before.Progress("first", 1)
	before.Progress("combo", 3)
	if err := before.Save(ctx, store); err != nil {
		t.Fatalf("save: %v", err)
	}

	var fired []string
	cfg := testConfig()
	cfg.OnUnlock = func(d Definition) { fired = append(fired, d.ID) }
	after, _ := NewTracker(cfg)
	if err := after.Load(ctx, store); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !after.Unlocked("master") {
		t.Error("meta not unlocked by load")
	}
	if len(fired) != 1 || fired[0] != "master" {
		t.Errorf("fired = %v, want [master]", fired)
	}
}
