// Package achievement tracks progress toward unlockable achievements and
// persists the result through a key/value store.
package achievement

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/phanxgames/arcade/save"
)

// Definition describes one achievement. Target is the progress value that
// unlocks it.
type Definition struct {
	ID          string
	Name        string
	Description string
	Target      int
}

// Store is the persistence the tracker needs. *save.Store satisfies it.
type Store interface {
	Put(ctx context.Context, key string, v any) error
	Get(ctx context.Context, key string, v any) error
}

// Config defines a tracker. When Meta.ID is set, Meta unlocks once
// Meta.Target other achievements have unlocked.
type Config struct {
	Definitions []Definition
	Meta        Definition
	Key         string
	OnUnlock    func(Definition)
}

type state struct {
	Progress map[string]int  `json:"progress"`
	Unlocked map[string]bool `json:"unlocked"`
	Order    []string        `json:"order"`
}

// Tracker holds progress and unlock state.
type Tracker struct {
	cfg   Config
	defs  map[string]Definition
	state state
}

// NewTracker validates definitions and returns an empty tracker.
func NewTracker(cfg Config) (*Tracker, error) {
	if cfg.Key == "" {
		cfg.Key = "achievements"
	}
	t := &Tracker{cfg: cfg, defs: make(map[string]Definition)}
	for _, d := range cfg.Definitions {
		if d.ID == "" {
			return nil, errors.New("achievement: definition without id")
		}
		if _, dup := t.defs[d.ID]; dup || d.ID == cfg.Meta.ID {
			return nil, fmt.Errorf("achievement: duplicate id %q", d.ID)
		}
		if d.Target <= 0 {
			return nil, fmt.Errorf("achievement: %s: target must be positive", d.ID)
		}
		t.defs[d.ID] = d
	}
	if cfg.Meta.ID != "" && (cfg.Meta.Target <= 0 || cfg.Meta.Target > len(cfg.Definitions)) {
		return nil, fmt.Errorf("achievement: meta %s: target must be in [1, %d]", cfg.Meta.ID, len(cfg.Definitions))
	}
	t.Reset()
	return t, nil
}

// Reset clears all progress and unlocks.
func (t *Tracker) Reset() {
	t.state = state{Progress: map[string]int{}, Unlocked: map[string]bool{}}
}

// Progress records value for id, keeping the highest value seen, and returns
// the achievements this call unlocked (including the meta achievement).
func (t *Tracker) Progress(id string, value int) ([]Definition, error) {
	d, ok := t.defs[id]
	if !ok {
		return nil, fmt.Errorf("achievement: unknown id %q", id)
	}
	if value > t.state.Progress[id] {
		t.state.Progress[id] = value
	}
	if t.state.Unlocked[id] || t.state.Progress[id] < d.Target {
		return nil, nil
	}
	unlocked := []Definition{t.unlock(d)}
	if m, ok := t.checkMeta(); ok {
		unlocked = append(unlocked, m)
	}
	return unlocked, nil
}

// checkMeta unlocks the meta achievement once enough regular ones are
// unlocked.
func (t *Tracker) checkMeta() (Definition, bool) {
	m := t.cfg.Meta
	if m.ID == "" || t.state.Unlocked[m.ID] || t.regularUnlocked() < m.Target {
		return Definition{}, false
	}
	return t.unlock(m), true
}

// Increment adds delta to id's progress.
func (t *Tracker) Increment(id string, delta int) ([]Definition, error) {
	return t.Progress(id, t.state.Progress[id]+delta)
}

func (t *Tracker) unlock(d Definition) Definition {
	t.state.Unlocked[d.ID] = true
	t.state.Order = append(t.state.Order, d.ID)
	if t.cfg.OnUnlock != nil {
		t.cfg.OnUnlock(d)
	}
	return d
}

func (t *Tracker) regularUnlocked() int {
	n := 0
	for id := range t.defs {
		if t.state.Unlocked[id] {
			n++
		}
	}
	return n
}

// Value returns id's progress.
func (t *Tracker) Value(id string) int { return t.state.Progress[id] }

// Unlocked reports whether id is unlocked.
func (t *Tracker) Unlocked(id string) bool { return t.state.Unlocked[id] }

// UnlockedCount returns the number of unlocked achievements, meta included.
func (t *Tracker) UnlockedCount() int { return len(t.state.Order) }

// UnlockOrder returns unlocked IDs in the order they unlocked.
func (t *Tracker) UnlockOrder() []string { return slices.Clone(t.state.Order) }

// Definitions returns the regular definitions in declaration order.
func (t *Tracker) Definitions() []Definition { return slices.Clone(t.cfg.Definitions) }

// Save writes progress to store.
func (t *Tracker) Save(ctx context.Context, store Store) error {
	if err := store.Put(ctx, t.cfg.Key, t.state); err != nil {
		return fmt.Errorf("save achievements: %w", err)
	}
	return nil
}

// Load replaces progress with what store holds. A store with no saved state
// leaves the tracker reset. Unknown IDs are dropped.
func (t *Tracker) Load(ctx context.Context, store Store) error {
	var st state
	err := store.Get(ctx, t.cfg.Key, &st)
	if errors.Is(err, save.ErrNotFound) {
		t.Reset()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load achievements: %w", err)
	}
	t.Reset()
	for id, v := range st.Progress {
		if _, ok := t.defs[id]; ok {
			t.state.Progress[id] = v
		}
	}
	for _, id := range st.Order {
		if _, ok := t.defs[id]; ok || id == t.cfg.Meta.ID {
			if !t.state.Unlocked[id] {
				t.state.Unlocked[id] = true
				t.state.Order = append(t.state.Order, id)
			}
		}
	}
	t.checkMeta()
	return nil
}
