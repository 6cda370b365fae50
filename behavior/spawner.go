package behavior

import "github.com/phanxgames/arcade"

// SpawnerConfig configures a capped spawner.
type SpawnerConfig struct {
	// Interval between spawns in seconds.
	Interval float64
	// Cap is the total number of spawns; the timer cancels itself after it.
	Cap int
	// Spawn creates object i (0-based).
	Spawn func(i int)
	// OnDone runs once the cap is reached.
	OnDone func()
}

// Spawner invokes Spawn on a repeating timer until Cap objects exist.
type Spawner struct {
	cfg   SpawnerConfig
	ev    *arcade.TimerEvent
	count int
}

// NewSpawner starts a capped spawner on clock. A non-positive Cap spawns
// nothing.
func NewSpawner(clock *arcade.Clock, cfg SpawnerConfig) *Spawner {
	sp := &Spawner{cfg: cfg}
	if cfg.Cap <= 0 {
		return sp
	}
	sp.ev = clock.AddEvent(arcade.TimerConfig{
		Delay:    cfg.Interval,
		Repeat:   cfg.Cap - 1,
		Callback: sp.fire,
	})
	return sp
}

func (sp *Spawner) fire() {
	if sp.count >= sp.cfg.Cap {
		sp.ev.Remove()
		return
	}
	i := sp.count
	sp.count++
	if sp.cfg.Spawn != nil {
		sp.cfg.Spawn(i)
	}
	if sp.count == sp.cfg.Cap {
		sp.ev.Remove()
		if sp.cfg.OnDone != nil {
			sp.cfg.OnDone()
		}
	}
}

// Count returns how many objects have been spawned.
func (sp *Spawner) Count() int {
	return sp.count
}

// Done reports whether the spawner reached its cap or was stopped.
func (sp *Spawner) Done() bool {
	return sp.ev == nil || sp.ev.Done()
}

// Stop cancels remaining spawns.
func (sp *Spawner) Stop() {
	if sp.ev != nil {
		sp.ev.Remove()
	}
}
