package behavior

import "github.com/phanxgames/arcade"

// WaveConfig configures a WaveSpawner.
type WaveConfig struct {
	// Size returns how many enemies wave w (1-based) has.
	Size func(wave int) int
	// MaxWaves stops after that many waves; zero runs forever.
	MaxWaves int
	// SpawnInterval separates spawns inside a wave.
	SpawnInterval float64
	// WaveDelay is the pause between a cleared wave and the next.
	WaveDelay float64

	Spawn          func(wave, index int)
	OnWaveStart    func(wave int)
	OnWaveComplete func(wave int)
	OnAllComplete  func()
}

// WaveSpawner runs successive waves. A wave completes when every enemy it
// spawned has been reported with Killed.
type WaveSpawner struct {
	cfg     WaveConfig
	clock   *arcade.Clock
	wave    int
	size    int
	spawned int
	alive   int
	spawner *Spawner
	pending *arcade.TimerEvent
	done    bool
}

// NewWaveSpawner creates an idle wave spawner on clock.
func NewWaveSpawner(clock *arcade.Clock, cfg WaveConfig) *WaveSpawner {
	if cfg.Size == nil {
		cfg.Size = func(w int) int { return 3 + 2*(w-1) }
	}
	return &WaveSpawner{cfg: cfg, clock: clock}
}

// Start begins wave 1.
func (ws *WaveSpawner) Start() {
	ws.wave = 0
	ws.done = false
	ws.next()
}

func (ws *WaveSpawner) next() {
	ws.pending = nil
	ws.wave++
	ws.size = ws.cfg.Size(ws.wave)
	ws.spawned = 0
	if ws.cfg.OnWaveStart != nil {
		ws.cfg.OnWaveStart(ws.wave)
	}
	wave := ws.wave
	ws.spawner = NewSpawner(ws.clock, SpawnerConfig{
		Interval: ws.cfg.SpawnInterval,
		Cap:      ws.size,
		Spawn: func(i int) {
			ws.spawned++
			ws.alive++
			if ws.cfg.Spawn != nil {
				ws.cfg.Spawn(wave, i)
			}
		},
	})
	if ws.size <= 0 {
		ws.complete()
	}
}

// Killed reports that one enemy of the current wave is gone.
func (ws *WaveSpawner) Killed() {
	if ws.alive == 0 {
		return
	}
	ws.alive--
	if ws.alive == 0 && ws.spawned == ws.size {
		ws.complete()
	}
}

func (ws *WaveSpawner) complete() {
	if ws.cfg.OnWaveComplete != nil {
		ws.cfg.OnWaveComplete(ws.wave)
	}
	if ws.cfg.MaxWaves > 0 && ws.wave >= ws.cfg.MaxWaves {
		ws.done = true
		if ws.cfg.OnAllComplete != nil {
			ws.cfg.OnAllComplete()
		}
		return
	}
	ws.pending = ws.clock.DelayedCall(ws.cfg.WaveDelay, ws.next)
}

// Stop cancels spawning and any queued wave.
func (ws *WaveSpawner) Stop() {
	if ws.spawner != nil {
		ws.spawner.Stop()
	}
	if ws.pending != nil {
		ws.pending.Remove()
	}
	ws.done = true
}

// Wave returns the current wave number, 0 before Start.
func (ws *WaveSpawner) Wave() int { return ws.wave }

// Alive returns the spawned enemies not yet killed.
func (ws *WaveSpawner) Alive() int { return ws.alive }

// Remaining returns enemies of the current wave still to spawn or kill.
func (ws *WaveSpawner) Remaining() int { return ws.size - ws.spawned + ws.alive }

// Between reports whether the spawner is waiting for the next wave.
func (ws *WaveSpawner) Between() bool { return ws.pending != nil && !ws.pending.Done() }

// Done reports whether all waves finished or the spawner was stopped.
func (ws *WaveSpawner) Done() bool { return ws.done }
