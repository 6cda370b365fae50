package behavior

import "github.com/phanxgames/arcade"

// LevelTimer counts down a per-level time limit and keeps the total time
// spent across completed levels.
type LevelTimer struct {
	Limit float64
	// OnTimeout runs when a level's limit runs out.
	OnTimeout func(level int)

	clock   *arcade.Clock
	level   int
	started float64
	ev      *arcade.TimerEvent
	total   float64
	expired bool
	running bool
}

// NewLevelTimer creates a stopped timer on clock.
func NewLevelTimer(clock *arcade.Clock, limit float64, onTimeout func(level int)) *LevelTimer {
	return &LevelTimer{Limit: limit, OnTimeout: onTimeout, clock: clock}
}

// Start begins level with a fresh countdown, cancelling any running one.
func (lt *LevelTimer) Start(level int) {
	if lt.ev != nil {
		lt.ev.Remove()
	}
	lt.level = level
	lt.started = lt.clock.Now()
	lt.expired = false
	lt.running = true
	lt.ev = lt.clock.DelayedCall(lt.Limit, func() {
		lt.total += lt.Limit
		lt.expired = true
		lt.running = false
		if lt.OnTimeout != nil {
			lt.OnTimeout(lt.level)
		}
	})
}

// Complete stops the countdown and adds the level time to the total.
// Returns the seconds the level took.
func (lt *LevelTimer) Complete() float64 {
	if !lt.running {
		return 0
	}
	took := lt.Elapsed()
	lt.ev.Remove()
	lt.running = false
	lt.total += took
	return took
}

// Elapsed returns seconds spent in the current level.
func (lt *LevelTimer) Elapsed() float64 {
	if !lt.running {
		return 0
	}
	return min(lt.clock.Now()-lt.started, lt.Limit)
}

// Remaining returns seconds left in the current level.
func (lt *LevelTimer) Remaining() float64 {
	if !lt.running {
		return 0
	}
	return lt.Limit - lt.Elapsed()
}

// Level returns the current level.
func (lt *LevelTimer) Level() int { return lt.level }

// Running reports whether a countdown is active.
func (lt *LevelTimer) Running() bool { return lt.running }

// Expired reports whether the last level timed out.
func (lt *LevelTimer) Expired() bool { return lt.expired }

// Total returns time spent across finished levels.
func (lt *LevelTimer) Total() float64 { return lt.total }
