package arcade

// TimerConfig describes a scheduled callback on a Clock. Times are in seconds
// of scene time.
type TimerConfig struct {
	// Delay between firings.
	Delay float64
	// Repeat is the number of additional firings after the first, so a
	// Repeat of N fires N+1 times in total. Ignored when Loop is set.
	Repeat int
	// Loop fires forever until the event is removed.
	Loop     bool
	Callback func()
	// StartAt pre-advances the first countdown.
	StartAt float64
	Paused  bool
}

// TimerEvent is a scheduled callback owned by a Clock.
type TimerEvent struct {
	cfg       TimerConfig
	elapsed   float64
	remaining int
	fired     int
	done      bool

	// Paused suspends the countdown without removing the event.
	Paused bool
}

// Remove cancels the event. Safe to call from inside its own callback.
func (e *TimerEvent) Remove() {
	e.done = true
}

// Done reports whether the event has finished or was removed.
func (e *TimerEvent) Done() bool {
	return e.done
}

// Fired returns how many times the callback has run.
func (e *TimerEvent) Fired() int {
	return e.fired
}

// RepeatCount returns how many firings remain after the next one.
func (e *TimerEvent) RepeatCount() int {
	return e.remaining
}

// Elapsed returns the time accumulated toward the next firing.
func (e *TimerEvent) Elapsed() float64 {
	return e.elapsed
}

// Progress returns the fraction of the current delay that has elapsed, in [0, 1].
func (e *TimerEvent) Progress() float64 {
	if e.cfg.Delay <= 0 {
		return 1
	}
	p := e.elapsed / e.cfg.Delay
	if p > 1 {
		return 1
	}
	return p
}

// Clock schedules timer events against scene time. Events added while the
// clock is firing callbacks start counting on the next Advance.
type Clock struct {
	// TimeScale multiplies every Advance. Zero freezes the clock.
	TimeScale float64

	now     float64
	events  []*TimerEvent
	pending []*TimerEvent
	firing  bool
}

// NewClock returns a clock at time zero with a time scale of 1.
func NewClock() *Clock {
	return &Clock{TimeScale: 1}
}

// Now returns the scene time in seconds.
func (c *Clock) Now() float64 {
	return c.now
}

// AddEvent schedules a new timer event.
func (c *Clock) AddEvent(cfg TimerConfig) *TimerEvent {
	e := &TimerEvent{
		cfg:       cfg,
		elapsed:   cfg.StartAt,
		remaining: max(cfg.Repeat, 0),
		Paused:    cfg.Paused,
	}
	if c.firing {
		c.pending = append(c.pending, e)
	} else {
		c.events = append(c.events, e)
	}
	return e
}

// DelayedCall runs fn once after delay seconds.
func (c *Clock) DelayedCall(delay float64, fn func()) *TimerEvent {
	return c.AddEvent(TimerConfig{Delay: delay, Callback: fn})
}

// Loop runs fn every interval seconds until the event is removed.
func (c *Clock) Loop(interval float64, fn func()) *TimerEvent {
	return c.AddEvent(TimerConfig{Delay: interval, Loop: true, Callback: fn})
}

// Len returns the number of live events.
func (c *Clock) Len() int {
	n := len(c.pending)
	for _, e := range c.events {
		if !e.done {
			n++
		}
	}
	return n
}

// RemoveAll cancels every event.
func (c *Clock) RemoveAll() {
	for _, e := range c.events {
		e.done = true
	}
	for _, e := range c.pending {
		e.done = true
	}
}

// Advance moves scene time forward by dt*TimeScale and fires due callbacks.
// An event with a non-positive delay fires at most once per Advance.
func (c *Clock) Advance(dt float64) {
	dt *= c.TimeScale
	if dt <= 0 {
		return
	}
	c.now += dt

	c.firing = true
	for _, e := range c.events {
		if e.done || e.Paused {
			continue
		}
		e.elapsed += dt
		if e.cfg.Delay <= 0 {
			e.elapsed = 0
			c.fire(e)
			continue
		}
		for !e.done && e.elapsed >= e.cfg.Delay {
			e.elapsed -= e.cfg.Delay
			c.fire(e)
		}
	}
	c.firing = false

	live := c.events[:0]
	for _, e := range c.events {
		if !e.done {
			live = append(live, e)
		}
	}
	clear(c.events[len(live):])
	c.events = append(live, c.pending...)
	clear(c.pending)
	c.pending = c.pending[:0]
}

func (c *Clock) fire(e *TimerEvent) {
	e.fired++
	if !e.cfg.Loop {
		if e.remaining == 0 {
			e.done = true
		} else {
			e.remaining--
		}
	}
	if e.cfg.Callback != nil {
		e.cfg.Callback()
	}
}
