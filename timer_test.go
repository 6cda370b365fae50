package arcade

import "testing"

func TestTimerRepeatFiresRepeatPlusOne(t *testing.T) {
	c := NewClock()
	count := 0
	ev := c.AddEvent(TimerConfig{Delay: 1, Repeat: 3, Callback: func() { count++ }})

	for range 10 {
		c.Advance(1)
	}
	if count != 4 {
		t.Errorf("fired = %d, want 4", count)
	}
	if !ev.Done() {
		t.Error("event should be done")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestTimerLargeStepFiresEachPeriod(t *testing.T) {
	c := NewClock()
	count := 0
	c.Loop(0.25, func() { count++ })
	c.Advance(1)
	if count != 4 {
		t.Errorf("fired = %d, want 4", count)
	}
}

func TestTimerZeroDelayFiresOncePerAdvance(t *testing.T) {
	c := NewClock()
	count := 0
	c.Loop(0, func() { count++ })
	c.Advance(1)
	c.Advance(1)
	if count != 2 {
		t.Errorf("fired = %d, want 2", count)
	}
}

func TestTimerRemoveFromCallback(t *testing.T) {
	c := NewClock()
	count := 0
	var ev *TimerEvent
	ev = c.Loop(1, func() {
		count++
		if count == 2 {
			ev.Remove()
		}
	})
	for range 5 {
		c.Advance(1)
	}
	if count != 2 {
		t.Errorf("fired = %d, want 2", count)
	}
}

func TestTimerAddedDuringFireStartsNextAdvance(t *testing.T) {
	c := NewClock()
	inner := 0
	c.DelayedCall(1, func() {
		c.DelayedCall(0.5, func() { inner++ })
	})
	c.Advance(1)
	if inner != 0 {
		t.Fatalf("inner fired during the same Advance")
	}
	c.Advance(0.5)
	if inner != 1 {
		t.Errorf("inner = %d, want 1", inner)
	}
}

func TestTimerPausedAndTimeScale(t *testing.T) {
	c := NewClock()
	count := 0
	ev := c.AddEvent(TimerConfig{Delay: 1, Loop: true, Paused: true, Callback: func() { count++ }})
	c.Advance(5)
	if count != 0 {
		t.Errorf("paused event fired %d times", count)
	}
	ev.Paused = false
	c.TimeScale = 2
	c.Advance(1)
	if count != 2 {
		t.Errorf("fired = %d, want 2", count)
	}
	assertNear(t, "Now", c.Now(), 12)
}

func TestTimerProgress(t *testing.T) {
	c := NewClock()
	ev := c.AddEvent(TimerConfig{Delay: 2, StartAt: 0.5})
	assertNear(t, "initial progress", ev.Progress(), 0.25)
	c.Advance(0.5)
	assertNear(t, "progress", ev.Progress(), 0.5)
	assertNear(t, "elapsed", ev.Elapsed(), 1)
}

func TestClockRemoveAll(t *testing.T) {
	c := NewClock()
	count := 0
	c.Loop(1, func() { count++ })
	c.Loop(1, func() { count++ })
	c.RemoveAll()
	c.Advance(3)
	if count != 0 {
		t.Errorf("fired = %d after RemoveAll", count)
	}
}
