package behavior

import (
	"math"
	"testing"

	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/physics"
)

func advance(c *arcade.Clock, seconds float64) {
	const dt = 1.0 / 60
	for t := 0.0; t < seconds-1e-9; t += dt {
		c.Advance(dt)
	}
}

func TestSpawnerCountIsMinOfFiringsAndCap(t *testing.T) {
	for _, firings := range []int{0, 1, 5, 12, 13, 40} {
		c := arcade.NewClock()
		spawned := 0
		sp := NewSpawner(c, SpawnerConfig{Interval: 1, Cap: 12, Spawn: func(int) { spawned++ }})
		for range firings {
			c.Advance(1)
		}
		want := min(firings, 12)
		if sp.Count() != want || spawned != want {
			t.Errorf("firings %d: Count = %d, spawned = %d, want %d", firings, sp.Count(), spawned, want)
		}
		if sp.Done() != (firings >= 12) {
			t.Errorf("firings %d: Done = %v", firings, sp.Done())
		}
	}
}

func TestSpawnerOnDoneAndStop(t *testing.T) {
	c := arcade.NewClock()
	done := 0
	NewSpawner(c, SpawnerConfig{Interval: 0.5, Cap: 3, OnDone: func() { done++ }})
	advance(c, 5)
	if done != 1 {
		t.Errorf("OnDone calls = %d, want 1", done)
	}

	sp := NewSpawner(c, SpawnerConfig{Interval: 0.5, Cap: 3})
	c.Advance(0.5)
	sp.Stop()
	c.Advance(5)
	if sp.Count() != 1 {
		t.Errorf("Count after Stop = %d, want 1", sp.Count())
	}
	if c.Len() != 0 {
		t.Errorf("clock still holds %d events", c.Len())
	}
}

func TestSpeedKeeperWithinTolerance(t *testing.T) {
	w := physics.NewWorld(arcade.Rect{Width: 100, Height: 100})
	b := w.Enable(arcade.NewRect("ball", 4, 4, arcade.ColorWhite))
	k := SpeedKeeper{Target: 200, Tolerance: 5}

	tests := []struct {
		vx, vy  float64
		changed bool
	}{
		{120, 160, false}, // exactly 200
		{100, 0, true},
		{300, 400, true},
		{0, 203, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		b.SetVelocity(tt.vx, tt.vy)
		dir := math.Atan2(tt.vy, tt.vx)
		if got := k.Apply(b); got != tt.changed {
			t.Errorf("Apply(%v, %v) = %v, want %v", tt.vx, tt.vy, got, tt.changed)
		}
		if tt.vx == 0 && tt.vy == 0 {
			continue
		}
		if s := b.Speed(); math.Abs(s-200) > 5 {
			t.Errorf("speed after Apply(%v, %v) = %v", tt.vx, tt.vy, s)
		}
		if d := math.Atan2(b.Velocity.Y, b.Velocity.X); math.Abs(d-dir) > 1e-9 {
			t.Errorf("direction changed: %v -> %v", dir, d)
		}
	}
}

func TestWrapOncePerCrossing(t *testing.T) {
	bounds := arcade.Rect{Width: 800, Height: 600}
	n := arcade.NewContainer("ship")
	n.SetPosition(790, 300)

	wraps := 0
	for range 40 {
		n.Move(2, 0)
		if Wrap(n, bounds, 16) {
			wraps++
		}
	}
	if wraps != 1 {
		t.Errorf("wraps = %d, want 1", wraps)
	}
	if n.X < -16 || n.X > 100 {
		t.Errorf("X after wrap = %v", n.X)
	}

	n.SetPosition(400, -17)
	if !Wrap(n, bounds, 16) || n.Y != 616 {
		t.Errorf("vertical wrap Y = %v, want 616", n.Y)
	}
}

func TestBounceReflects(t *testing.T) {
	w := physics.NewWorld(arcade.Rect{Width: 100, Height: 100})
	b := w.Enable(arcade.NewRect("ball", 10, 10, arcade.ColorWhite))
	b.SetPosition(2, 50)
	b.SetVelocity(-30, 10)

	if !Bounce(b, arcade.Rect{Width: 100, Height: 100}) {
		t.Fatal("Bounce = false, want true")
	}
	if b.Velocity.X != 30 || b.Velocity.Y != 10 {
		t.Errorf("Velocity = %+v, want (30, 10)", b.Velocity)
	}
	if b.Node.X != 5 {
		t.Errorf("X = %v, want 5", b.Node.X)
	}
}

func TestDragReturn(t *testing.T) {
	s := arcade.NewScene(400, 400)
	n := s.Add(arcade.NewRect("card", 40, 40, arcade.ColorWhite))
	n.SetPosition(100, 100)
	d := NewDragReturn(s.Tweens, n, 0.25)
	returned := 0
	d.OnReturned = func(*arcade.Node) { returned++ }

	s.InjectDrag(100, 100, 300, 250, 8)
	for range 8 {
		if err := s.Step(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if !d.Returning() {
		t.Fatal("return tween not running after drop")
	}
	for range 30 {
		if err := s.Step(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if math.Abs(n.X-100) > 1e-3 || math.Abs(n.Y-100) > 1e-3 {
		t.Errorf("position = (%v, %v), want (100, 100)", n.X, n.Y)
	}
	if returned != 1 || d.Returns() != 1 {
		t.Errorf("returned = %d, want 1", returned)
	}
}

func TestCooldown(t *testing.T) {
	c := arcade.NewClock()
	cd := NewCooldown(c, 2)
	if !cd.Trigger() {
		t.Fatal("first Trigger failed")
	}
	if cd.Trigger() {
		t.Error("Trigger succeeded during cooldown")
	}
	c.Advance(1)
	if p := cd.Progress(); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("Progress = %v, want 0.5", p)
	}
	c.Advance(1)
	if !cd.Ready() || !cd.Trigger() {
		t.Error("cooldown not ready after duration")
	}
	if cd.Uses() != 2 {
		t.Errorf("Uses = %d, want 2", cd.Uses())
	}
	cd.Reset()
	if !cd.Ready() {
		t.Error("Reset should make the cooldown ready")
	}
}

func TestWaveSpawner(t *testing.T) {
	c := arcade.NewClock()
	var started, completed []int
	allDone := false
	ws := NewWaveSpawner(c, WaveConfig{
		Size:           func(w int) int { return w + 1 },
		MaxWaves:       2,
		SpawnInterval:  0.5,
		WaveDelay:      1,
		OnWaveStart:    func(w int) { started = append(started, w) },
		OnWaveComplete: func(w int) { completed = append(completed, w) },
		OnAllComplete:  func() { allDone = true },
	})
	ws.Start()
	advance(c, 2)
	if ws.Alive() != 2 || ws.Wave() != 1 {
		t.Fatalf("wave %d alive %d, want wave 1 alive 2", ws.Wave(), ws.Alive())
	}
	ws.Killed()
	ws.Killed()
	if len(completed) != 1 || !ws.Between() {
		t.Fatalf("completed = %v, between = %v", completed, ws.Between())
	}

	advance(c, 1.1)
	if ws.Wave() != 2 {
		t.Fatalf("Wave = %d, want 2", ws.Wave())
	}
	advance(c, 2)
	for range 3 {
		ws.Killed()
	}
	if !allDone || !ws.Done() {
		t.Error("all waves should be complete")
	}
	if len(started) != 2 || len(completed) != 2 {
		t.Errorf("started = %v, completed = %v", started, completed)
	}
}

func TestLevelTimer(t *testing.T) {
	c := arcade.NewClock()
	var timedOut []int
	lt := NewLevelTimer(c, 10, func(l int) { timedOut = append(timedOut, l) })

	lt.Start(1)
	c.Advance(4)
	if r := lt.Remaining(); r != 6 {
		t.Errorf("Remaining = %v, want 6", r)
	}
	if took := lt.Complete(); took != 4 {
		t.Errorf("Complete = %v, want 4", took)
	}

	lt.Start(2)
	c.Advance(11)
	if len(timedOut) != 1 || timedOut[0] != 2 || !lt.Expired() {
		t.Errorf("timedOut = %v, expired = %v", timedOut, lt.Expired())
	}
	if lt.Total() != 14 {
		t.Errorf("Total = %v, want 14", lt.Total())
	}
}
