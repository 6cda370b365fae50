package arcade

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func stepTweens(m *Tweens, steps int) {
	for range steps {
		m.Update(1.0 / 60)
	}
}

func TestTweenMovesToTarget(t *testing.T) {
	n := NewContainer("n")
	m := &Tweens{}
	completed := false
	m.MoveTo(n, 100, 50, 0.5, ease.OutQuad, func() { completed = true })

	stepTweens(m, 15)
	if n.X <= 0 || n.X >= 100 {
		t.Errorf("mid-tween X = %v, want in (0, 100)", n.X)
	}
	stepTweens(m, 30)
	assertNear(t, "X", n.X, 100)
	assertNear(t, "Y", n.Y, 50)
	if !completed {
		t.Error("OnComplete not called")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestTweenYoyoReturnsToStart(t *testing.T) {
	n := NewContainer("n")
	n.Alpha = 1
	m := &Tweens{}
	m.Add(TweenConfig{Target: n, To: map[Prop]float64{PropAlpha: 0}, Duration: 0.25, Yoyo: true})

	stepTweens(m, 15)
	if n.Alpha > 0.1 {
		t.Errorf("Alpha at turn = %v, want near 0", n.Alpha)
	}
	stepTweens(m, 20)
	assertNear(t, "Alpha", n.Alpha, 1)
}

func TestTweenDisposedTargetStopsWithoutComplete(t *testing.T) {
	n := NewContainer("n")
	m := &Tweens{}
	completed := false
	tw := m.MoveTo(n, 10, 10, 1, nil, func() { completed = true })

	stepTweens(m, 5)
	n.Dispose()
	stepTweens(m, 120)

	if completed {
		t.Error("OnComplete called for disposed target")
	}
	if !tw.Done() {
		t.Error("tween should be done")
	}
}

func TestTweenDelay(t *testing.T) {
	n := NewContainer("n")
	tw := NewTween(TweenConfig{Target: n, To: map[Prop]float64{PropX: 10}, Duration: 1, Delay: 0.5})
	tw.Update(0.4)
	if n.X != 0 {
		t.Errorf("X during delay = %v, want 0", n.X)
	}
	tw.Update(0.6)
	if n.X <= 0 {
		t.Errorf("X after delay = %v, want > 0", n.X)
	}
}

func TestTweenInfiniteRepeat(t *testing.T) {
	n := NewContainer("n")
	m := &Tweens{}
	m.Add(TweenConfig{Target: n, To: map[Prop]float64{PropRotation: 1}, Duration: 0.1, Repeat: -1})
	stepTweens(m, 600)
	if !m.IsTweening(n) {
		t.Error("infinite tween ended")
	}
	m.KillTweensOf(n)
	stepTweens(m, 1)
	if m.IsTweening(n) {
		t.Error("KillTweensOf left a live tween")
	}
}

func TestTweenColor(t *testing.T) {
	n := NewRect("r", 1, 1, ColorWhite)
	tw := TweenColor(n, RGB(0x000000), 1, ease.Linear)
	for range 70 {
		tw.Update(1.0 / 60)
	}
	assertNear(t, "R", n.Color.R, 0)
	assertNear(t, "A", n.Color.A, 1)
}

func TestTweenYoyoCarriesOverflow(t *testing.T) {
	n := NewContainer("n")
	completed := false
	tw := NewTween(TweenConfig{
		Target: n, To: map[Prop]float64{PropX: 10}, Duration: 1, Yoyo: true,
		OnComplete: func() { completed = true },
	})

	tw.Update(0.75)
	tw.Update(0.5)
	assertNear(t, "X after turn", n.X, 7.5)

	tw.Update(0.75)
	assertNear(t, "X at end", n.X, 0)
	if !completed || !tw.Done() {
		t.Error("yoyo should complete after two full passes")
	}
}

func TestTweenRepeatCarriesOverflow(t *testing.T) {
	n := NewContainer("n")
	tw := NewTween(TweenConfig{Target: n, To: map[Prop]float64{PropX: 10}, Duration: 1, Repeat: 2})

	// Two and a half passes in one step.
	tw.Update(2.5)
	assertNear(t, "X", n.X, 5)
	if tw.Done() {
		t.Fatal("tween finished early")
	}
	tw.Update(0.5)
	if !tw.Done() {
		t.Error("tween should be done after three passes")
	}
}

func TestTweenAngleInDegrees(t *testing.T) {
	n := NewContainer("n")
	n.SetRotation(math.Pi / 2)
	tw := NewTween(TweenConfig{Target: n, To: map[Prop]float64{PropAngle: 180}, Duration: 1})

	tw.Update(0.5)
	if math.Abs(n.Rotation-3*math.Pi/4) > 1e-5 {
		t.Errorf("Rotation halfway = %v, want %v", n.Rotation, 3*math.Pi/4)
	}
	tw.Update(0.5)
	if math.Abs(n.Rotation-math.Pi) > 1e-5 {
		t.Errorf("Rotation = %v, want pi", n.Rotation)
	}
}
