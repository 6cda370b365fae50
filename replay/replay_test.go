package replay

import (
	"errors"
	"testing"
)

func TestRecorderWindow(t *testing.T) {
	var got []Action
	r := NewRecorder(1, func(a []Action) { got = a })
	r.Record("ignored", 0, 0)
	r.Start()
	r.Record("click", 10, 20)
	for range 30 {
		r.Update(1.0 / 60)
	}
	r.Record("click", 30, 40)
	for range 40 {
		r.Update(1.0 / 60)
	}
	r.Record("late", 0, 0)

	if r.Recording() {
		t.Fatal("Recording() = true after window")
	}
	if len(got) != 2 {
		t.Fatalf("len(actions) = %d, want 2", len(got))
	}
	if got[0].T != 0 || got[1].T < 0.49 || got[1].T > 0.51 {
		t.Errorf("timestamps = %v, %v", got[0].T, got[1].T)
	}
	if r.Elapsed() != 1 {
		t.Errorf("Elapsed() = %v, want 1", r.Elapsed())
	}
}

func TestNewPlayerEmpty(t *testing.T) {
	if _, err := NewPlayer(nil, 1, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestPlayerAtSpeeds(t *testing.T) {
	actions := []Action{{T: 0, Kind: "a"}, {T: 0.5, Kind: "b"}, {T: 1, Kind: "c"}}
	tests := []struct {
		cycles int
		speed  float64
		steps  int
	}{
		{0, 1, 8},
		{1, 2, 4},
		{2, 0.5, 16},
	}
	for _, tt := range tests {
		var applied []string
		p, err := NewPlayer(actions, 1, func(a Action) { applied = append(applied, a.Kind) })
		if err != nil {
			t.Fatal(err)
		}
		for range tt.cycles {
			p.CycleSpeed()
		}
		if p.Speed() != tt.speed {
			t.Fatalf("Speed() = %v, want %v", p.Speed(), tt.speed)
		}
		done := 0
		p.OnDone(func() { done++ })
		p.Play()
		steps := 0
		for p.Playing() && steps < 100 {
			p.Update(0.125)
			steps++
		}
		if steps != tt.steps {
			t.Errorf("speed %v: steps = %d, want %d", tt.speed, steps, tt.steps)
		}
		if len(applied) != 3 || applied[2] != "c" {
			t.Errorf("speed %v: applied = %v", tt.speed, applied)
		}
		if done != 1 || !p.Done() || p.Progress() != 1 {
			t.Errorf("speed %v: done=%d Done()=%v Progress()=%v", tt.speed, done, p.Done(), p.Progress())
		}
	}
}

func TestPlayerIdleUntilPlay(t *testing.T) {
	n := 0
	p, _ := NewPlayer([]Action{{T: 0}}, 0, func(Action) { n++ })
	p.Update(1)
	if n != 0 || p.Done() {
		t.Errorf("applied %d before Play, Done() = %v", n, p.Done())
	}
	p.Play()
	p.Update(0)
	if n != 1 || !p.Done() {
		t.Errorf("applied %d after Play, Done() = %v", n, p.Done())
	}
}
