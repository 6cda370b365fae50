package sfx

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/effects"
)

func TestStreamFadesOut(t *testing.T) {
	b := NewBank(false)
	b.Define("blip", Tone{Freq: 440, Duration: 10 * time.Millisecond})

	s, err := b.Stream("blip")
	if err != nil {
		t.Fatal(err)
	}
	vol, ok := s.(*effects.Volume)
	if !ok {
		t.Fatalf("stream = %T, want *effects.Volume", s)
	}
	if _, ok := vol.Streamer.(*effects.TransitionStreamer); !ok {
		t.Errorf("volume source = %T, want *effects.TransitionStreamer", vol.Streamer)
	}
	want := SampleRate.N(10 * time.Millisecond)
	buf := make([][2]float64, 64)
	total := 0
	var head, tail float64
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			v := math.Abs(buf[i][0])
			if v > 1 {
				t.Fatalf("sample %d out of range: %v", total+i, v)
			}
			if total+i < want/4 {
				head = max(head, v)
			} else if total+i >= want*9/10 {
				tail = max(tail, v)
			}
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	if total != want {
		t.Errorf("samples = %d, want %d", total, want)
	}
	if tail >= head {
		t.Errorf("tail peak %v not below head peak %v", tail, head)
	}
}

func TestUnknownSound(t *testing.T) {
	b := NewBank(false)
	if _, err := b.Stream("nope"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("Stream err = %v, want ErrUnknownSound", err)
	}
	if err := b.Play("nope"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("Play err = %v, want ErrUnknownSound", err)
	}
}

func TestDisabledBankIsSilent(t *testing.T) {
	b := NewBank(false)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for name := range DefaultTones {
		if err := b.Play(name); err != nil {
			t.Errorf("Play(%s) = %v", name, err)
		}
	}
	if b.Plays() != 0 || b.Enabled() {
		t.Errorf("Plays() = %d, Enabled() = %v", b.Plays(), b.Enabled())
	}
	b.Close()
}
