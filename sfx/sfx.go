// Package sfx plays short generated tones through the system speaker.
package sfx

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate every tone is generated at.
const SampleRate = beep.SampleRate(44100)

// ErrUnknownSound is returned for a name the bank does not hold.
var ErrUnknownSound = errors.New("sfx: unknown sound")

// Tone is a sine blip that fades out over its duration. Volume is in beep's
// exponential units; 0 is unchanged and negative values are quieter.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64
}

// DefaultTones are the blips the demos use.
var DefaultTones = map[string]Tone{
	"collect": {Freq: 880, Duration: 90 * time.Millisecond, Volume: -1},
	"hit":     {Freq: 220, Duration: 120 * time.Millisecond, Volume: -0.5},
	"shoot":   {Freq: 660, Duration: 60 * time.Millisecond, Volume: -1.5},
	"unlock":  {Freq: 1320, Duration: 200 * time.Millisecond, Volume: -1},
	"error":   {Freq: 140, Duration: 150 * time.Millisecond, Volume: -1},
}

// Bank owns named tones and the speaker mixer. A disabled bank accepts every
// call and makes no sound.
type Bank struct {
	mu          sync.Mutex
	tones       map[string]Tone
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
	plays       int
}

// NewBank returns a bank holding DefaultTones.
func NewBank(enabled bool) *Bank {
	b := &Bank{
		tones:   make(map[string]Tone, len(DefaultTones)),
		enabled: enabled,
		mixer:   &beep.Mixer{},
	}
	for name, t := range DefaultTones {
		b.tones[name] = t
	}
	return b
}

// Define adds or replaces a tone.
func (b *Bank) Define(name string, t Tone) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tones[name] = t
}

// Enabled reports whether Play produces sound.
func (b *Bank) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Init opens the speaker once. It is a no-op for a disabled bank.
func (b *Bank) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || b.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("sfx: init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close silences everything queued on the mixer.
func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Stream builds a fresh streamer for name.
func (b *Bank) Stream(name string) (beep.Streamer, error) {
	b.mu.Lock()
	t, ok := b.tones[name]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	return toneStreamer(t)
}

// Play queues name on the speaker. It does nothing when the bank is disabled
// or Init has not run.
func (b *Bank) Play(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.tones[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	if !b.enabled || !b.initialized {
		return nil
	}
	s, err := toneStreamer(t)
	if err != nil {
		return err
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
	b.plays++
	return nil
}

// Plays returns how many tones reached the mixer.
func (b *Bank) Plays() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.plays
}

func toneStreamer(t Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("sfx: tone %.0fHz: %w", t.Freq, err)
	}
	n := SampleRate.N(t.Duration)
	return &effects.Volume{
		Streamer: effects.Transition(beep.Take(n, sine), n, 1, 0, effects.TransitionLinear),
		Base:     2,
		Volume:   t.Volume,
	}, nil
}
