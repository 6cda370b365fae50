package arcade

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keyboard tracks key state for one scene step. Real keys are polled from
// Ebitengine; injected keys are merged in for scripted runs.
type Keyboard struct {
	down        map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
	injected    map[ebiten.Key]int // remaining frames a synthetic key stays down
	buf         []ebiten.Key
}

// NewKeyboard creates an empty keyboard state.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		down:        make(map[ebiten.Key]bool),
		justPressed: make(map[ebiten.Key]bool),
		injected:    make(map[ebiten.Key]int),
	}
}

// poll refreshes key state from the device and pending injections.
func (k *Keyboard) poll() {
	prev := k.down
	k.down = make(map[ebiten.Key]bool, len(prev))
	clear(k.justPressed)

	k.buf = inpututil.AppendPressedKeys(k.buf[:0])
	for _, key := range k.buf {
		k.down[key] = true
	}
	k.buf = inpututil.AppendJustPressedKeys(k.buf[:0])
	for _, key := range k.buf {
		k.justPressed[key] = true
	}
	k.applyInjected(prev)
}

// applyInjected merges synthetic keys. A key is just-pressed on the first
// frame it is held.
func (k *Keyboard) applyInjected(prev map[ebiten.Key]bool) {
	for key, frames := range k.injected {
		if frames <= 0 {
			delete(k.injected, key)
			continue
		}
		k.down[key] = true
		if !prev[key] {
			k.justPressed[key] = true
		}
		k.injected[key] = frames - 1
	}
}

// stepInjected advances injected keys only, for headless steps.
func (k *Keyboard) stepInjected() {
	prev := k.down
	k.down = make(map[ebiten.Key]bool, len(prev))
	clear(k.justPressed)
	k.applyInjected(prev)
}

// Inject holds key down for the given number of frames (minimum 1).
func (k *Keyboard) Inject(key ebiten.Key, frames int) {
	k.injected[key] = max(frames, 1)
}

// IsDown reports whether key is held this step.
func (k *Keyboard) IsDown(key ebiten.Key) bool {
	return k.down[key]
}

// JustPressed reports whether key went down this step.
func (k *Keyboard) JustPressed(key ebiten.Key) bool {
	return k.justPressed[key]
}

// AnyDown reports whether any of keys is held.
func (k *Keyboard) AnyDown(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if k.down[key] {
			return true
		}
	}
	return false
}

// Cursors returns a direction vector from the arrow keys and WASD, with
// each component in {-1, 0, 1}.
func (k *Keyboard) Cursors() Vec2 {
	var v Vec2
	if k.AnyDown(ebiten.KeyArrowLeft, ebiten.KeyA) {
		v.X--
	}
	if k.AnyDown(ebiten.KeyArrowRight, ebiten.KeyD) {
		v.X++
	}
	if k.AnyDown(ebiten.KeyArrowUp, ebiten.KeyW) {
		v.Y--
	}
	if k.AnyDown(ebiten.KeyArrowDown, ebiten.KeyS) {
		v.Y++
	}
	return v
}
