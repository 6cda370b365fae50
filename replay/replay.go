// Package replay records timestamped input actions and plays them back at a
// selectable speed. Recorder and Player both satisfy arcade.System so a scene
// drives them with its own delta time.
package replay

import "errors"

// ErrEmpty is returned when a player is built from a recording with no
// actions.
var ErrEmpty = errors.New("replay: empty recording")

// Action is one recorded input. T is seconds since recording started.
type Action struct {
	T    float64 `json:"t"`
	Kind string  `json:"kind"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// Recorder collects actions for a fixed window of time.
type Recorder struct {
	Window float64

	elapsed   float64
	recording bool
	actions   []Action
	onDone    func([]Action)
}

// NewRecorder returns an idle recorder with the given window in seconds.
// onDone, when non-nil, receives the actions once the window closes.
func NewRecorder(window float64, onDone func([]Action)) *Recorder {
	return &Recorder{Window: window, onDone: onDone}
}

// Start clears any previous take and begins recording.
func (r *Recorder) Start() {
	r.actions = r.actions[:0]
	r.elapsed = 0
	r.recording = true
}

// Recording reports whether the window is open.
func (r *Recorder) Recording() bool { return r.recording }

// Record appends an action stamped with the current window time. Ignored
// outside a recording.
func (r *Recorder) Record(kind string, x, y float64) {
	if !r.recording {
		return
	}
	r.actions = append(r.actions, Action{T: r.elapsed, Kind: kind, X: x, Y: y})
}

// Elapsed returns seconds recorded so far.
func (r *Recorder) Elapsed() float64 { return r.elapsed }

// Remaining returns seconds left in the window.
func (r *Recorder) Remaining() float64 {
	if !r.recording {
		return 0
	}
	return max(r.Window-r.elapsed, 0)
}

// Actions returns a copy of the recorded actions.
func (r *Recorder) Actions() []Action {
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Stop closes the window early and reports the take.
func (r *Recorder) Stop() {
	if !r.recording {
		return
	}
	r.recording = false
	if r.onDone != nil {
		r.onDone(r.Actions())
	}
}

// Update advances the window clock and closes it when Window is reached.
func (r *Recorder) Update(dt float64) {
	if !r.recording {
		return
	}
	r.elapsed += dt
	if r.elapsed >= r.Window {
		r.elapsed = r.Window
		r.Stop()
	}
}
