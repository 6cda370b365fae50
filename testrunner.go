package arcade

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	// expect steps
	Signal  string   `json:"signal,omitempty"`
	Equals  any      `json:"equals,omitempty"`
	AtLeast *float64 `json:"atLeast,omitempty"`

	key ebiten.Key
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// Failure is one unmet expectation from a test script.
type Failure struct {
	Step   int
	Signal string
	Want   string
	Got    string
}

func (f Failure) Error() string {
	return fmt.Sprintf("step %d: signal %q = %s, want %s", f.Step, f.Signal, f.Got, f.Want)
}

// TestRunner sequences injected input, waits, screenshots, and signal
// expectations across frames for automated verification.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []Failure
}

// LoadTestScript parses a JSON test script.
//
//	{"steps": [
//	  {"action": "click", "x": 100, "y": 80},
//	  {"action": "wait", "frames": 30},
//	  {"action": "key", "key": "Space", "frames": 2},
//	  {"action": "expect", "signal": "clicks", "equals": 1},
//	  {"action": "screenshot", "label": "after"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "click", "drag", "wait", "screenshot":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		case "expect":
			if st.Signal == "" {
				return nil, fmt.Errorf("parse test script: step %d: expect without signal", i)
			}
			if st.Equals == nil && st.AtLeast == nil {
				return nil, fmt.Errorf("parse test script: step %d: expect needs equals or atLeast", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner advances one
// step per frame before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns every unmet expectation so far.
func (r *TestRunner) Failures() []Failure {
	return r.failures
}

// Err joins all failures into one error, or returns nil.
func (r *TestRunner) Err() error {
	errs := make([]error, len(r.failures))
	for i, f := range r.failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Pending injections drain before the script advances.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	idx := r.cursor
	st := r.steps[idx]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		frames := max(st.Frames, 1)
		s.InjectKey(st.key, frames)
		r.waitCount = frames
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		r.check(s, idx, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) check(s *Scene, idx int, st testStep) {
	got := s.Signals.String(st.Signal)
	if _, ok := s.Signals.Get(st.Signal); !ok {
		got = "<unset>"
	}
	if st.Equals != nil && !s.Signals.Matches(st.Signal, st.Equals) {
		r.failures = append(r.failures, Failure{Step: idx, Signal: st.Signal, Want: fmt.Sprint(st.Equals), Got: got})
		s.debugf("expect failed: %s = %s, want %v", st.Signal, got, st.Equals)
	}
	if st.AtLeast != nil && s.Signals.Float(st.Signal) < *st.AtLeast {
		r.failures = append(r.failures, Failure{Step: idx, Signal: st.Signal, Want: fmt.Sprintf(">= %v", *st.AtLeast), Got: got})
		s.debugf("expect failed: %s = %s, want >= %v", st.Signal, got, *st.AtLeast)
	}
}
