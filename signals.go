package arcade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// LogEntry is one timestamped line appended by Signals.Log.
type LogEntry struct {
	At      float64 `json:"at"`
	Message string  `json:"message"`
}

// Signals is an ordered set of named values that demos publish for display
// and scripted verification. Values are ints, floats, bools or strings.
type Signals struct {
	order  []string
	values map[string]any
	logs   []LogEntry
	clock  func() float64
}

// NewSignals creates an empty signal set. now supplies the timestamp for
// log entries and may be nil.
func NewSignals(now func() float64) *Signals {
	return &Signals{values: make(map[string]any), clock: now}
}

func (s *Signals) ensure(name string) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
}

// Set stores v under name, preserving first-insertion order.
func (s *Signals) Set(name string, v any) {
	s.ensure(name)
	s.values[name] = v
}

// Add increments an integer signal by delta and returns the new value.
// Missing signals start at zero.
func (s *Signals) Add(name string, delta int) int {
	v := s.Int(name) + delta
	s.Set(name, v)
	return v
}

// Inc increments an integer signal by one.
func (s *Signals) Inc(name string) int {
	return s.Add(name, 1)
}

// Get returns the raw value and whether it exists.
func (s *Signals) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Int returns name as an int; floats are truncated and other types read as 0.
func (s *Signals) Int(name string) int {
	switch v := s.values[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// Float returns name as a float64.
func (s *Signals) Float(name string) float64 {
	switch v := s.values[name].(type) {
	case int:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

// Bool returns name as a bool.
func (s *Signals) Bool(name string) bool {
	switch v := s.values[name].(type) {
	case bool:
		return v
	case int:
		return v != 0
	}
	return false
}

// String formats name's value for display.
func (s *Signals) String(name string) string {
	v, ok := s.values[name]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Names returns signal names in insertion order.
func (s *Signals) Names() []string {
	return append([]string(nil), s.order...)
}

// Snapshot copies the current values.
func (s *Signals) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Log appends a timestamped message.
func (s *Signals) Log(format string, args ...any) {
	var at float64
	if s.clock != nil {
		at = s.clock()
	}
	s.logs = append(s.logs, LogEntry{At: at, Message: fmt.Sprintf(format, args...)})
}

// Logs returns the log entries.
func (s *Signals) Logs() []LogEntry {
	return s.logs
}

// Reset removes every value and log entry.
func (s *Signals) Reset() {
	s.order = s.order[:0]
	clear(s.values)
	s.logs = s.logs[:0]
}

// Matches reports whether name holds a value equal to want. Numbers are
// compared numerically so JSON-decoded floats match int signals.
func (s *Signals) Matches(name string, want any) bool {
	got, ok := s.values[name]
	if !ok {
		return false
	}
	gf, gNum := toFloat(got)
	wf, wNum := toFloat(want)
	if gNum && wNum {
		return math.Abs(gf-wf) < 1e-9
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// MarshalJSON encodes the signals as an object in insertion order, with the
// log under "_log" when present.
func (s *Signals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.values[name])
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	if len(s.logs) > 0 {
		if len(s.order) > 0 {
			buf.WriteByte(',')
		}
		l, err := json.Marshal(s.logs)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`"_log":`)
		buf.Write(l)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
