package arcade

import (
	"encoding/json"
	"testing"
)

func TestSignalsOrderAndCounters(t *testing.T) {
	s := NewSignals(nil)
	s.Set("title", "stars")
	if got := s.Inc("collected"); got != 1 {
		t.Errorf("Inc = %d, want 1", got)
	}
	s.Add("collected", 4)
	s.Set("ratio", 0.5)

	if got := s.Int("collected"); got != 5 {
		t.Errorf("Int(collected) = %d, want 5", got)
	}
	if got := s.Float("ratio"); got != 0.5 {
		t.Errorf("Float(ratio) = %v, want 0.5", got)
	}
	names := s.Names()
	if len(names) != 3 || names[0] != "title" || names[1] != "collected" {
		t.Errorf("Names = %v", names)
	}
}

func TestSignalsMatchesNumeric(t *testing.T) {
	s := NewSignals(nil)
	s.Set("count", 3)

	var decoded any
	if err := json.Unmarshal([]byte("3"), &decoded); err != nil {
		t.Fatal(err)
	}
	if !s.Matches("count", decoded) {
		t.Error("int 3 should match JSON 3")
	}
	if s.Matches("count", 4) {
		t.Error("3 should not match 4")
	}
	if s.Matches("missing", 0) {
		t.Error("unset signal should not match")
	}
}

func TestSignalsLogUsesClock(t *testing.T) {
	now := 1.5
	s := NewSignals(func() float64 { return now })
	s.Log("hit %d", 2)
	logs := s.Logs()
	if len(logs) != 1 || logs[0].At != 1.5 || logs[0].Message != "hit 2" {
		t.Errorf("Logs = %+v", logs)
	}
}

func TestSignalsJSONKeepsOrder(t *testing.T) {
	s := NewSignals(nil)
	s.Set("b", 1)
	s.Set("a", true)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"b":1,"a":true}` {
		t.Errorf("JSON = %s", got)
	}

	s.Reset()
	if len(s.Names()) != 0 {
		t.Errorf("Names after Reset = %v", s.Names())
	}
}
