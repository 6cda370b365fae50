package save

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected error")
	}
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t, MemoryPath)
	ctx := context.Background()

	type progress struct {
		Level int      `json:"level"`
		Seen  []string `json:"seen"`
	}
	if err := s.Put(ctx, "progress", progress{Level: 3, Seen: []string{"a"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "progress", progress{Level: 4, Seen: []string{"a", "b"}}); err != nil {
		t.Fatalf("put again: %v", err)
	}
	var got progress
	if err := s.Get(ctx, "progress", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Level != 4 || len(got.Seen) != 2 {
		t.Errorf("got = %+v, want level 4 with 2 seen", got)
	}

	if err := s.Delete(ctx, "progress"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Get(ctx, "progress", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
}

func TestScoresPersistAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcade.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, sc := range []struct {
		player string
		score  int
	}{{"ann", 10}, {"bob", 30}, {"cat", 20}, {"dan", 30}} {
		if err := s.RecordScore(ctx, "waves", sc.player, sc.score); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := s.RecordScore(ctx, "maze", "eve", 99); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s = openTestStore(t, path)
	top, err := s.TopScores(ctx, "waves", 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []string{"bob", "dan", "cat"}
	if len(top) != len(want) {
		t.Fatalf("len(top) = %d, want %d", len(top), len(want))
	}
	for i, w := range want {
		if top[i].Player != w {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Player, w)
		}
	}
	if none, _ := s.TopScores(ctx, "waves", 0); none != nil {
		t.Errorf("TopScores(0) = %v, want nil", none)
	}
}
