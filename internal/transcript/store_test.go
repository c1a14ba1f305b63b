package transcript

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndTurns(t *testing.T) {
	s := openTestStore(t)

	if err := s.Record("sess-1", "user", "weather in Brussels"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record("sess-1", "bot", "location=Brussels"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	turns, err := s.Turns("sess-1")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != "user" || turns[0].Text != "weather in Brussels" {
		t.Errorf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != "bot" {
		t.Errorf("unexpected second turn: %+v", turns[1])
	}
}

func TestTurns_UnknownSession(t *testing.T) {
	s := openTestStore(t)

	turns, err := s.Turns("nope")
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("expected no turns, got %d", len(turns))
	}
}

func TestSessions(t *testing.T) {
	s := openTestStore(t)

	for _, sess := range []string{"a", "a", "b"} {
		if err := s.Record(sess, "user", "hi"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	counts := make(map[string]int)
	for _, sess := range sessions {
		counts[sess.ID] = sess.Turns
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Errorf("unexpected turn counts: %v", counts)
	}
}
