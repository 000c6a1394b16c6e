package storage

import (
	"os"
	"testing"

	"github.com/vlolteanu/netwalker/puzzle"
)

/*

These tests exercise the real cache and database, so they only
run when the backing services are configured.

*/

func connectOrSkip(t *testing.T) {
	t.Helper()
	if os.Getenv("NETWALKER_STORAGE_TEST") == "" {
		t.Skip("set NETWALKER_STORAGE_TEST to run against live services")
	}
	if _, _, err := Connect(); err != nil {
		t.Fatalf("Failed to connect storage: %v", err)
	}
	t.Cleanup(Close)
}

func TestPuzzleEntryLoading(t *testing.T) {
	connectOrSkip(t)
	pe := LoadPuzzleEntry(DefaultPuzzleId)
	if pe.Pipes == "" || pe.Width < 1 || pe.Height < 1 {
		t.Fatalf("default entry is malformed: %+v", pe)
	}
	// the entry is now cached; a reload must agree
	again := LoadPuzzleEntry(DefaultPuzzleId)
	if *again != *pe {
		t.Errorf("cached entry %+v differs from %+v", again, pe)
	}
	if _, err := puzzle.New(pe.Summary()); err != nil {
		t.Errorf("default entry won't build: %v", err)
	}
}

func TestListPuzzles(t *testing.T) {
	connectOrSkip(t)
	entries := ListPuzzles()
	if len(entries) == 0 {
		t.Fatalf("catalog is empty")
	}
	found := false
	for _, pe := range entries {
		if pe.PuzzleId == DefaultPuzzleId {
			found = true
		}
	}
	if !found {
		t.Errorf("catalog lacks the default puzzle %q", DefaultPuzzleId)
	}
}

func TestSolutionMemoization(t *testing.T) {
	connectOrSkip(t)
	first := SolutionFor(DefaultPuzzleId, puzzle.DefaultMaxDepth)
	if first.Outcome != OutcomeSolved {
		t.Fatalf("default puzzle outcome is %q", first.Outcome)
	}
	if first.Diagram == "" {
		t.Fatalf("solved outcome has no diagram")
	}
	second := SolutionFor(DefaultPuzzleId, puzzle.DefaultMaxDepth)
	if *second != *first {
		t.Errorf("memoized solution %+v differs from %+v", second, first)
	}
}

func TestSessionLifecycle(t *testing.T) {
	connectOrSkip(t)
	s := LoadSession("test-session")
	if s.PID != DefaultPuzzleId {
		t.Errorf("new session starts on %q", s.PID)
	}
	s.Select("elbow-loop")
	back := LoadSession("test-session")
	if back.PID != "elbow-loop" {
		t.Errorf("reloaded session is on %q", back.PID)
	}
	if back.Board().Solved() {
		// the elbow loop starts fully undecided
		t.Errorf("fresh session board is already solved")
	}
	back.Select("no-such-puzzle")
	if back.PID != DefaultPuzzleId {
		t.Errorf("unknown puzzle selected %q", back.PID)
	}
}
