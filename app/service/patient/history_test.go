package patient

import (
	"fmt"
	"reflect"
	"testing"
)

func TestSessionAppendClampsOldestFirst(t *testing.T) {
	var s Session

	for i := 1; i <= 11; i++ {
		s.append(Turn{Role: RoleTrainee, Content: fmt.Sprintf("turn-%d", i)})
	}

	if len(s.turns) != maxTurns {
		t.Fatalf("expected %d turns, got %d", maxTurns, len(s.turns))
	}

	if s.turns[0].Content != "turn-4" {
		t.Errorf("expected oldest retained turn to be turn-4, got %q", s.turns[0].Content)
	}
	if s.turns[len(s.turns)-1].Content != "turn-11" {
		t.Errorf("expected newest turn to be turn-11, got %q", s.turns[len(s.turns)-1].Content)
	}
}

func TestSessionRecentReturnsCopyInOrder(t *testing.T) {
	var s Session

	for i := 1; i <= 4; i++ {
		s.append(Turn{Role: RolePatient, Content: fmt.Sprintf("turn-%d", i)})
	}

	recent := s.recent(2)

	want := []Turn{
		{Role: RolePatient, Content: "turn-3"},
		{Role: RolePatient, Content: "turn-4"},
	}
	if !reflect.DeepEqual(recent, want) {
		t.Errorf("expected %v, got %v", want, recent)
	}

	recent[0].Content = "mutated"
	if s.turns[2].Content != "turn-3" {
		t.Error("recent must not alias the session's backing slice")
	}
}

func TestSessionRecentShorterThanWindow(t *testing.T) {
	var s Session
	s.append(Turn{Role: RolePatient, Content: "only"})

	if got := s.recent(recentWindow); len(got) != 1 {
		t.Errorf("expected 1 turn, got %d", len(got))
	}
}

func TestSessionSeedReplacesLog(t *testing.T) {
	var s Session
	s.append(Turn{Role: RoleTrainee, Content: "old"})
	s.append(Turn{Role: RolePatient, Content: "older"})

	s.seed(Turn{Role: RolePatient, Content: "hello"})

	if len(s.turns) != 1 || s.turns[0].Content != "hello" {
		t.Errorf("expected seeded single turn, got %v", s.turns)
	}
}

func TestSessionResetClearsSummary(t *testing.T) {
	var s Session
	s.append(Turn{Role: RoleTrainee, Content: "q"})
	s.runningSummary = "something"

	s.reset()

	if len(s.turns) != 0 || s.runningSummary != "" {
		t.Errorf("expected empty session, got %v / %q", s.turns, s.runningSummary)
	}
}
