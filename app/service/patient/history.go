package patient

const (
	// maxTurns bounds the retained conversation; oldest turns are evicted
	// first. Kept slightly larger than the grounding window so clamping
	// never discards a turn that is still being previewed.
	maxTurns = 8

	// recentWindow is how many retained turns ground each new answer.
	recentWindow = 6
)

// Session is the bounded turn log plus the running summary for the active
// case. Callers synchronize through State.mu.
type Session struct {
	turns          []Turn
	runningSummary string
}

func (s *Session) append(turn Turn) {
	s.turns = append(s.turns, turn)

	if len(s.turns) > maxTurns {
		s.turns = s.turns[len(s.turns)-maxTurns:]
	}
}

// seed replaces the whole log with a single opening turn.
func (s *Session) seed(turn Turn) {
	s.turns = []Turn{turn}
}

func (s *Session) reset() {
	s.turns = nil
	s.runningSummary = ""
}

// recent returns a copy of the last n turns in chronological order.
func (s *Session) recent(n int) []Turn {
	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}

	result := make([]Turn, len(s.turns)-start)
	copy(result, s.turns[start:])

	return result
}
