package patient

import (
	"sync"

	"oscesim/app/service/caseinfo"
)

// Turn roles follow the chat-completion convention: the trainee asks as
// "user", the simulated patient answers as "assistant".
const (
	RoleTrainee = "user"
	RolePatient = "assistant"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CaseContext is the single active case. It is replaced wholesale on every
// successful load and zeroed on reset, never merged.
type CaseContext struct {
	Raw     string
	Facts   caseinfo.Facts
	Summary string
	Persona string
	Gender  string
}

func (c CaseContext) loaded() bool {
	return c.Raw != ""
}

// CaseSummaryView is returned to the caller after a successful load.
type CaseSummaryView struct {
	CaseSummary string         `json:"case_summary"`
	Summary     string         `json:"summary"`
	Persona     string         `json:"persona"`
	Facts       caseinfo.Facts `json:"extracted"`
	References  string         `json:"references"`
}

// State is the process-wide (case, session) slot. caseSeq increments on
// every replacement or reset so an in-flight ask can detect that its
// snapshot went stale and discard its commit.
type State struct {
	mu      sync.Mutex
	caseSeq uint64
	caseCtx CaseContext
	session Session
}
