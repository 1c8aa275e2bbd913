package apperr

import "errors"

// Stable error kinds surfaced by boundary operations.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrUpstreamFailure    = errors.New("upstream failure")
	ErrCaseNotFound       = errors.New("case not found")
	ErrNotReady           = errors.New("no case loaded")
)

// Kind returns the wire identifier for err, or "internal" for anything
// outside the known set.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDocumentUnreadable):
		return "document_unreadable"
	case errors.Is(err, ErrUpstreamFailure):
		return "upstream_failure"
	case errors.Is(err, ErrCaseNotFound):
		return "case_not_found"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	default:
		return "internal"
	}
}
