package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidInput, "invalid_input"},
		{fmt.Errorf("%w: empty question", ErrInvalidInput), "invalid_input"},
		{fmt.Errorf("%w: no text", ErrDocumentUnreadable), "document_unreadable"},
		{ErrUpstreamFailure, "upstream_failure"},
		{ErrCaseNotFound, "case_not_found"},
		{ErrNotReady, "not_ready"},
		{errors.New("anything else"), "internal"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
