package domain

import (
	"errors"
	"fmt"
)

// ErrQueueEmpty is returned when popping an empty dialogue queue. The runner
// checks emptiness before popping, so seeing this error indicates a bug in
// the caller, not a recoverable condition.
var ErrQueueEmpty = errors.New("dialogue queue is empty")

// ErrNoSession is returned by operations that require a bound session
// (e.g. selecting a choice) while the runner is idle.
var ErrNoSession = errors.New("no dialogue session is active")

// ErrNoChoices is returned when a choice is selected but no choice list is
// currently presented.
var ErrNoChoices = errors.New("no choices are pending")

// ContentKind classifies content-integrity faults.
type ContentKind string

const (
	// ContentMissingLine means the interpreter referenced a line id absent
	// from the bound string table.
	ContentMissingLine ContentKind = "missing_line"

	// ContentSubstitution means a template contained more placeholder
	// markers than substitution values were supplied.
	ContentSubstitution ContentKind = "substitution_arity"

	// ContentMalformed means a template contained an unterminated marker.
	ContentMalformed ContentKind = "malformed_template"
)

// ContentError reports a content-integrity violation: a contract broken by
// the script author or build pipeline. It is fatal to the affected session.
type ContentError struct {
	Kind   ContentKind
	LineID string
	Detail string
}

func (e *ContentError) Error() string {
	if e.LineID != "" {
		return fmt.Sprintf("content error (%s) for line %q: %s", e.Kind, e.LineID, e.Detail)
	}
	return fmt.Sprintf("content error (%s): %s", e.Kind, e.Detail)
}

// IsContentError reports whether err wraps a ContentError, returning it.
func IsContentError(err error) (*ContentError, bool) {
	var ce *ContentError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
