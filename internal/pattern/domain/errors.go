package domain

import (
	"errors"
	"fmt"
)

// Domain errors for pattern resolution.
var (
	ErrCollaboratorUnavailable = errors.New("AI collaborator not available")
	ErrEmptyInput              = errors.New("provide either an English description or sample text")
	ErrEmptyPattern            = errors.New("no pattern in collaborator response")
)

// InvalidPatternError reports a pattern that failed to compile.
// Reason is the engine's diagnostic, unmodified.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regex %q: %s", e.Pattern, e.Reason)
}
