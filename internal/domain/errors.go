package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrSessionNotFound = errors.New("voting session not found")
	ErrSessionInactive = errors.New("voting session is not active")
)

// ValidationError rejects a submission or a session definition with a
// human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError formats a validation failure.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ThrottledError rejects a vote inside the cooling-off window.
type ThrottledError struct {
	TimeLeftMinutes int
	CanVoteAgainAt  time.Time
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("device may vote again in %d minutes", e.TimeLeftMinutes)
}
