package quiz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrQuizLocked       = errors.New("quiz is no longer editable")
	ErrInvalidState     = errors.New("operation not allowed in current state")
	ErrQuizNotAvailable = errors.New("quiz is not available")
	ErrNotEnrolled      = errors.New("student is not enrolled in this offering")
	ErrAttemptExpired   = errors.New("attempt time limit has elapsed")
	ErrHasAttempts      = errors.New("quiz has existing attempts")
	ErrAIUnavailable    = errors.New("AI grading capability unavailable")
)

// ValidationError carries field-keyed messages for malformed input,
// caught before any mutation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is a field validation failure
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
