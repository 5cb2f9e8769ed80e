package glob

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern is wrapped by every PatternError
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a glob that could not be compiled
type PatternError struct {
	Pattern string // The offending pattern as supplied
	Reason  string // Human-readable cause
}

// Error implements the error interface
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidPattern)
func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}
