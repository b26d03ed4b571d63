package room

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes the API surface distinguishes.
var (
	ErrConflict  = errors.New("participant name already taken")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("requester is not the author")
	ErrStorage   = errors.New("storage failure")
)

// ValidationError reports a malformed, missing or disallowed field on an
// incoming record. The reason is for diagnostics only; callers answer with a
// single combined validation outcome.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// storage wraps a gateway failure so callers can match it with
// errors.Is(err, ErrStorage) while keeping the underlying detail in the
// message.
func storage(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
