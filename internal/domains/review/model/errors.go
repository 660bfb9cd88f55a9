package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidFilter = "REV001"
	ErrCodeSyncFailed    = "REV002"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

// ValidationError marks a request or filter that failed schema checks, so
// handlers can map it to a 400 instead of a generic 500.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(code, message string, err error) *ValidationError {
	return &ValidationError{Code: code, Message: message, Err: err}
}

// IsValidationError reports whether err is a ValidationError anywhere in
// its chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
