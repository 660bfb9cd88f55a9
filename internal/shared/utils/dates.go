package utils

import (
	"fmt"
	"time"
)

const DateOnly = "2006-01-02"

// IsDateString is an ozzo validation.By rule accepting YYYY-MM-DD or
// RFC3339 strings. Empty values pass; Required handles presence.
func IsDateString(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateOnly, s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return fmt.Errorf("must be YYYY-MM-DD or RFC3339")
}

// ParseDateBound parses a validated date string. A date-only upper bound is
// widened to the end of that day so range filters stay inclusive.
func ParseDateBound(s string, upperBound bool) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(DateOnly, s); err == nil {
		if upperBound {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
