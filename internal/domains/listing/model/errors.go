package model

import "errors"

// Error codes
const (
	ErrCodeListingNotFound = "LST001"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)
