package utils

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL-safe slug from a display name. The function is
// deterministic and idempotent: lowercase, runs of non-alphanumeric
// characters collapse to a single hyphen, leading/trailing hyphens trimmed.
//
// "2B N1 A - 29 Shoreditch Heights" -> "2b-n1-a-29-shoreditch-heights"
func GenerateSlug(input string) string {
	lower := strings.ToLower(input)
	hyphenated := nonAlphanumeric.ReplaceAllString(lower, "-")
	return strings.Trim(hyphenated, "-")
}
