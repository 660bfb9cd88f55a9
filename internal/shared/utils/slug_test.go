package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "listing name with unit prefix",
			input:    "2B N1 A - 29 Shoreditch Heights",
			expected: "2b-n1-a-29-shoreditch-heights",
		},
		{
			name:     "simple name",
			input:    "Camden Lock Studio",
			expected: "camden-lock-studio",
		},
		{
			name:     "punctuation collapses to single hyphen",
			input:    "Flat #3 -- King's Cross!",
			expected: "flat-3-king-s-cross",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    " - The Shard View - ",
			expected: "the-shard-view",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlug(tt.input))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	slug := GenerateSlug("2B N1 A - 29 Shoreditch Heights")
	assert.Equal(t, slug, GenerateSlug(slug))
}
