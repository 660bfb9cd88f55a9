package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound1(t *testing.T) {
	assert.Equal(t, 9.5, Round1(9.45))
	assert.Equal(t, 9.4, Round1(9.44))
	assert.Equal(t, 8.0, Round1(8.0))
	assert.Equal(t, 7.3, Round1(22.0/3.0))
}

func TestMean(t *testing.T) {
	mean, ok := Mean([]float64{10, 9, 8})
	require.True(t, ok)
	assert.InDelta(t, 9.0, mean, 1e-9)

	_, ok = Mean(nil)
	assert.False(t, ok)
}

func TestIsDateString(t *testing.T) {
	assert.NoError(t, IsDateString(""))
	assert.NoError(t, IsDateString("2024-06-01"))
	assert.NoError(t, IsDateString("2024-06-01T12:30:00Z"))
	assert.Error(t, IsDateString("01/06/2024"))
	assert.Error(t, IsDateString("not-a-date"))
}

func TestParseDateBound(t *testing.T) {
	assert.Nil(t, ParseDateBound("", false))

	lower := ParseDateBound("2024-06-01", false)
	require.NotNil(t, lower)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), lower.UTC())

	// A date-only upper bound covers the whole day.
	upper := ParseDateBound("2024-06-01", true)
	require.NotNil(t, upper)
	assert.True(t, upper.After(time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)))
	assert.True(t, upper.Before(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)))

	// RFC3339 bounds are taken verbatim, no widening.
	exact := ParseDateBound("2024-06-01T10:00:00Z", true)
	require.NotNil(t, exact)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), exact.UTC())
}
