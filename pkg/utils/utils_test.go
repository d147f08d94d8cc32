package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     float64
	}{
		{name: "repeating decimal to 8 places", value: 500.0 / 3.0, decimals: 8, want: 166.66666667},
		{name: "already rounded", value: 166.66666667, decimals: 8, want: 166.66666667},
		{name: "negative value", value: -0.123456789, decimals: 8, want: -0.12345679},
		{name: "zero", value: 0, decimals: 8, want: 0},
		{name: "two places", value: 10.0051, decimals: 2, want: 10.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundTo(tt.value, tt.decimals))
		})
	}
}

func TestRoundPtr(t *testing.T) {
	assert.Nil(t, RoundPtr(nil, 8))

	value := 500.0 / 3.0
	rounded := RoundPtr(&value, 8)
	require.NotNil(t, rounded)
	assert.Equal(t, 166.66666667, *rounded)
}

func TestParseUTCDate(t *testing.T) {
	parsed, err := ParseUTCDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseUTCDate("15/01/2024")
	assert.Error(t, err)
}

func TestStartOfUTCDay(t *testing.T) {
	instant := time.Date(2024, 1, 15, 17, 42, 9, 123, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), StartOfUTCDay(instant))
}

func TestWholeDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 31, WholeDaysBetween(start, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	// Partial days truncate toward zero.
	assert.Equal(t, 0, WholeDaysBetween(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, WholeDaysBetween(start, start.Add(25*time.Hour)))
}
