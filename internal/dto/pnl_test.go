package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Pair
		wantError bool
	}{
		{
			name:  "valid pair",
			input: "BTC-USDT",
			want:  Pair{Base: "BTC", Quote: "USDT"},
		},
		{
			name:      "missing separator",
			input:     "BTCUSDT",
			wantError: true,
		},
		{
			name:      "empty quote",
			input:     "BTC-",
			wantError: true,
		},
		{
			name:      "empty base",
			input:     "-USDT",
			wantError: true,
		},
		{
			name:      "too many components",
			input:     "BTC-USDT-ETH",
			wantError: true,
		},
		{
			name:      "empty string",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePair(tt.input)
			if tt.wantError {
				assert.ErrorIs(t, err, ErrMalformedPair)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPairSymbol(t *testing.T) {
	pair := Pair{Base: "BTC", Quote: "USDT"}
	assert.Equal(t, "BTCUSDT", pair.Symbol())
	assert.Equal(t, "BTC-USDT", pair.String())
}

func TestTradeSignedSide(t *testing.T) {
	assert.Equal(t, 1.0, Trade{Side: SideBuy}.SignedSide())
	assert.Equal(t, -1.0, Trade{Side: SideSell}.SignedSide())
}
