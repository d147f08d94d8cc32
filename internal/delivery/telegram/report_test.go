package telegram

import (
	"crypto-pnl/internal/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	avgBuy := 100.0
	totalQuote := 50.1
	summary := &dto.PnLSummary{
		Pair:            "BTC-USDT",
		Symbol:          "BTCUSDT",
		StartDate:       "2024-01-01",
		EndDate:         "2024-01-31",
		Days:            31,
		TradesExecuted:  2,
		AverageBuyPrice: &avgBuy,
		TotalQuote:      &totalQuote,
	}

	msg := FormatSummary(summary)

	assert.Contains(t, msg, "<b>BTC-USDT</b>")
	assert.Contains(t, msg, "Days: 31 | Trades: 2")
	assert.Contains(t, msg, "100.00000000")
	assert.Contains(t, msg, "50.10000000")
	// Missing averages and prices render as n/a, never as NaN.
	assert.Contains(t, msg, "n/a")
	assert.NotContains(t, msg, "NaN")
}
