package service

import (
	"crypto-pnl/internal/dto"
	"crypto-pnl/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPair = dto.Pair{Base: "BTC", Quote: "USDT"}

func utcDate(s string) time.Time {
	t, err := utils.ParseUTCDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFilterLedgerBoundaries(t *testing.T) {
	start := utcDate("2024-01-01")
	endExclusive := utcDate("2024-01-31").Add(24 * time.Hour)

	trades := []dto.Trade{
		{Time: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), Side: dto.SideBuy},
		{Time: start, Side: dto.SideBuy},
		{Time: time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), Side: dto.SideSell},
		{Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Side: dto.SideSell},
	}

	filtered := filterLedger(trades, start, endExclusive)

	require.Len(t, filtered, 2)
	assert.Equal(t, start, filtered[0].Time)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), filtered[1].Time)
}

func TestComputeSummaryDeltaSigns(t *testing.T) {
	// BUY 1 BTC at 100, SELL 1 BTC at 110. The delta convention multiplies
	// by the negative of the signed side, so the buy contributes -1/-100
	// and the sell +1/+110.
	ledger := []dto.Trade{
		{Time: utcDate("2024-01-02"), Side: dto.SideBuy, Price: 100, QtyBase: 1, QtyQuote: 100},
		{Time: utcDate("2024-01-03"), Side: dto.SideSell, Price: 110, QtyBase: 1, QtyQuote: 110},
	}

	summary := computeSummary(testPair, ledger, referencePrices{}, utcDate("2024-01-01"), utcDate("2024-02-01"))

	assert.Equal(t, 0.0, summary.DeltaBase)
	assert.Equal(t, 10.0, summary.DeltaQuote)
	assert.Equal(t, 210.0, summary.TotalVolume)
	require.NotNil(t, summary.TotalPercent)
	assert.Equal(t, 10.0, *summary.TotalPercent)
	assert.Equal(t, 2, summary.TradesExecuted)
	// Zero base delta stays zero after the markup.
	assert.Equal(t, 0.0, summary.TotalBase)
}

func TestComputeSummaryAveragePrices(t *testing.T) {
	ledger := []dto.Trade{
		{Time: utcDate("2024-01-02"), Side: dto.SideBuy, Price: 100, QtyBase: 1, QtyQuote: 100},
		{Time: utcDate("2024-01-03"), Side: dto.SideBuy, Price: 200, QtyBase: 2, QtyQuote: 400},
	}

	summary := computeSummary(testPair, ledger, referencePrices{}, utcDate("2024-01-01"), utcDate("2024-02-01"))

	require.NotNil(t, summary.AverageBuyPrice)
	assert.Equal(t, 166.66666667, *summary.AverageBuyPrice)
	assert.Nil(t, summary.AverageSellPrice)
}

func TestComputeSummaryFees(t *testing.T) {
	ledger := []dto.Trade{
		{Time: utcDate("2024-01-02"), Side: dto.SideBuy, Price: 100, QtyBase: 1, QtyQuote: 100, Fee: 0.1, FeeCurrency: "USDT"},
		{Time: utcDate("2024-01-03"), Side: dto.SideSell, Price: 200, QtyBase: 1, QtyQuote: 200, Fee: 0.5, FeeCurrency: "BNB"},
	}

	summary := computeSummary(testPair, ledger, referencePrices{}, utcDate("2024-01-01"), utcDate("2024-02-01"))

	// Fees are presented as signed deductions.
	assert.Equal(t, -0.6, summary.FeeQuote)
	// 0.1/100 + 0.5/200 = 0.0035
	assert.Equal(t, -0.0035, summary.FeeBase)
	// Only the rebate-denominated fee counts toward fee_bnb.
	assert.Equal(t, 0.5, summary.FeeBNB)
}

func TestComputeSummaryMarkupAndTotalQuote(t *testing.T) {
	ledger := []dto.Trade{
		{Time: utcDate("2024-01-02"), Side: dto.SideSell, Price: 100, QtyBase: 2, QtyQuote: 200},
	}
	symbolPrice := 50.0

	summary := computeSummary(testPair, ledger, referencePrices{Symbol: &symbolPrice}, utcDate("2024-01-01"), utcDate("2024-02-01"))

	// delta_base = +2 (sell), total_base = 2 * 1.002.
	assert.Equal(t, 2.004, summary.TotalBase)
	require.NotNil(t, summary.TotalQuote)
	assert.Equal(t, 100.2, *summary.TotalQuote)
}

func TestComputeSummaryMissingSymbolPrice(t *testing.T) {
	ledger := []dto.Trade{
		{Time: utcDate("2024-01-02"), Side: dto.SideSell, Price: 100, QtyBase: 2, QtyQuote: 200},
	}

	summary := computeSummary(testPair, ledger, referencePrices{}, utcDate("2024-01-01"), utcDate("2024-02-01"))

	assert.Nil(t, summary.SymbolPrice)
	assert.Nil(t, summary.TotalQuote)
	assert.Equal(t, 2.004, summary.TotalBase)
}

func TestComputeSummaryEmptyLedger(t *testing.T) {
	summary := computeSummary(testPair, nil, referencePrices{}, utcDate("2024-01-01"), utcDate("2024-02-01"))

	assert.Equal(t, 0, summary.TradesExecuted)
	assert.Nil(t, summary.AverageBuyPrice)
	assert.Nil(t, summary.AverageSellPrice)
	assert.Nil(t, summary.TotalPercent)
	assert.Equal(t, 0.0, summary.DeltaBase)
	assert.Equal(t, 0.0, summary.TotalVolume)

	assert.ErrorIs(t, EnsureSufficient(summary), ErrInsufficientData)
}

func TestComputeSummaryDays(t *testing.T) {
	summary := computeSummary(testPair, nil, referencePrices{}, utcDate("2024-01-01"), utcDate("2024-02-01"))
	assert.Equal(t, 31, summary.Days)
}

func TestRoundingIdempotence(t *testing.T) {
	values := []float64{166.66666666666666, -0.00350001, 10.0, 0.123456785}
	for _, v := range values {
		once := utils.RoundTo(v, pnlRoundDecimals)
		assert.Equal(t, once, utils.RoundTo(once, pnlRoundDecimals))
	}
}
