package service

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"crypto-pnl/pkg/logger"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExchangeRepo struct {
	trades    []dto.Trade
	tradesErr error

	prices       map[string]float64
	priceErrs    map[string]error
	failuresLeft map[string]int
	priceCalls   map[string]int
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{
		prices:       map[string]float64{},
		priceErrs:    map[string]error{},
		failuresLeft: map[string]int{},
		priceCalls:   map[string]int{},
	}
}

func (f *fakeExchangeRepo) GetMyTrades(ctx context.Context, symbol string) ([]dto.Trade, error) {
	if f.tradesErr != nil {
		return nil, f.tradesErr
	}
	return f.trades, nil
}

func (f *fakeExchangeRepo) GetRecentPrice(ctx context.Context, symbol string, at time.Time) (float64, error) {
	f.priceCalls[symbol]++
	if left := f.failuresLeft[symbol]; left > 0 {
		f.failuresLeft[symbol] = left - 1
		return 0, errors.New("transient exchange error")
	}
	if err := f.priceErrs[symbol]; err != nil {
		return 0, err
	}
	price, ok := f.prices[symbol]
	if !ok {
		return 0, errors.New("unknown symbol")
	}
	return price, nil
}

func testConfig() *config.Config {
	return &config.Config{
		PnL: config.PnL{
			PriceRetryAttempts: 3,
			PriceRetryBackoff:  time.Millisecond,
		},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestComputeMalformedPair(t *testing.T) {
	svc := NewPnLService(testConfig(), testLogger(t), newFakeExchangeRepo(), nil)

	_, err := svc.Compute(context.Background(), "BTCUSDT", "2024-01-01", "2024-01-31")

	assert.ErrorIs(t, err, dto.ErrMalformedPair)
}

func TestComputeTradeHistoryFailureIsFatal(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.tradesErr = errors.New("binance api returned status 418")
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	summary, err := svc.Compute(context.Background(), "BTC-USDT", "2024-01-01", "2024-01-31")

	assert.Nil(t, summary)
	assert.ErrorContains(t, err, "trade history unavailable for BTCUSDT")
}

func TestComputeStablecoinShortCircuit(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.prices["BTCUSDT"] = 40000
	repo.prices["BNBUSDT"] = 300
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	summary, err := svc.Compute(context.Background(), "BTC-USDT", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.NotNil(t, summary.QuoteUSDPrice)
	assert.Equal(t, 1.0, *summary.QuoteUSDPrice)
	// No lookup may happen for the stablecoin leg.
	assert.Zero(t, repo.priceCalls["USDTUSDT"])
	assert.Equal(t, 1, repo.priceCalls["BTCUSDT"])
	assert.Equal(t, 1, repo.priceCalls["BNBUSDT"])
}

func TestComputeRebateQuoteShortCircuit(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.prices["ETHBNB"] = 10
	repo.prices["BNBUSDT"] = 300
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	summary, err := svc.Compute(context.Background(), "ETH-BNB", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.NotNil(t, summary.BNBQuotePrice)
	assert.Equal(t, 1.0, *summary.BNBQuotePrice)
	assert.Zero(t, repo.priceCalls["BNBBNB"])
}

func TestComputePriceLookupFailureIsNotFatal(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.priceErrs["BTCUSDT"] = errors.New("rate limited")
	repo.prices["BNBUSDT"] = 300
	repo.trades = []dto.Trade{
		{Time: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), Symbol: "BTCUSDT", Side: dto.SideSell, Price: 100, QtyBase: 1, QtyQuote: 100},
	}
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	summary, err := svc.Compute(context.Background(), "BTC-USDT", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	assert.Nil(t, summary.SymbolPrice)
	assert.Nil(t, summary.TotalQuote)
	assert.Equal(t, 1, summary.TradesExecuted)
	// Bounded retry exhausted its attempts.
	assert.Equal(t, 3, repo.priceCalls["BTCUSDT"])
}

func TestComputePriceLookupRetriesThenSucceeds(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.prices["BTCUSDT"] = 40000
	repo.prices["BNBUSDT"] = 300
	repo.failuresLeft["BTCUSDT"] = 1
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	summary, err := svc.Compute(context.Background(), "BTC-USDT", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.NotNil(t, summary.SymbolPrice)
	assert.Equal(t, 40000.0, *summary.SymbolPrice)
	assert.Equal(t, 2, repo.priceCalls["BTCUSDT"])
}

func TestComputeFiltersAndRelabelsLedger(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.prices["BTCUSDT"] = 40000
	repo.prices["BNBUSDT"] = 300
	repo.trades = []dto.Trade{
		{Time: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), Symbol: "BTCUSDT", Side: dto.SideBuy, Price: 90, QtyBase: 1, QtyQuote: 90},
		{Time: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), Symbol: "BTCUSDT", Side: dto.SideBuy, Price: 100, QtyBase: 1, QtyQuote: 100},
		{Time: time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC), Symbol: "BTCUSDT", Side: dto.SideSell, Price: 110, QtyBase: 1, QtyQuote: 110},
	}
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	summary, err := svc.Compute(context.Background(), "BTC-USDT", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Len(t, summary.Trades, 2)
	assert.Equal(t, dto.SideBuy, summary.Trades[0].Side)
	assert.Equal(t, dto.SideSell, summary.Trades[1].Side)
	assert.Equal(t, 2, summary.TradesExecuted)
	assert.Equal(t, 0.0, summary.DeltaBase)
	assert.Equal(t, 10.0, summary.DeltaQuote)

	// End date is in the past, so the snapshot is pinned to the midnight
	// after it and days is the window length.
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), summary.SnapshotTime)
	assert.Equal(t, 31, summary.Days)
}

func TestComputeCancelledContext(t *testing.T) {
	repo := newFakeExchangeRepo()
	repo.prices["BTCUSDT"] = 40000
	repo.prices["BNBUSDT"] = 300
	svc := NewPnLService(testConfig(), testLogger(t), repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Compute(ctx, "BTC-USDT", "2024-01-01", "2024-01-31")
	assert.ErrorIs(t, err, context.Canceled)
}
