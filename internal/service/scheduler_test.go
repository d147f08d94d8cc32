package service

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	digests [][]*dto.PnLSummary
}

func (f *fakeNotifier) SendDailyDigest(ctx context.Context, summaries []*dto.PnLSummary) error {
	f.digests = append(f.digests, summaries)
	return nil
}

func schedulerConfig(pairs ...string) *config.Config {
	cfg := testConfig()
	cfg.PnL.Pairs = pairs
	cfg.PnL.PeriodStartDate = "2024-01-01"
	cfg.Scheduler = config.Scheduler{
		DailyReportSpec: "0 1 * * *",
		MaxConcurrency:  1,
		TimeoutDuration: time.Minute,
	}
	return cfg
}

func TestRunDailyReport(t *testing.T) {
	exchange := newFakeExchangeRepo()
	exchange.prices["BTCUSDT"] = 40000
	exchange.prices["ETHUSDT"] = 2500
	exchange.prices["BNBUSDT"] = 300
	reportRepo := &fakeReportRepo{}
	notifier := &fakeNotifier{}

	cfg := schedulerConfig("BTC-USDT", "ETH-USDT")
	pnlService := NewPnLService(cfg, testLogger(t), exchange, reportRepo)
	scheduler := NewSchedulerService(cfg, testLogger(t), pnlService, notifier)

	err := scheduler.RunDailyReport(context.Background())
	require.NoError(t, err)

	assert.Len(t, reportRepo.savedReports, 2)
	require.Len(t, notifier.digests, 1)
	assert.Len(t, notifier.digests[0], 2)
}

func TestRunDailyReportSkipsFailingPair(t *testing.T) {
	exchange := newFakeExchangeRepo()
	exchange.prices["BTCUSDT"] = 40000
	exchange.prices["BNBUSDT"] = 300
	reportRepo := &fakeReportRepo{}
	notifier := &fakeNotifier{}

	// The malformed pair fails to compute and must not block the others.
	cfg := schedulerConfig("BADPAIR", "BTC-USDT")
	pnlService := NewPnLService(cfg, testLogger(t), exchange, reportRepo)
	scheduler := NewSchedulerService(cfg, testLogger(t), pnlService, notifier)

	err := scheduler.RunDailyReport(context.Background())
	require.NoError(t, err)

	assert.Len(t, reportRepo.savedReports, 1)
	require.Len(t, notifier.digests, 1)
	assert.Len(t, notifier.digests[0], 1)
}
