package service

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"crypto-pnl/internal/model"
	"crypto-pnl/internal/repository"
	"crypto-pnl/pkg/logger"
	"crypto-pnl/pkg/utils"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientData reports a ledger with zero trades on one side, which
// leaves the corresponding volume-weighted average undefined. Compute never
// fails on it and returns the averages as explicit nulls, but callers that
// need both sides can fail fast via EnsureSufficient.
var ErrInsufficientData = errors.New("insufficient trade data: one side of the ledger is empty")

// PnLService computes realized profit/loss summaries for trading pairs.
type PnLService interface {
	Compute(ctx context.Context, pair, startDate, endDate string) (*dto.PnLSummary, error)
	ComputeAndStore(ctx context.Context, pair, startDate, endDate string) (*dto.PnLSummary, error)
	GetReports(ctx context.Context, symbol string, limit int) ([]model.PnLReport, error)
}

type pnlService struct {
	cfg          *config.Config
	log          *logger.Logger
	exchangeRepo repository.ExchangeRepository
	reportRepo   repository.PnLReportRepository
}

// NewPnLService builds a PnLService. reportRepo may be nil for one-shot
// usage without a database; ComputeAndStore then degrades to Compute.
func NewPnLService(
	cfg *config.Config,
	log *logger.Logger,
	exchangeRepo repository.ExchangeRepository,
	reportRepo repository.PnLReportRepository,
) PnLService {
	return &pnlService{
		cfg:          cfg,
		log:          log,
		exchangeRepo: exchangeRepo,
		reportRepo:   reportRepo,
	}
}

// Compute fetches the trade history of pair, filters it to the inclusive
// calendar window, and runs the aggregation. Trade-history failure is fatal;
// reference-price failures degrade the affected fields to null.
func (s *pnlService) Compute(ctx context.Context, pair, startDate, endDate string) (*dto.PnLSummary, error) {
	p, err := dto.ParsePair(pair)
	if err != nil {
		return nil, err
	}

	start, err := utils.ParseUTCDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseUTCDate(endDate)
	if err != nil {
		return nil, err
	}
	// The window runs through the whole end day.
	endExclusive := end.Add(24 * time.Hour)

	symbol := p.Symbol()
	trades, err := s.exchangeRepo.GetMyTrades(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("trade history unavailable for %s: %w", symbol, err)
	}

	ledger := filterLedger(trades, start, endExclusive)

	snapshot := utils.MinTime(utils.StartOfUTCDay(time.Now()), endExclusive)
	prices := s.fetchReferencePrices(ctx, p, snapshot)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("profit/loss computation cancelled: %w", err)
	}

	summary := computeSummary(p, ledger, prices, start, snapshot)
	summary.StartDate = startDate
	summary.EndDate = endDate

	s.log.InfoContext(ctx, "Computed profit/loss summary",
		logger.StringField("symbol", symbol),
		logger.IntField("trades_executed", summary.TradesExecuted),
		logger.Float64Field("total_volume", summary.TotalVolume),
	)

	return summary, nil
}

// ComputeAndStore computes the summary and persists it together with the
// realized-pnl rows derived from its ledger.
func (s *pnlService) ComputeAndStore(ctx context.Context, pair, startDate, endDate string) (*dto.PnLSummary, error) {
	summary, err := s.Compute(ctx, pair, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if s.reportRepo == nil {
		return summary, nil
	}

	report, realized, err := buildReport(summary)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Save(ctx, report, realized); err != nil {
		return nil, fmt.Errorf("failed to store report for %s: %w", summary.Symbol, err)
	}

	return summary, nil
}

func (s *pnlService) GetReports(ctx context.Context, symbol string, limit int) ([]model.PnLReport, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report storage is not configured")
	}
	return s.reportRepo.FindReports(ctx, symbol, limit)
}

// fetchReferencePrices resolves the three spot snapshots. Each lookup is
// independently best-effort: a failure is logged and leaves the entry nil.
// Stablecoin quotes and a rebate-asset quote short-circuit to 1 without any
// exchange call.
func (s *pnlService) fetchReferencePrices(ctx context.Context, pair dto.Pair, snapshot time.Time) referencePrices {
	var prices referencePrices

	if price, err := s.lookupPrice(ctx, pair.Symbol(), snapshot); err != nil {
		s.log.WarnContext(ctx, "Symbol price lookup failed, total_quote will be unavailable",
			logger.StringField("symbol", pair.Symbol()),
			logger.ErrorField(err),
		)
	} else {
		prices.Symbol = &price
	}

	if utils.ContainsString(dto.USDStablecoins, pair.Quote) {
		prices.QuoteUSD = utils.ToPointer(1.0)
	} else if price, err := s.lookupPrice(ctx, pair.Quote+"USDT", snapshot); err != nil {
		s.log.WarnContext(ctx, "Quote USD price lookup failed",
			logger.StringField("symbol", pair.Quote+"USDT"),
			logger.ErrorField(err),
		)
	} else {
		prices.QuoteUSD = &price
	}

	if pair.Quote == dto.RebateAsset {
		prices.BNBQuote = utils.ToPointer(1.0)
	} else if price, err := s.lookupPrice(ctx, dto.RebateAsset+pair.Quote, snapshot); err != nil {
		s.log.WarnContext(ctx, "Rebate asset price lookup failed",
			logger.StringField("symbol", dto.RebateAsset+pair.Quote),
			logger.ErrorField(err),
		)
	} else {
		prices.BNBQuote = &price
	}

	return prices
}

// lookupPrice wraps the repository call in bounded retry with exponential
// backoff. Cancellation aborts between attempts and is returned as-is.
func (s *pnlService) lookupPrice(ctx context.Context, symbol string, at time.Time) (float64, error) {
	attempts := s.cfg.PnL.PriceRetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := s.cfg.PnL.PriceRetryBackoff

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		price, err := s.exchangeRepo.GetRecentPrice(ctx, symbol, at)
		if err == nil {
			return price, nil
		}
		lastErr = err

		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff * time.Duration(1<<attempt)):
		}
	}
	return 0, lastErr
}

// EnsureSufficient returns ErrInsufficientData when either volume-weighted
// average is unavailable because that side of the ledger had no trades.
func EnsureSufficient(summary *dto.PnLSummary) error {
	if summary.AverageBuyPrice == nil || summary.AverageSellPrice == nil {
		return fmt.Errorf("%w (symbol %s)", ErrInsufficientData, summary.Symbol)
	}
	return nil
}

// buildReport maps a summary to its persistence shape plus the realized-pnl
// rows used by the chart queries.
func buildReport(summary *dto.PnLSummary) (*model.PnLReport, []model.RealizedTrade, error) {
	start, err := utils.ParseUTCDate(summary.StartDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := utils.ParseUTCDate(summary.EndDate)
	if err != nil {
		return nil, nil, err
	}

	tradesJSON, err := json.Marshal(summary.Trades)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal ledger for %s: %w", summary.Symbol, err)
	}

	report := &model.PnLReport{
		Pair:             summary.Pair,
		Symbol:           summary.Symbol,
		StartDate:        start,
		EndDate:          end,
		SnapshotTime:     summary.SnapshotTime,
		Days:             summary.Days,
		TradesExecuted:   summary.TradesExecuted,
		AverageBuyPrice:  summary.AverageBuyPrice,
		AverageSellPrice: summary.AverageSellPrice,
		DeltaBase:        summary.DeltaBase,
		DeltaQuote:       summary.DeltaQuote,
		FeeBase:          summary.FeeBase,
		FeeQuote:         summary.FeeQuote,
		FeeBNB:           summary.FeeBNB,
		TotalVolume:      summary.TotalVolume,
		TotalPercent:     summary.TotalPercent,
		TotalBase:        summary.TotalBase,
		TotalQuote:       summary.TotalQuote,
		SymbolPrice:      summary.SymbolPrice,
		QuoteUSDPrice:    summary.QuoteUSDPrice,
		BNBQuotePrice:    summary.BNBQuotePrice,
		Trades:           tradesJSON,
	}

	rows := BuildRealizedRows(summary)
	realized := make([]model.RealizedTrade, 0, len(rows))
	for _, row := range rows {
		realized = append(realized, model.RealizedTrade{
			Symbol:    row.Symbol,
			TradeTime: row.Time,
			PnL:       row.PnL,
		})
	}

	return report, realized, nil
}
