package service

import (
	"context"
	"crypto-pnl/internal/dto"
	"crypto-pnl/internal/repository"
	"crypto-pnl/pkg/logger"
	"crypto-pnl/pkg/utils"
	"sort"
	"time"
)

// ChartService groups stored realized-pnl rows into the shapes the
// dashboard charts render. It does no new math beyond summing and sorting.
type ChartService interface {
	GetChartData(ctx context.Context, req dto.ChartRequest) (*dto.ChartData, error)
}

type chartService struct {
	log        *logger.Logger
	reportRepo repository.PnLReportRepository
}

func NewChartService(log *logger.Logger, reportRepo repository.PnLReportRepository) ChartService {
	return &chartService{
		log:        log,
		reportRepo: reportRepo,
	}
}

// BuildRealizedRows maps a summary's ledger to per-trade realized-pnl
// events: each SELL fill realizes (price - average buy price) x qty against
// the window's volume-weighted buy average. A ledger without buys produces
// no rows since there is no cost basis to realize against.
func BuildRealizedRows(summary *dto.PnLSummary) []dto.RealizedRow {
	if summary.AverageBuyPrice == nil {
		return nil
	}
	avgBuy := *summary.AverageBuyPrice

	var rows []dto.RealizedRow
	for _, t := range summary.Trades {
		if t.Side != dto.SideSell {
			continue
		}
		rows = append(rows, dto.RealizedRow{
			Time:   t.Time,
			Symbol: t.Symbol,
			PnL:    utils.RoundTo((t.Price-avgBuy)*t.QtyBase, pnlRoundDecimals),
		})
	}
	return rows
}

func (s *chartService) GetChartData(ctx context.Context, req dto.ChartRequest) (*dto.ChartData, error) {
	var start, end *time.Time
	if req.StartDate != "" {
		t, err := utils.ParseUTCDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := utils.ParseUTCDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		// Through the whole end day, same convention as the aggregator.
		t = t.Add(24 * time.Hour)
		end = &t
	}

	rows, err := s.reportRepo.FindRealizedTrades(ctx, req.Symbols, start, end)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load realized trades for chart", logger.ErrorField(err))
		return nil, err
	}

	data := &dto.ChartData{
		Daily:    []dto.DailyPnL{},
		BySymbol: []dto.SymbolPnL{},
	}

	byDay := make(map[string]float64)
	bySymbol := make(map[string]float64)
	var days []string

	for _, row := range rows {
		day := row.TradeTime.UTC().Format(utils.DateLayout)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] += row.PnL
		bySymbol[row.Symbol] += row.PnL
	}

	// Rows arrive ordered by trade time, so days are already chronological;
	// the cumulative line folds left to right.
	cumulative := 0.0
	for _, day := range days {
		cumulative += byDay[day]
		data.Daily = append(data.Daily, dto.DailyPnL{
			Date:       day,
			PnL:        utils.RoundTo(byDay[day], pnlRoundDecimals),
			Cumulative: utils.RoundTo(cumulative, pnlRoundDecimals),
		})
	}

	for symbol, pnl := range bySymbol {
		category := "profit"
		if pnl < 0 {
			category = "loss"
		}
		data.BySymbol = append(data.BySymbol, dto.SymbolPnL{
			Symbol:   symbol,
			PnL:      utils.RoundTo(pnl, pnlRoundDecimals),
			Category: category,
		})

		if pnl >= 0 {
			data.ProfitTotal += pnl
		} else {
			data.LossTotal += pnl
		}
		data.NetTotal += pnl
	}
	sort.Slice(data.BySymbol, func(i, j int) bool {
		return data.BySymbol[i].PnL < data.BySymbol[j].PnL
	})

	data.ProfitTotal = utils.RoundTo(data.ProfitTotal, pnlRoundDecimals)
	data.LossTotal = utils.RoundTo(data.LossTotal, pnlRoundDecimals)
	data.NetTotal = utils.RoundTo(data.NetTotal, pnlRoundDecimals)

	return data, nil
}
