package repository

import (
	"context"
	"crypto-pnl/internal/model"
	"time"

	"gorm.io/gorm"
)

type PnLReportRepository interface {
	Save(ctx context.Context, report *model.PnLReport, realized []model.RealizedTrade) error
	FindReports(ctx context.Context, symbol string, limit int) ([]model.PnLReport, error)
	FindRealizedTrades(ctx context.Context, symbols []string, start, end *time.Time) ([]model.RealizedTrade, error)
}

type pnlReportRepository struct {
	db *gorm.DB
}

func NewPnLReportRepository(db *gorm.DB) PnLReportRepository {
	return &pnlReportRepository{db: db}
}

// Save stores the report and its realized rows in one transaction.
func (r *pnlReportRepository) Save(ctx context.Context, report *model.PnLReport, realized []model.RealizedTrade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		if len(realized) == 0 {
			return nil
		}
		for i := range realized {
			realized[i].ReportID = report.ID
		}
		return tx.Create(&realized).Error
	})
}

func (r *pnlReportRepository) FindReports(ctx context.Context, symbol string, limit int) ([]model.PnLReport, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reports []model.PnLReport
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *pnlReportRepository) FindRealizedTrades(ctx context.Context, symbols []string, start, end *time.Time) ([]model.RealizedTrade, error) {
	query := r.db.WithContext(ctx).Order("trade_time ASC")
	if len(symbols) > 0 {
		query = query.Where("symbol IN ?", symbols)
	}
	if start != nil {
		query = query.Where("trade_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("trade_time < ?", *end)
	}

	var trades []model.RealizedTrade
	if err := query.Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}
