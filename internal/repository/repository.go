package repository

import (
	"crypto-pnl/config"
	"crypto-pnl/pkg/cache"
	"crypto-pnl/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	ExchangeRepo  ExchangeRepository
	PnLReportRepo PnLReportRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, inmemoryCache cache.Cache, log *logger.Logger) *Repository {
	return &Repository{
		ExchangeRepo:  NewBinanceRepository(cfg, log, inmemoryCache),
		PnLReportRepo: NewPnLReportRepository(db),
	}
}
