package service

import (
	"crypto-pnl/config"
	"crypto-pnl/internal/repository"
	"crypto-pnl/pkg/logger"
)

type Service struct {
	PnLService       PnLService
	ChartService     ChartService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier DigestNotifier,
) *Service {
	pnlService := NewPnLService(cfg, log, repo.ExchangeRepo, repo.PnLReportRepo)
	chartService := NewChartService(log, repo.PnLReportRepo)
	schedulerService := NewSchedulerService(cfg, log, pnlService, notifier)

	return &Service{
		PnLService:       pnlService,
		ChartService:     chartService,
		SchedulerService: schedulerService,
	}
}
