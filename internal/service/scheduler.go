package service

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"crypto-pnl/pkg/logger"
	"crypto-pnl/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// DigestNotifier receives the summaries of a finished scheduled run. It is
// optional; a nil notifier skips delivery.
type DigestNotifier interface {
	SendDailyDigest(ctx context.Context, summaries []*dto.PnLSummary) error
}

// SchedulerService runs the daily report over the configured pair
// watchlist.
type SchedulerService interface {
	Start() error
	Stop()
	RunDailyReport(ctx context.Context) error
}

type schedulerService struct {
	cfg        *config.Config
	log        *logger.Logger
	pnlService PnLService
	notifier   DigestNotifier
	cron       *cron.Cron
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	pnlService PnLService,
	notifier DigestNotifier,
) SchedulerService {
	return &schedulerService{
		cfg:        cfg,
		log:        log,
		pnlService: pnlService,
		notifier:   notifier,
		cron:       cron.New(),
	}
}

func (s *schedulerService) Start() error {
	if len(s.cfg.PnL.Pairs) == 0 {
		s.log.Info("No pairs configured, daily report scheduler disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.DailyReportSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Scheduler.TimeoutDuration)
		defer cancel()

		if err := s.RunDailyReport(ctx); err != nil {
			s.log.Error("Daily report run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Daily report scheduler started",
		logger.StringField("spec", s.cfg.Scheduler.DailyReportSpec),
		logger.IntField("pairs", len(s.cfg.PnL.Pairs)),
	)
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Daily report scheduler stopped")
}

// RunDailyReport computes and stores a summary per configured pair, bounded
// by the configured concurrency, then pushes the digest. A failing pair is
// logged and skipped so one bad symbol does not starve the rest.
func (s *schedulerService) RunDailyReport(ctx context.Context) error {
	startDate := s.cfg.PnL.PeriodStartDate
	endDate := time.Now().UTC().Format(utils.DateLayout)

	summaries := make([]*dto.PnLSummary, len(s.cfg.PnL.Pairs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Scheduler.MaxConcurrency)

	for i, pair := range s.cfg.PnL.Pairs {
		i, pair := i, pair
		g.Go(func() error {
			summary, err := s.pnlService.ComputeAndStore(gCtx, pair, startDate, endDate)
			if err != nil {
				s.log.ErrorContext(gCtx, "Failed to compute pair in daily report",
					logger.StringField("pair", pair),
					logger.ErrorField(err),
				)
				return nil
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	completed := make([]*dto.PnLSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary != nil {
			completed = append(completed, summary)
		}
	}

	s.log.InfoContext(ctx, "Daily report run completed",
		logger.IntField("pairs_requested", len(s.cfg.PnL.Pairs)),
		logger.IntField("pairs_completed", len(completed)),
	)

	if s.notifier == nil || len(completed) == 0 {
		return nil
	}
	if err := s.notifier.SendDailyDigest(ctx, completed); err != nil {
		s.log.ErrorContext(ctx, "Failed to send daily digest", logger.ErrorField(err))
	}
	return nil
}
