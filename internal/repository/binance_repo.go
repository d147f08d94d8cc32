package repository

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"crypto-pnl/pkg/cache"
	"crypto-pnl/pkg/logger"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"
)

// ExchangeRepository is the data-source capability the aggregator consumes:
// trade history for a symbol and the most recent price at or after an
// instant.
type ExchangeRepository interface {
	GetMyTrades(ctx context.Context, symbol string) ([]dto.Trade, error)
	GetRecentPrice(ctx context.Context, symbol string, at time.Time) (float64, error)
}

type binanceRepository struct {
	client         *binance.Client
	cfg            *config.Config
	logger         *logger.Logger
	priceCache     cache.Cache
	requestLimiter *rate.Limiter
}

// NewBinanceRepository creates an ExchangeRepository backed by the Binance
// spot API. All calls share one rate limiter so bursts across pairs stay
// inside the configured request budget; this replaces a fixed post-request
// sleep.
func NewBinanceRepository(cfg *config.Config, log *logger.Logger, priceCache cache.Cache) ExchangeRepository {
	client := binance.NewClient(cfg.Binance.APIKey, cfg.Binance.APISecret)
	if cfg.Binance.BaseURL != "" {
		client.BaseURL = cfg.Binance.BaseURL
	}
	client.HTTPClient = &http.Client{Timeout: cfg.Binance.Timeout}

	secondsPerRequest := time.Minute / time.Duration(cfg.Binance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &binanceRepository{
		client:         client,
		cfg:            cfg,
		logger:         log,
		priceCache:     priceCache,
		requestLimiter: requestLimiter,
	}
}

func (r *binanceRepository) GetMyTrades(ctx context.Context, symbol string) ([]dto.Trade, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	rawTrades, err := r.client.NewListTradesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trade history for %s from binance: %w", symbol, err)
	}

	trades := make([]dto.Trade, 0, len(rawTrades))
	for _, t := range rawTrades {
		price, _ := strconv.ParseFloat(t.Price, 64)
		qtyBase, _ := strconv.ParseFloat(t.Quantity, 64)
		qtyQuote, _ := strconv.ParseFloat(t.QuoteQuantity, 64)
		fee, _ := strconv.ParseFloat(t.Commission, 64)

		side := dto.SideSell
		if t.IsBuyer {
			side = dto.SideBuy
		}

		trades = append(trades, dto.Trade{
			Time:        time.UnixMilli(t.Time).UTC(),
			Symbol:      t.Symbol,
			Side:        side,
			Price:       price,
			QtyBase:     qtyBase,
			QtyQuote:    qtyQuote,
			Fee:         fee,
			FeeCurrency: t.CommissionAsset,
		})
	}

	return trades, nil
}

// GetRecentPrice returns the close of the first 1m candle at or after the
// given instant. Snapshot instants are day-floored upstream, so the cache
// gets reused across pairs within one run.
func (r *binanceRepository) GetRecentPrice(ctx context.Context, symbol string, at time.Time) (float64, error) {
	cacheKey := fmt.Sprintf("price:%s:%d", symbol, at.UnixMilli())
	if price, found := cache.GetTyped[float64](r.priceCache, cacheKey); found {
		return price, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return 0, err
	}

	klines, err := r.client.NewKlinesService().
		Symbol(symbol).
		Interval("1m").
		StartTime(at.UnixMilli()).
		Limit(1).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s price from binance: %w", symbol, err)
	}

	if len(klines) == 0 {
		return 0, fmt.Errorf("no kline returned for %s at %s", symbol, at.Format(time.RFC3339))
	}

	price, err := strconv.ParseFloat(klines[0].Close, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s close price: %w", symbol, err)
	}

	r.priceCache.Set(cacheKey, price, r.cfg.PnL.PriceCacheTTL)
	return price, nil
}
