package cmd

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"crypto-pnl/internal/repository"
	"crypto-pnl/internal/service"
	"crypto-pnl/pkg/cache"
	"crypto-pnl/pkg/logger"
	"crypto-pnl/pkg/utils"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	reportPair  string
	reportStart string
	reportEnd   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute and print a one-shot profit/loss summary (no database needed)",
	Run:   RunReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportPair, "pair", "", "trading pair, e.g. BTC-USDT")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "start date YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "end date YYYY-MM-DD, defaults to today")
	_ = reportCmd.MarkFlagRequired("pair")
	_ = reportCmd.MarkFlagRequired("start")
}

func RunReport(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if reportEnd == "" {
		reportEnd = time.Now().UTC().Format(utils.DateLayout)
	}

	priceCache := cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval)
	exchangeRepo := repository.NewBinanceRepository(cfg, logg, priceCache)
	pnlService := service.NewPnLService(cfg, logg, exchangeRepo, nil)

	summary, err := pnlService.Compute(ctx, reportPair, reportStart, reportEnd)
	if err != nil {
		log.Fatalf("Failed to compute profit/loss: %v", err)
	}

	printSummary(summary)
}

func printSummary(s *dto.PnLSummary) {
	pair, _ := dto.ParsePair(s.Pair)

	fmt.Printf("Summary for %s for period [%s - %s]:\n", s.Symbol, s.StartDate, s.EndDate)
	fmt.Printf("   Days: %d\n", s.Days)
	fmt.Printf("   Trades executed: %d\n", s.TradesExecuted)
	fmt.Printf("   Total volume traded (%s): %s\n", pair.Quote, formatValue(&s.TotalVolume))
	fmt.Printf("   Average buy price: %s\n", formatValue(s.AverageBuyPrice))
	fmt.Printf("   Average sell price: %s\n", formatValue(s.AverageSellPrice))
	fmt.Println("Trading delta:")
	fmt.Printf("   Delta %s: %s\n", pair.Base, formatValue(&s.DeltaBase))
	fmt.Printf("   Delta %s: %s\n", pair.Quote, formatValue(&s.DeltaQuote))
	fmt.Println("Fees:")
	fmt.Printf("   Fees %s: %s\n", pair.Base, formatValue(&s.FeeBase))
	fmt.Printf("   Fees %s: %s\n", pair.Quote, formatValue(&s.FeeQuote))
	fmt.Printf("   Fees BNB: %s\n", formatValue(&s.FeeBNB))
	fmt.Printf("Prices at the end of the period [%s]:\n", s.SnapshotTime.Format("2006-01-02 15:04"))
	fmt.Printf("   Price %s: %s\n", s.Symbol, formatValue(s.SymbolPrice))
	fmt.Printf("   Price %sUSDT: %s\n", pair.Quote, formatValue(s.QuoteUSDPrice))
	fmt.Printf("   Price BNB%s: %s\n", pair.Quote, formatValue(s.BNBQuotePrice))
	fmt.Println("Total profit:")
	fmt.Printf("   Total profit (%s): %s (%s%%)\n", pair.Base, formatValue(&s.TotalBase), formatValue(s.TotalPercent))
	fmt.Printf("   Total profit (%s): %s\n", pair.Quote, formatValue(s.TotalQuote))
}

func formatValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.8f", *v)
}
