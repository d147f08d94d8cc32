package telegram

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/dto"
	"crypto-pnl/pkg/logger"
	"fmt"
	"strings"

	"gopkg.in/telebot.v3"
)

// DigestNotifier pushes daily digest messages to the configured chat. It is
// separate from the command handler so the scheduler can be wired to it
// without a dependency on the service layer.
type DigestNotifier struct {
	cfg *config.Config
	log *logger.Logger
	bot *telebot.Bot
}

func NewDigestNotifier(cfg *config.Config, log *logger.Logger, bot *telebot.Bot) *DigestNotifier {
	return &DigestNotifier{
		cfg: cfg,
		log: log,
		bot: bot,
	}
}

func (n *DigestNotifier) SendDailyDigest(ctx context.Context, summaries []*dto.PnLSummary) error {
	sb := &strings.Builder{}
	sb.WriteString("📊 <b>Daily Profit/Loss Digest</b>\n")

	for _, summary := range summaries {
		sb.WriteString("\n")
		sb.WriteString(FormatSummary(summary))
	}

	_, err := n.bot.Send(telebot.ChatID(n.cfg.Telegram.ChatID), sb.String(), telebot.ModeHTML)
	if err != nil {
		return fmt.Errorf("failed to send daily digest: %w", err)
	}

	n.log.InfoContext(ctx, "Daily digest sent", logger.IntField("pairs", len(summaries)))
	return nil
}

// FormatSummary renders one summary as an HTML Telegram message. Fields
// whose reference price was unavailable show up as n/a instead of a number.
func FormatSummary(s *dto.PnLSummary) string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "💹 <b>%s</b> [%s → %s]\n", s.Pair, s.StartDate, s.EndDate)
	fmt.Fprintf(sb, "Days: %d | Trades: %d\n", s.Days, s.TradesExecuted)
	fmt.Fprintf(sb, "Volume (%s): %s\n", quoteAsset(s), formatFloat(&s.TotalVolume))
	fmt.Fprintf(sb, "Avg buy: %s | Avg sell: %s\n", formatFloat(s.AverageBuyPrice), formatFloat(s.AverageSellPrice))
	fmt.Fprintf(sb, "Delta: %s %s / %s %s\n",
		formatFloat(&s.DeltaBase), baseAsset(s),
		formatFloat(&s.DeltaQuote), quoteAsset(s))
	fmt.Fprintf(sb, "Fees: %s %s / %s %s / %s BNB\n",
		formatFloat(&s.FeeBase), baseAsset(s),
		formatFloat(&s.FeeQuote), quoteAsset(s),
		formatFloat(&s.FeeBNB))
	fmt.Fprintf(sb, "Total: %s %s (%s%%) | %s %s\n",
		formatFloat(&s.TotalBase), baseAsset(s),
		formatFloat(s.TotalPercent),
		formatFloat(s.TotalQuote), quoteAsset(s))

	return sb.String()
}

func formatFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.8f", *v)
}

func baseAsset(s *dto.PnLSummary) string {
	if pair, err := dto.ParsePair(s.Pair); err == nil {
		return pair.Base
	}
	return ""
}

func quoteAsset(s *dto.PnLSummary) string {
	if pair, err := dto.ParsePair(s.Pair); err == nil {
		return pair.Quote
	}
	return ""
}
