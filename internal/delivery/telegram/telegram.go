package telegram

import (
	"context"
	"crypto-pnl/config"
	"crypto-pnl/internal/service"
	"crypto-pnl/pkg/logger"
	"crypto-pnl/pkg/utils"
	"time"

	"gopkg.in/telebot.v3"
)

// TelegramBotHandler serves the on-demand /pnl command and pushes the daily
// digest to the configured chat.
type TelegramBotHandler struct {
	cfg     *config.Config
	log     *logger.Logger
	bot     *telebot.Bot
	service *service.Service
}

func NewTelegramBotHandler(
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	svc *service.Service,
) *TelegramBotHandler {
	return &TelegramBotHandler{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		service: svc,
	}
}

func (t *TelegramBotHandler) Start() {
	t.bot.Handle("/pnl", func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), t.cfg.Telegram.TimeoutDuration)
		defer cancel()
		return t.handlePnL(ctx, c)
	})

	t.log.Info("Telegram bot started")
	t.bot.Start()
}

func (t *TelegramBotHandler) Stop() {
	t.bot.Stop()
	t.log.Info("Telegram bot stopped")
}

// handlePnL answers "/pnl BASE-QUOTE [start] [end]" with a formatted
// summary. Start defaults to the configured period start, end to today.
func (t *TelegramBotHandler) handlePnL(ctx context.Context, c telebot.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("Usage: /pnl BASE-QUOTE [start YYYY-MM-DD] [end YYYY-MM-DD]")
	}

	pair := args[0]
	startDate := t.cfg.PnL.PeriodStartDate
	endDate := time.Now().UTC().Format(utils.DateLayout)
	if len(args) > 1 {
		startDate = args[1]
	}
	if len(args) > 2 {
		endDate = args[2]
	}

	summary, err := t.service.PnLService.ComputeAndStore(ctx, pair, startDate, endDate)
	if err != nil {
		t.log.ErrorContext(ctx, "Failed to compute summary for /pnl command",
			logger.StringField("pair", pair),
			logger.ErrorField(err),
		)
		return c.Send("Could not compute profit/loss: " + err.Error())
	}

	return c.Send(FormatSummary(summary), telebot.ModeHTML)
}
