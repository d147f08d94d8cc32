package cmd

import (
	"context"
	"crypto-pnl/internal/delivery/http"
	"crypto-pnl/internal/delivery/telegram"
	"crypto-pnl/internal/repository"
	"crypto-pnl/internal/service"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the profit/loss server, scheduler and bot",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.cache, appDep.log)

	var notifier service.DigestNotifier
	if appDep.telegramBot != nil {
		notifier = telegram.NewDigestNotifier(appDep.cfg, appDep.log, appDep.telegramBot)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo, notifier)
	httpHandler := http.NewHttpAPIHandler(appDep.echo, appDep.validator, services)

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	if err := services.SchedulerService.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	var telegramHandler *telegram.TelegramBotHandler
	if appDep.telegramBot != nil {
		telegramHandler = telegram.NewTelegramBotHandler(appDep.cfg, appDep.log, appDep.telegramBot, services)
		go telegramHandler.Start()
	}

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	services.SchedulerService.Stop()

	if telegramHandler != nil {
		telegramHandler.Stop()
	}

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
