package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"palabra/internal/config"
	"palabra/internal/handler"
	"palabra/internal/logging"
	"palabra/internal/middleware"
	"palabra/internal/service"
	"palabra/internal/storage"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting palabra bot", zap.String("storage", cfg.Storage))

	if err := cfg.ValidateBot(); err != nil {
		logger.Fatal("Invalid bot configuration", zap.Error(err))
	}
	if len(cfg.Bot.OwnerIDs) == 0 {
		logger.Warn("BOT_OWNER_IDS is empty, the bot answers everyone")
	}

	repo, closeStorage, err := storage.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer closeStorage()

	// Initialize services
	scheduler := service.NewScheduler(repo, logger)
	statsService := service.NewStatsService(repo, scheduler, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.OwnerOnly(cfg.Bot.OwnerIDs, logger))

	h := handler.NewHandler(bot, scheduler, statsService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runDueReportJob(ctx, statsService, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// runDueReportJob logs how many words are due, at startup and then daily
func runDueReportJob(ctx context.Context, statsService *service.StatsService, logger *zap.Logger) {
	if err := statsService.ReportDue(); err != nil {
		logger.Error("Failed to report due words", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Due report job stopped")
			return
		case <-ticker.C:
			if err := statsService.ReportDue(); err != nil {
				logger.Error("Failed to report due words", zap.Error(err))
			}
		}
	}
}
