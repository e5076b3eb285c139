package main

import (
	"fmt"
	"os"
	"path/filepath"

	"palabra/internal/config"
	"palabra/internal/logging"
	"palabra/internal/service"
	"palabra/internal/storage"
	"palabra/internal/tui"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "palabra: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile := cfg.LogFile
	if logFile == "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		logFile = filepath.Join(cfg.DataDir, "palabra.log")
	}
	logger, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting palabra tui", zap.String("storage", cfg.Storage))

	repo, closeStorage, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStorage()

	scheduler := service.NewScheduler(repo, logger)
	statsService := service.NewStatsService(repo, scheduler, logger)

	return tui.Run(scheduler, statsService, logger)
}
