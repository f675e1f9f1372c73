package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/user-console/internal/config"
	"github.com/user-console/internal/console"
	"github.com/user-console/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Sync()

	// Wire the client core
	app, err := console.New(cfg)
	if err != nil {
		logger.Fatal("failed to initialize console", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bring up background synchronization for a rehydrated session
	if err := app.Start(ctx); err != nil {
		logger.Fatal("failed to start console", "error", err)
	}

	state := app.Store.State()
	logger.Info("console ready",
		"authenticated", state.IsAuthenticated,
		"theme", state.Theme,
		"poll_interval", cfg.Sync.PollInterval,
	)

	// Probe backend reachability once at startup
	for svc, healthy := range app.ServiceStatuses(ctx) {
		logger.Info("backend status", "service", svc, "healthy", healthy)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	app.Stop()
	logger.Info("console stopped")
}
