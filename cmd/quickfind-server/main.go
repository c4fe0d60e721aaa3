package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"quickfind/internal/app"
	"quickfind/internal/config"
)

func main() {
	configPath := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/quickfind/config.toml)")
	flag.Parse()

	logger := app.NewLogger(os.Stdout)

	cfg, err := config.NewConfigServiceAt(*configPath).Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	app.ApplyServerEnv(&cfg.Server, os.Getenv)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.RunServer(ctx, cfg.Server, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited normally")
}
