// Package app wires configuration, storage and transport into the two
// runnable surfaces: the search endpoint and the terminal widget.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"quickfind/internal/catalog"
	"quickfind/internal/config"
	"quickfind/internal/search"
	"quickfind/internal/server"
)

// NewLogger returns the JSON logger used by the endpoint
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// ApplyServerEnv overrides settings from PORT and DATABASE_URL
func ApplyServerEnv(s *config.ServerSettings, getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		s.Addr = ":" + port
	}
	if dsn := getenv("DATABASE_URL"); dsn != "" {
		s.DatabaseURL = dsn
	}
}

// OpenStore opens the Postgres catalog when dsn is set. An unreachable
// database falls back to the in-memory catalog so the endpoint still serves.
func OpenStore(ctx context.Context, dsn string, logger *slog.Logger) (catalog.Store, func()) {
	if dsn == "" {
		return catalog.NewMemoryStore(nil), func() {}
	}

	pg, err := catalog.OpenPostgres(ctx, dsn)
	if err != nil {
		logger.Warn("postgres unavailable, serving the in-memory catalog", "error", err)
		return catalog.NewMemoryStore(nil), func() {}
	}
	return pg, func() {
		if err := pg.Close(); err != nil {
			logger.Warn("failed to close postgres", "error", err)
		}
	}
}

// RunServer serves the search endpoint until ctx is cancelled
func RunServer(ctx context.Context, settings config.ServerSettings, logger *slog.Logger) error {
	store, closeStore := OpenStore(ctx, settings.DatabaseURL, logger)
	defer closeStore()

	svc, err := search.NewService(store, search.Options{
		MinDelay: settings.MinDelayMs,
		MaxDelay: settings.MaxDelayMs,
	})
	if err != nil {
		return fmt.Errorf("failed to create search service: %w", err)
	}

	logger.Info("starting search endpoint",
		"addr", settings.Addr,
		"catalog", store.Mode(),
		"min_delay_ms", settings.MinDelayMs,
		"max_delay_ms", settings.MaxDelayMs,
	)
	return server.New(svc, logger).Run(ctx, settings.Addr)
}
