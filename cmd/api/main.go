// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the AlgoArena REST API.
//
// Startup order: configuration, logger, migrations, Postgres, Redis, HTTP
// server, session janitor. Shutdown drains in-flight requests, stops the
// janitor, then closes the stores.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/taibuivan/algoarena/internal/api"
	"github.com/taibuivan/algoarena/internal/platform/config"
	"github.com/taibuivan/algoarena/internal/platform/constants"
	"github.com/taibuivan/algoarena/internal/platform/migration"
	"github.com/taibuivan/algoarena/internal/platform/postgres"
	"github.com/taibuivan/algoarena/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// ── 1. Configuration ──
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ── 2. Logger ──
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting",
		"app", constants.AppName,
		"version", constants.AppVersion,
		"environment", cfg.Environment,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 3. Migrations ──
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// ── 4. Stores ──
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// ── 5. HTTP server ──
	server, err := api.NewServer(ctx, cfg, logger, pool, redisClient)
	if err != nil {
		return err
	}

	// ── 6. Session janitor ──
	// Expired ledger entries are already unusable; the janitor only keeps the
	// table from growing without bound.
	janitor := cron.New()
	_, err = janitor.AddFunc("@hourly", func() {
		removed, err := server.AuthService.PurgeExpiredSessions(context.Background())
		if err != nil {
			logger.Error("session janitor failed", "error", err)
			return
		}
		if removed > 0 {
			logger.Info("session janitor purged expired refresh tokens", "removed", removed)
		}
	})
	if err != nil {
		return err
	}
	janitor.Start()
	defer janitor.Stop()

	// ── 7. Serve until signalled ──
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newLogger builds the process logger: JSON in production, text for local
// development, debug level when DEBUG is set.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler).With("app", constants.AppName)
}
