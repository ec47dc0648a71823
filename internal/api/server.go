// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the HTTP server: repositories, services, handlers, the
middleware chain, and the route table.

# Request Pipeline

RequestID, StructuredLogger, Timeout, Metrics, RateLimit, PanicRecovery, CORS,
then Authenticate. Authentication is anonymous-pass-through; route groups opt
into RequireAuth / RequireAdmin.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/algoarena/internal/arena/challenge"
	"github.com/taibuivan/algoarena/internal/arena/stats"
	"github.com/taibuivan/algoarena/internal/arena/submission"
	"github.com/taibuivan/algoarena/internal/platform/config"
	"github.com/taibuivan/algoarena/internal/platform/constants"
	"github.com/taibuivan/algoarena/internal/platform/metrics"
	"github.com/taibuivan/algoarena/internal/platform/middleware"
	"github.com/taibuivan/algoarena/internal/platform/sec"
	"github.com/taibuivan/algoarena/internal/users/auth"
)

// Server is the assembled AlgoArena API.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	http   *http.Server

	// AuthService is exposed for the session janitor in main.
	AuthService *auth.Service
}

// NewServer wires every layer and returns a ready-to-start server.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
) (*Server, error) {
	// ── 1. Security primitives ──
	tokenService, err := sec.NewTokenService(cfg.JWTAccessSecret(), constants.AuthIssuer, cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	// ── 2. Repositories ──
	userRepo := auth.NewPostgresUserRepository(pool)
	sessionRepo := auth.NewPostgresSessionRepository(pool)
	resetRepo := auth.NewRedisResetTokenRepository(redisClient)
	challengeRepo := challenge.NewPostgresRepository(pool)
	submissionRepo := submission.NewPostgresRepository(pool)
	statsRepo := stats.NewPostgresRepository(pool)
	statsCache := stats.NewRedisCache(redisClient)

	// ── 3. Services ──
	authService := auth.NewService(userRepo, sessionRepo, resetRepo, tokenService, cfg.RefreshTokenTTL())
	challengeService := challenge.NewService(challengeRepo)
	submissionService := submission.NewService(submissionRepo, challengeService)
	statsService := stats.NewService(statsRepo, statsCache)

	// ── 4. Handlers ──
	authHandler := auth.NewHandler(authService, auth.CookieSettings{
		SameSite: cfg.SameSite(),
		Secure:   cfg.CookieSecureEffective(),
	}, cfg.IsDevelopment())
	challengeHandler := challenge.NewHandler(challengeService)
	submissionHandler := submission.NewHandler(submissionService)
	statsHandler := stats.NewHandler(statsService)
	healthHandler := newHealthHandler(pool, redisClient)

	// ── 5. Metrics ──
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector(registry)

	// ── 6. Router ──
	router := chi.NewRouter()
	router.Use(chimiddleware.CleanPath)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))
	router.Use(collector.Middleware())
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Authenticate(tokenService, authService))

	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", authHandler.Routes())
		api.Mount("/challenges", challengeHandler.Routes())
		api.Mount("/submissions", submissionHandler.Routes())
		api.Mount("/dashboard", statsHandler.DashboardRoutes())
		api.Mount("/profile", statsHandler.ProfileRoutes())
		api.Mount("/leaderboard", statsHandler.LeaderboardRoutes())
	})

	router.Get("/health", healthHandler.liveness)
	router.Get("/ready", healthHandler.readiness)
	router.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
		AuthService: authService,
	}, nil
}

// ListenAndServe starts the HTTP listener and blocks until it stops.
func (server *Server) ListenAndServe() error {
	server.logger.Info("http server listening",
		"addr", server.http.Addr,
		"environment", server.cfg.Environment,
	)
	return server.http.ListenAndServe()
}

// Shutdown drains in-flight requests up to the context deadline.
func (server *Server) Shutdown(ctx context.Context) error {
	return server.http.Shutdown(ctx)
}
