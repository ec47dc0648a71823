// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/algoarena/internal/platform/constants"
	"github.com/taibuivan/algoarena/internal/platform/postgres"
	"github.com/taibuivan/algoarena/internal/platform/redis"
	"github.com/taibuivan/algoarena/internal/platform/respond"
)

// healthHandler serves the liveness and readiness probes.
type healthHandler struct {
	pool        *pgxpool.Pool
	redisClient *goredis.Client
}

func newHealthHandler(pool *pgxpool.Pool, redisClient *goredis.Client) *healthHandler {
	return &healthHandler{pool: pool, redisClient: redisClient}
}

// liveness reports that the process is up. It never touches dependencies.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus:  "ok",
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}

// readiness reports whether the dependencies answer. A failing dependency
// returns 503 so load balancers stop routing here.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := postgres.Ping(ctx, handler.pool); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if err := redis.Ping(ctx, handler.redisClient); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(writer, status, respond.SuccessEnvelope{
		Success: healthy,
		Data:    map[string]any{constants.FieldChecks: checks},
	})
}
