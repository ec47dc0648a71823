// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/algoarena/internal/platform/middleware"
	requestutil "github.com/taibuivan/algoarena/internal/platform/request"
	"github.com/taibuivan/algoarena/internal/platform/respond"
)

// Handler exposes the aggregation endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the stats HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DashboardRoutes returns the /api/dashboard route tree.
func (handler *Handler) DashboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/summary", handler.dashboard)
	return router
}

// ProfileRoutes returns the /api/profile route tree.
func (handler *Handler) ProfileRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/stats", handler.profile)
	return router
}

// LeaderboardRoutes returns the public /api/leaderboard route tree.
func (handler *Handler) LeaderboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.leaderboard)
	return router
}

func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Dashboard(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Leaderboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}
