// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package challenge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/algoarena/internal/platform/middleware"
	requestutil "github.com/taibuivan/algoarena/internal/platform/request"
	"github.com/taibuivan/algoarena/internal/platform/respond"
	"github.com/taibuivan/algoarena/internal/platform/validate"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// Handler exposes the challenge catalogue under /api/challenges.
type Handler struct {
	service *Service
}

// NewHandler creates the challenge HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /api/challenges route tree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/", handler.create)
		admin.Put("/{challengeID}", handler.update)
		admin.Delete("/{challengeID}", handler.remove)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := ListFilter{
		Difficulty: request.URL.Query().Get("difficulty"),
		Category:   request.URL.Query().Get("category"),
	}
	if filter.Difficulty != "" {
		validator := &validate.Validator{}
		err := validator.
			OneOf(FieldDifficulty, filter.Difficulty, DifficultyEasy, DifficultyMedium, DifficultyHard).
			Err()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	page := pagination.FromRequest(request)
	challenges, meta, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, challenges, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateChallengeInput(input.Title, input.Description, input.Difficulty, input.Points); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entry)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	challengeID := requestutil.Param(request, "challengeID")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateChallengeInput(input.Title, input.Description, input.Difficulty, input.Points); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Update(request.Context(), challengeID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "challengeID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func validateChallengeInput(title, description, difficulty string, points int) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldTitle, title).
		MaxLen(FieldTitle, title, TitleMaxLength).
		Required(FieldDescription, description).
		MaxLen(FieldDescription, description, DescriptionMaxLength).
		Required(FieldDifficulty, difficulty).
		OneOf(FieldDifficulty, difficulty, DifficultyEasy, DifficultyMedium, DifficultyHard).
		Custom(FieldPoints, points < 0 || points > PointsMax, "Must be between 0 and 1000").
		Err()
}
