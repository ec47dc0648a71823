// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/algoarena/internal/platform/middleware"
	requestutil "github.com/taibuivan/algoarena/internal/platform/request"
	"github.com/taibuivan/algoarena/internal/platform/respond"
	"github.com/taibuivan/algoarena/internal/platform/validate"
	"github.com/taibuivan/algoarena/pkg/pagination"
)

// Handler exposes the submission workflow under /api/submissions.
type Handler struct {
	service *Service
}

// NewHandler creates the submission HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /api/submissions route tree. Every route requires an
// authenticated caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.submit)
	router.Get("/mine", handler.listMine)
	router.Get("/{submissionID}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Get("/", handler.list)
		admin.Put("/{submissionID}", handler.grade)
	})

	return router
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SubmitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldChallengeID, input.ChallengeID).
		UUID(FieldChallengeID, input.ChallengeID).
		Required(FieldLanguage, input.Language).
		OneOf(FieldLanguage, input.Language, Languages...)

	// Exactly one solution form.
	hasURL := input.RepositoryURL != nil && *input.RepositoryURL != ""
	hasCode := input.Code != nil && *input.Code != ""
	validator.Custom(FieldCode, hasURL == hasCode, "Provide either code or a repository URL, not both")
	if hasURL {
		validator.URL(FieldRepositoryURL, *input.RepositoryURL)
	}
	if hasCode {
		validator.MaxLen(FieldCode, *input.Code, CodeMaxLength)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Submit(request.Context(), identity.ID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entry)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), identity, requestutil.Param(request, "submissionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := ListFilter{
		Status:      request.URL.Query().Get("status"),
		ChallengeID: request.URL.Query().Get("challenge_id"),
		UserID:      request.URL.Query().Get("user_id"),
	}
	if filter.Status != "" {
		validator := &validate.Validator{}
		err := validator.
			OneOf(FieldStatus, filter.Status, StatusPending, StatusAccepted, StatusRejected).
			Err()
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	page := pagination.FromRequest(request)
	submissions, meta, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, submissions, meta)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	submissions, meta, err := handler.service.ListMine(request.Context(), identity.ID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, submissions, meta)
}

func (handler *Handler) grade(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input GradeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Grade(request.Context(), identity, requestutil.Param(request, "submissionID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}
