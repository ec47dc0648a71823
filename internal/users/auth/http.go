// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/algoarena/internal/platform/constants"
	"github.com/taibuivan/algoarena/internal/platform/middleware"
	requestutil "github.com/taibuivan/algoarena/internal/platform/request"
	"github.com/taibuivan/algoarena/internal/platform/respond"
	"github.com/taibuivan/algoarena/internal/platform/sec"
	"github.com/taibuivan/algoarena/internal/platform/validate"
)

// CookieSettings controls how the refresh cookie is written.
//
// SameSite and Secure come from configuration; production forces Secure on.
type CookieSettings struct {
	SameSite http.SameSite
	Secure   bool
}

// Handler exposes the authentication endpoints under /api/auth.
type Handler struct {
	service *Service
	cookies CookieSettings

	// devMode surfaces password-reset tokens in responses instead of email,
	// which only exists in local development.
	devMode bool
}

// NewHandler creates the authentication HTTP handler.
func NewHandler(service *Service, cookies CookieSettings, devMode bool) *Handler {
	return &Handler{service: service, cookies: cookies, devMode: devMode}
}

// Routes returns the /api/auth route tree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public session lifecycle.
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Authenticated session management.
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.me)
		protected.Post("/logout-all", handler.logoutAll)
		protected.Post("/change-password", handler.changePassword)
	})

	// Admin user management.
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Patch("/users/{userID}/role", handler.setUserRole)
	})

	return router
}

// # Response Payloads

// authPayload is the envelope body for register and login responses.
type authPayload struct {
	ID       string       `json:"_id"`
	Username string       `json:"username"`
	Role     sec.UserRole `json:"role"`
	Token    string       `json:"token"`
}

func newAuthPayload(session *AuthSession) authPayload {
	return authPayload{
		ID:       session.User.ID,
		Username: session.User.Username,
		Role:     session.User.Role,
		Token:    session.AccessToken,
	}
}

// # Session Lifecycle Handlers

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLength).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		MaxLen(FieldPassword, input.Password, PasswordMaxLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Register(request.Context(), input, clientMeta(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session)
	respond.Created(writer, newAuthPayload(session))
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input, clientMeta(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session)
	respond.OK(writer, newAuthPayload(session))
}

/*
refresh rotates the refresh cookie and returns a fresh access token.

Any failure clears the cookie: a client holding a token the server rejected
has nothing worth retrying with.
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.service.Refresh(request.Context(), readRefreshCookie(request), clientMeta(request))
	if err != nil {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, session)
	respond.OK(writer, map[string]string{FieldToken: session.AccessToken})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Logout(request.Context(), readRefreshCookie(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.OKMessage(writer, nil, "Logged out")
}

func (handler *Handler) logoutAll(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.LogoutAll(request.Context(), identity.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.OKMessage(writer, nil, "Logged out everywhere")
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUser(request.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Password Handlers

type forgotPasswordInput struct {
	Email string `json:"email"`
}

func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Identical response for known and unknown emails.
	const message = "If that email is registered, a reset link has been sent"
	if handler.devMode && token != "" {
		respond.OKMessage(writer, map[string]string{"reset_token": token}, message)
		return
	}
	respond.OKMessage(writer, nil, message)
}

type resetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldToken, input.Token).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, PasswordMinLength).
		MaxLen(FieldNewPassword, input.NewPassword, PasswordMaxLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, nil, "Password updated. Please log in again")
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, PasswordMinLength).
		MaxLen(FieldNewPassword, input.NewPassword, PasswordMaxLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.ChangePassword(
		request.Context(), identity.ID, identity.SessionID,
		input.CurrentPassword, input.NewPassword,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, nil, "Password changed")
}

// # Admin Handlers

type setRoleInput struct {
	Role string `json:"role"`
}

func (handler *Handler) setUserRole(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	validator := &validate.Validator{}
	if err := validator.UUID("userID", userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setRoleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetUserRole(request.Context(), userID, sec.UserRole(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Cookie Helpers

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, session *AuthSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshExpiresAt,
		HttpOnly: true,
		Secure:   handler.cookies.Secure,
		SameSite: handler.cookies.SameSite,
	})
}

func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.cookies.Secure,
		SameSite: handler.cookies.SameSite,
	})
}

func readRefreshCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// clientMeta extracts audit metadata from the request. RemoteAddr has already
// been rewritten by the RealIP middleware.
func clientMeta(request *http.Request) ClientMeta {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		host = request.RemoteAddr
	}
	return ClientMeta{
		IPAddress: host,
		UserAgent: request.UserAgent(),
	}
}
