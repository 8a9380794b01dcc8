// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"pressadmin/internal/auth"
	"pressadmin/internal/middleware"
	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

// AuthHandler handles login, registration, and the current-user lookup.
type AuthHandler struct {
	users  *store.UserStore
	tokens *auth.Tokens
}

func NewAuthHandler(users *store.UserStore, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies credentials and issues a bearer token. Unknown email
// and wrong password produce the same response so accounts cannot be
// enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var errs fieldErrors
	errs.require(req.Email, "email")
	errs.require(req.Password, "password")
	if err := errs.err(); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		respondError(w, r, models.NewAuthenticationError("invalid email or password"))
		return
	}
	if !user.IsActive {
		respondError(w, r, models.NewAuthorizationError("account is disabled"))
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}

	if err := h.users.TouchLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("touch last login failed", "user", user.ID, "error", err)
	}

	respond(w, r, http.StatusOK, loginResponse{Token: token, User: user})
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register self-serves a new account. Self-registered accounts start as
// viewers; an admin promotes them afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var errs fieldErrors
	errs.require(req.Email, "email")
	errs.email(req.Email, "email")
	errs.require(req.Password, "password")
	if len(req.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	errs.require(req.FirstName, "first_name")
	errs.require(req.LastName, "last_name")
	if err := errs.err(); err != nil {
		respondError(w, r, err)
		return
	}

	existing, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if existing != nil {
		respondError(w, r, models.NewConflictError("email already registered"))
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, models.RoleViewer)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}

	respond(w, r, 0, loginResponse{Token: token, User: user})
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}

	user, err := h.users.FindByID(r.Context(), principal.ID)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if user == nil {
		respondError(w, r, models.NewNotFoundError("user", principal.ID))
		return
	}

	respond(w, r, http.StatusOK, user)
}
