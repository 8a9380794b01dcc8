// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"pressadmin/internal/auth"
	"pressadmin/internal/middleware"
	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

// UserHandler handles user management routes. Creation, deletion, role
// and activation changes are admin-only, and an admin can never target
// their own account with them.
type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageUsers, nil); err != nil {
		respondError(w, r, err)
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respond(w, r, http.StatusOK, users)
}

// Get returns one user. Admins may fetch anyone; everyone else only
// their own record.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := auth.Authorize(principal, auth.ActionEditOwnProfile, &id); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if user == nil {
		respondError(w, r, models.NewNotFoundError("user", id))
		return
	}
	respond(w, r, http.StatusOK, user)
}

type createUserRequest struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
}

// Create adds a user with an explicit role. Admin only.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageUsers, nil); err != nil {
		respondError(w, r, err)
		return
	}

	var req createUserRequest
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
	if !models.ValidRole(req.Role) {
		errs = append(errs, "role must be admin, editor, author, or viewer")
	}
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

	user, err := h.users.Create(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	respond(w, r, 0, user)
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio"`
}

// UpdateProfile modifies profile fields. Users edit their own profile;
// admins may edit anyone's.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := auth.Authorize(principal, auth.ActionEditOwnProfile, &id); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if user == nil {
		respondError(w, r, models.NewNotFoundError("user", id))
		return
	}

	var req updateProfileRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	var errs fieldErrors
	errs.require(user.FirstName, "first_name")
	errs.require(user.LastName, "last_name")
	if err := errs.err(); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.UpdateProfile(r.Context(), user); err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	respond(w, r, 0, user)
}

type setRoleRequest struct {
	Role models.Role `json:"role"`
}

// SetRole changes a user's role. Admin only, never their own.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageUsers, &id); err != nil {
		respondError(w, r, err)
		return
	}

	var req setRoleRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if !models.ValidRole(req.Role) {
		respondError(w, r, models.NewValidationError("role must be admin, editor, author, or viewer"))
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if user == nil {
		respondError(w, r, models.NewNotFoundError("user", id))
		return
	}

	if err := h.users.SetRole(r.Context(), id, req.Role); err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	user.Role = req.Role
	respond(w, r, 0, user)
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetActive enables or disables an account. Admin only, never their own.
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageUsers, &id); err != nil {
		respondError(w, r, err)
		return
	}

	var req setActiveRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if user == nil {
		respondError(w, r, models.NewNotFoundError("user", id))
		return
	}

	if err := h.users.SetActive(r.Context(), id, req.IsActive); err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	user.IsActive = req.IsActive
	respond(w, r, 0, user)
}

// Delete removes a user. Admin only, never their own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageUsers, &id); err != nil {
		respondError(w, r, err)
		return
	}

	deleted, err := h.users.Delete(r.Context(), id)
	if err != nil {
		respondError(w, r, models.NewInternalError(err))
		return
	}
	if !deleted {
		respondError(w, r, models.NewNotFoundError("user", id))
		return
	}
	respond(w, r, 0, nil)
}
