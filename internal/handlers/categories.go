// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pressadmin/internal/auth"
	"pressadmin/internal/middleware"
	"pressadmin/internal/models"
	"pressadmin/internal/service"
	"pressadmin/internal/slug"
)

// CategoryHandler handles category registry routes.
type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"is_active"`
}

func (req *categoryRequest) toInput() service.CategoryInput {
	in := service.CategoryInput{
		Name:        req.Name,
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
		Color:       req.Color,
		IsActive:    true,
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(req.Name)
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	return in
}

func (req *categoryRequest) validate() error {
	var errs fieldErrors
	errs.require(req.Name, "name")
	errs.maxLen(req.Name, "name", 100)
	errs.maxLen(req.Description, "description", 500)
	return errs.err()
}

// Create inserts a new category. Editors and admins only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageTaxonomy, nil); err != nil {
		respondError(w, r, err)
		return
	}

	var req categoryRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.Create(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, 0, category)
}

// List returns all categories; ?active=true restricts to active ones.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := h.categories.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, items)
}

// Get returns one category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, category)
}

// GetBySlug returns one category by slug.
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "slug")
	if categorySlug == "" {
		respondError(w, r, models.NewValidationError("slug is required"))
		return
	}

	category, err := h.categories.GetBySlug(r.Context(), categorySlug)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, category)
}

// Update modifies a category. Editors and admins only.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageTaxonomy, nil); err != nil {
		respondError(w, r, err)
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req categoryRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.categories.Update(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, 0, category)
}

// Delete removes a category. Admin only, and blocked while posts still
// reference it.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionDeleteTaxonomy, nil); err != nil {
		respondError(w, r, err)
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, 0, nil)
}
