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

// PlacementHandler handles placement registry routes.
type PlacementHandler struct {
	placements *service.PlacementService
}

func NewPlacementHandler(placements *service.PlacementService) *PlacementHandler {
	return &PlacementHandler{placements: placements}
}

type placementRequest struct {
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	SubCategory models.SubCategory `json:"sub_category"`
	Description string             `json:"description"`
	Color       string             `json:"color"`
	IsActive    *bool              `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
}

func (req *placementRequest) toInput() service.PlacementInput {
	in := service.PlacementInput{
		Name:        req.Name,
		Slug:        strings.TrimSpace(req.Slug),
		SubCategory: req.SubCategory,
		Description: req.Description,
		Color:       req.Color,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(req.Name)
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	return in
}

func (req *placementRequest) validate() error {
	var errs fieldErrors
	errs.require(req.Name, "name")
	errs.maxLen(req.Name, "name", 100)
	errs.require(string(req.SubCategory), "sub_category")
	errs.maxLen(req.Description, "description", 500)
	return errs.err()
}

// Create inserts a new placement. Editors and admins only.
func (h *PlacementHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionManageTaxonomy, nil); err != nil {
		respondError(w, r, err)
		return
	}

	var req placementRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	placement, err := h.placements.Create(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, 0, placement)
}

// List returns all placements; ?active=true restricts to active ones.
func (h *PlacementHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	items, err := h.placements.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, items)
}

// ListBySubCategory returns the active placements of one page region,
// ordered for rendering.
func (h *PlacementHandler) ListBySubCategory(w http.ResponseWriter, r *http.Request) {
	sub := models.SubCategory(chi.URLParam(r, "subCategory"))
	items, err := h.placements.ListBySubCategory(r.Context(), sub)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, items)
}

// Get returns one placement by ID.
func (h *PlacementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	placement, err := h.placements.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, placement)
}

// GetBySlug returns one placement by slug.
func (h *PlacementHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	placementSlug := chi.URLParam(r, "slug")
	if placementSlug == "" {
		respondError(w, r, models.NewValidationError("slug is required"))
		return
	}

	placement, err := h.placements.GetBySlug(r.Context(), placementSlug)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, placement)
}

// Update modifies a placement. Editors and admins only.
func (h *PlacementHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req placementRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, r, err)
		return
	}

	placement, err := h.placements.Update(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, 0, placement)
}

// Delete removes a placement. Admin only, and blocked while posts still
// reference it.
func (h *PlacementHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.placements.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, 0, nil)
}
