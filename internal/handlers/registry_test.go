// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"pressadmin/internal/models"
	"pressadmin/internal/service"
)

func TestCreateCategory_RolesEnforced(t *testing.T) {
	h := newHarness(t)
	body := `{"name":"News"}`

	rec := h.do(t, http.MethodPost, "/categories", body, principalOf(models.RoleAuthor))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("author: code = %d", rec.Code)
	}

	rec = h.do(t, http.MethodPost, "/categories", body, principalOf(models.RoleEditor))
	if rec.Code != http.StatusCreated {
		t.Fatalf("editor: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	var category models.Category
	decodeEnvelope(t, rec, &category)
	if category.Slug != "news" {
		t.Errorf("slug = %q, want generated from name", category.Slug)
	}
	if !category.IsActive {
		t.Error("new category should default to active")
	}
}

func TestDeleteCategory_AdminOnlyAndGuarded(t *testing.T) {
	h := newHarness(t)
	path := "/categories/" + h.category.ID.String()

	// Editors may manage but not delete taxonomy.
	rec := h.do(t, http.MethodDelete, path, "", principalOf(models.RoleEditor))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("editor: code = %d", rec.Code)
	}

	// A referenced category cannot be deleted even by an admin.
	h.seedPost(t, uuid.New(), "anchor")
	rec = h.do(t, http.MethodDelete, path, "", principalOf(models.RoleAdmin))
	if rec.Code != http.StatusConflict {
		t.Fatalf("referenced delete: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != models.CodeConflict {
		t.Errorf("error code = %q", code)
	}
}

func TestCreatePlacement_UnknownSubCategoryRejected(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/placements",
		`{"name":"Banner","sub_category":"banner"}`, principalOf(models.RoleAdmin))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestListPlacementsBySubCategory(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/placements/subcategory/header", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var items []models.Placement
	decodeEnvelope(t, rec, &items)
	if len(items) != 1 || items[0].Name != "Header" {
		t.Errorf("items = %+v", items)
	}

	rec = h.do(t, http.MethodGet, "/placements/subcategory/banner", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown sub-category: code = %d", rec.Code)
	}
}

func TestReconcileCounts_AdminOnly(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/admin/reconcile-counts", "", principalOf(models.RoleEditor))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("editor: code = %d", rec.Code)
	}

	// Inject drift, then reconcile as admin.
	h.seedPost(t, uuid.New(), "drifted")
	h.categories.SetPostCount(context.Background(), h.category.ID, 9)

	rec = h.do(t, http.MethodPost, "/admin/reconcile-counts", "", principalOf(models.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: code = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report service.ReconcileReport
	decodeEnvelope(t, rec, &report)
	if report.CategoriesRepaired != 1 {
		t.Errorf("report = %+v", report)
	}

	c, _ := h.categories.FindByID(context.Background(), h.category.ID)
	if c.PostCount != 1 {
		t.Errorf("count after reconcile = %d, want 1", c.PostCount)
	}
}
