package handlers

import (
	"net/http"

	"pressadmin/internal/auth"
	"pressadmin/internal/middleware"
	"pressadmin/internal/models"
	"pressadmin/internal/service"
)

// AdminHandler handles maintenance operations.
type AdminHandler struct {
	posts *service.PostService
}

func NewAdminHandler(posts *service.PostService) *AdminHandler {
	return &AdminHandler{posts: posts}
}

// ReconcileCounts recomputes category and placement post counts from
// source truth and repairs any drift. Admin only.
func (h *AdminHandler) ReconcileCounts(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionReconcileCounts, nil); err != nil {
		respondError(w, r, err)
		return
	}

	report, err := h.posts.ReconcileCounts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, report)
}
