// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressadmin/internal/auth"
	"pressadmin/internal/cache"
	"pressadmin/internal/middleware"
	"pressadmin/internal/models"
	"pressadmin/internal/service"
	"pressadmin/internal/slug"
	"pressadmin/internal/store"
)

// PostHandler handles all post routes. Public reads go through the
// Valkey cache; every mutation invalidates it.
type PostHandler struct {
	posts *service.PostService
	cache *cache.PostCache
}

func NewPostHandler(posts *service.PostService, postCache *cache.PostCache) *PostHandler {
	return &PostHandler{posts: posts, cache: postCache}
}

type createPostRequest struct {
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Excerpt         *string            `json:"excerpt"`
	Content         string             `json:"content"`
	Status          *models.PostStatus `json:"status"`
	AuthorID        *uuid.UUID         `json:"author_id"`
	CategoryID      uuid.UUID          `json:"category_id"`
	PlacementID     uuid.UUID          `json:"placement_id"`
	Tags            []string           `json:"tags"`
	Image           *string            `json:"image"`
	MetaTitle       *string            `json:"meta_title"`
	MetaDescription *string            `json:"meta_description"`
	OrderNo         int                `json:"order_no"`
	PublishedAt     *time.Time         `json:"published_at"`
	ExpiredAt       *time.Time         `json:"expired_at"`
}

// Create inserts a new post. The slug is derived from the title when not
// supplied. The author defaults to the caller; attributing another
// author requires the editor or admin role.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionCreatePost, nil); err != nil {
		respondError(w, r, err)
		return
	}

	var req createPostRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var errs fieldErrors
	errs.require(req.Title, "title")
	errs.maxLen(req.Title, "title", 255)
	errs.require(req.Content, "content")
	if req.CategoryID == uuid.Nil {
		errs = append(errs, "category_id is required")
	}
	if req.PlacementID == uuid.Nil {
		errs = append(errs, "placement_id is required")
	}
	if req.Status != nil && !models.ValidPostStatus(*req.Status) {
		errs = append(errs, "status must be draft, published, or archived")
	}
	if err := errs.err(); err != nil {
		respondError(w, r, err)
		return
	}

	authorID := principal.ID
	if req.AuthorID != nil && *req.AuthorID != principal.ID {
		if err := auth.Authorize(principal, auth.ActionAttributePost, nil); err != nil {
			respondError(w, r, err)
			return
		}
		authorID = *req.AuthorID
	}

	postSlug := strings.TrimSpace(req.Slug)
	if postSlug == "" {
		postSlug = slug.Generate(req.Title)
	}

	in := service.CreatePostInput{
		Title:           req.Title,
		Slug:            postSlug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		AuthorID:        authorID,
		CategoryID:      req.CategoryID,
		PlacementID:     req.PlacementID,
		Tags:            req.Tags,
		Image:           req.Image,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		OrderNo:         req.OrderNo,
		PublishedAt:     req.PublishedAt,
		ExpiredAt:       req.ExpiredAt,
	}
	if req.Status != nil {
		in.Status = *req.Status
	}

	post, err := h.posts.Create(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.InvalidateAll(r.Context())
	respond(w, r, 0, post)
}

type updatePostRequest struct {
	Title           *string            `json:"title"`
	Slug            *string            `json:"slug"`
	Excerpt         *string            `json:"excerpt"`
	Content         *string            `json:"content"`
	Status          *models.PostStatus `json:"status"`
	CategoryID      *uuid.UUID         `json:"category_id"`
	PlacementID     *uuid.UUID         `json:"placement_id"`
	Tags            *[]string          `json:"tags"`
	Image           *string            `json:"image"`
	MetaTitle       *string            `json:"meta_title"`
	MetaDescription *string            `json:"meta_description"`
	OrderNo         *int               `json:"order_no"`
	PublishedAt     *time.Time         `json:"published_at"`
	ExpiredAt       *time.Time         `json:"expired_at"`
}

// Update applies a partial update. Authors may only touch their own
// posts; editors and admins may touch any.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	existing, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := auth.Authorize(principal, auth.ActionEditPost, &existing.AuthorID); err != nil {
		respondError(w, r, err)
		return
	}

	var req updatePostRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	var errs fieldErrors
	if req.Title != nil {
		errs.require(*req.Title, "title")
		errs.maxLen(*req.Title, "title", 255)
	}
	if req.Content != nil {
		errs.require(*req.Content, "content")
	}
	if req.Status != nil && !models.ValidPostStatus(*req.Status) {
		errs = append(errs, "status must be draft, published, or archived")
	}
	if err := errs.err(); err != nil {
		respondError(w, r, err)
		return
	}

	patch := store.PostPatch{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Status:          req.Status,
		CategoryID:      req.CategoryID,
		PlacementID:     req.PlacementID,
		Tags:            req.Tags,
		Image:           req.Image,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		OrderNo:         req.OrderNo,
		PublishedAt:     req.PublishedAt,
		ExpiredAt:       req.ExpiredAt,
	}

	post, err := h.posts.Update(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.InvalidateAll(r.Context())
	respond(w, r, 0, post)
}

// Delete removes a post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		respondError(w, r, models.NewAuthenticationError("authentication required"))
		return
	}
	if err := auth.Authorize(principal, auth.ActionDeletePost, nil); err != nil {
		respondError(w, r, err)
		return
	}

	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.InvalidateAll(r.Context())
	respond(w, r, 0, nil)
}

// listQuery parses the shared pagination and filter query parameters.
// "limit" and "author" are the documented names; "page_size" and
// "author_id" stay accepted as aliases.
func listQuery(r *http.Request) service.ListQuery {
	q := service.ListQuery{
		Page:     queryInt(r, 1, "page"),
		PageSize: queryInt(r, 0, "limit", "page_size"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.PostStatus(raw)
		if models.ValidPostStatus(status) {
			q.Status = &status
		}
	}
	if raw := queryParam(r, "author", "author_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			q.AuthorID = &id
		}
	}
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				q.Tags = append(q.Tags, tag)
			}
		}
	}
	return q
}

// List returns one page of posts, newest first, with optional status,
// author, tag, and search filters.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.posts.List(r.Context(), listQuery(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

// ListFiltered is the public site view. Only published, unexpired posts
// appear, in curated order; category and placement are matched by name
// and an unknown name yields an empty page.
func (h *PostHandler) ListFiltered(w http.ResponseWriter, r *http.Request) {
	categoryName := queryParam(r, "categoryName", "category")
	placementName := queryParam(r, "placementName", "placement")
	pageNo := queryInt(r, 1, "page")
	pageSize := queryInt(r, 0, "limit", "page_size")

	key := cache.ListKey(categoryName, placementName, pageNo, pageSize)
	if cached := h.cache.GetList(r.Context(), key); cached != nil {
		respond(w, r, http.StatusOK, cached)
		return
	}

	page, err := h.posts.ListFiltered(r.Context(), categoryName, placementName, pageNo, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.SetList(r.Context(), key, &page)
	respond(w, r, http.StatusOK, page)
}

// ListByAuthor returns one page of the given author's posts.
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := urlUUID(r, "authorId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.posts.ListByAuthor(r.Context(), authorID, listQuery(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

// ListByTag returns one page of posts carrying the given tag.
func (h *PostHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if tag == "" {
		respondError(w, r, models.NewValidationError("tag is required"))
		return
	}

	page, err := h.posts.ListByTag(r.Context(), tag, listQuery(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, page)
}

// Get returns one post by ID.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, post)
}

// GetBySlug returns one post by slug, served from cache when possible.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	postSlug := chi.URLParam(r, "slug")
	if postSlug == "" {
		respondError(w, r, models.NewValidationError("slug is required"))
		return
	}

	if cached := h.cache.GetPost(r.Context(), postSlug); cached != nil {
		respond(w, r, http.StatusOK, cached)
		return
	}

	post, err := h.posts.GetBySlug(r.Context(), postSlug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.cache.SetPost(r.Context(), post)
	respond(w, r, http.StatusOK, post)
}

// IncrementView adds one view to the post. Unauthenticated on purpose:
// the public site reports views.
func (h *PostHandler) IncrementView(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.posts.IncrementViewCount(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, post)
}
