// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pressadmin/internal/metrics"
	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PostService is the post lifecycle engine. It owns creation, partial
// updates, deletion, and view counting, and keeps the category and
// placement post counters synchronized with every mutation.
//
// Count synchronization is deliberately best-effort: the post write is
// durable before any counter delta is issued, and a failed delta is
// logged and counted but never turns a successful mutation into a
// request failure. ReconcileCounts repairs any resulting drift from
// source truth.
type PostService struct {
	posts      PostStore
	categories CategoryStore
	placements PlacementStore
}

// NewPostService creates a lifecycle engine over the given stores.
func NewPostService(posts PostStore, categories CategoryStore, placements PlacementStore) *PostService {
	return &PostService{posts: posts, categories: categories, placements: placements}
}

// CreatePostInput carries the fields for a new post. AuthorID is
// resolved by the handler: the authenticated principal, unless the
// role permits attributing another author.
type CreatePostInput struct {
	Title           string
	Slug            string
	Excerpt         *string
	Content         string
	Status          models.PostStatus
	AuthorID        uuid.UUID
	CategoryID      uuid.UUID
	PlacementID     uuid.UUID
	Tags            []string
	Image           *string
	MetaTitle       *string
	MetaDescription *string
	OrderNo         int
	PublishedAt     *time.Time
	ExpiredAt       *time.Time
}

// ListQuery is the admin list request: pagination plus the conjunctive
// filter of the query builder.
type ListQuery struct {
	Page     int
	PageSize int
	Status   *models.PostStatus
	AuthorID *uuid.UUID
	Search   string
	Tags     []string
}

func (q *ListQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// Create validates references, inserts the post, and increments both
// registry counters. The post defaults to draft; a creation directly
// into published stamps publishedAt unless one was supplied.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	exists, err := s.posts.SlugExists(ctx, in.Slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if exists {
		return nil, models.NewConflictError("post with this slug already exists")
	}

	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if category == nil {
		return nil, models.NewValidationError("category does not exist")
	}

	placement, err := s.placements.FindByID(ctx, in.PlacementID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if placement == nil {
		return nil, models.NewValidationError("placement does not exist")
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	publishedAt := in.PublishedAt
	if status == models.PostStatusPublished && publishedAt == nil {
		now := time.Now()
		publishedAt = &now
	}

	post := &models.Post{
		Title:           in.Title,
		Slug:            in.Slug,
		Excerpt:         in.Excerpt,
		Content:         in.Content,
		Status:          status,
		AuthorID:        in.AuthorID,
		CategoryID:      in.CategoryID,
		PlacementID:     in.PlacementID,
		Tags:            in.Tags,
		Image:           in.Image,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		OrderNo:         in.OrderNo,
		PublishedAt:     publishedAt,
		ExpiredAt:       in.ExpiredAt,
	}

	created, err := s.posts.Create(ctx, post)
	if errors.Is(err, store.ErrDuplicateSlug) {
		return nil, models.NewConflictError("post with this slug already exists")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// The post row is durable from here on; counter deltas are
	// best-effort (see type comment).
	s.incrementCategory(ctx, in.CategoryID)
	s.incrementPlacement(ctx, in.PlacementID)

	return created, nil
}

// Update applies a field-level patch. A transition into published stamps
// publishedAt when neither the patch nor the stored row has one; a
// publishedAt once set is never cleared. Category/placement changes are
// diffed against the pre-update snapshot and produce paired
// decrement/increment deltas.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, patch store.PostPatch) (*models.Post, error) {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing == nil {
		return nil, models.NewNotFoundError("post", id)
	}

	if patch.Slug != nil && *patch.Slug != existing.Slug {
		exists, err := s.posts.SlugExists(ctx, *patch.Slug)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if exists {
			return nil, models.NewConflictError("post with this slug already exists")
		}
	}

	categoryChanged := patch.CategoryID != nil && *patch.CategoryID != existing.CategoryID
	if categoryChanged {
		category, err := s.categories.FindByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if category == nil {
			return nil, models.NewValidationError("category does not exist")
		}
	}

	placementChanged := patch.PlacementID != nil && *patch.PlacementID != existing.PlacementID
	if placementChanged {
		placement, err := s.placements.FindByID(ctx, *patch.PlacementID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if placement == nil {
			return nil, models.NewValidationError("placement does not exist")
		}
	}

	if patch.Status != nil && *patch.Status == models.PostStatusPublished &&
		patch.PublishedAt == nil && existing.PublishedAt == nil {
		now := time.Now()
		patch.PublishedAt = &now
	}

	updated, err := s.posts.Update(ctx, id, patch)
	if errors.Is(err, store.ErrDuplicateSlug) {
		return nil, models.NewConflictError("post with this slug already exists")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if updated == nil {
		return nil, models.NewNotFoundError("post", id)
	}

	if categoryChanged {
		s.decrementCategory(ctx, existing.CategoryID)
		s.incrementCategory(ctx, *patch.CategoryID)
	}
	if placementChanged {
		s.decrementPlacement(ctx, existing.PlacementID)
		s.incrementPlacement(ctx, *patch.PlacementID)
	}

	return updated, nil
}

// Delete removes the post, then decrements both registry counters.
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if existing == nil {
		return models.NewNotFoundError("post", id)
	}

	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !deleted {
		return models.NewNotFoundError("post", id)
	}

	s.decrementCategory(ctx, existing.CategoryID)
	s.decrementPlacement(ctx, existing.PlacementID)

	return nil
}

// GetByID returns a post with resolved references.
func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, nil
}

// GetBySlug returns a post by its slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", slug)
	}
	return post, nil
}

// IncrementViewCount adds one view. Each call adds exactly one; there is
// no per-viewer deduplication.
func (s *PostService) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.IncrementViewCount(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, nil
}

// List returns one page of posts matching the admin filter, newest first.
func (s *PostService) List(ctx context.Context, q ListQuery) (models.PostPage, error) {
	q.normalize()
	filter := store.PostFilter{
		Status:   q.Status,
		AuthorID: q.AuthorID,
		Search:   q.Search,
		Tags:     q.Tags,
	}
	return s.list(ctx, filter, q.Page, q.PageSize)
}

// ListByAuthor returns one page of the given author's posts.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID, q ListQuery) (models.PostPage, error) {
	q.normalize()
	filter := store.PostFilter{
		AuthorID: &authorID,
		Status:   q.Status,
		Search:   q.Search,
		Tags:     q.Tags,
	}
	return s.list(ctx, filter, q.Page, q.PageSize)
}

// ListByTag returns one page of posts carrying the given tag.
func (s *PostService) ListByTag(ctx context.Context, tag string, q ListQuery) (models.PostPage, error) {
	q.normalize()
	filter := store.PostFilter{
		Tags:     []string{tag},
		Status:   q.Status,
		AuthorID: q.AuthorID,
		Search:   q.Search,
	}
	return s.list(ctx, filter, q.Page, q.PageSize)
}

// ListFiltered is the public view: published posts whose expiry is
// absent or in the future, in curated order. Category and placement are
// looked up by human-readable name; an unknown name yields an empty
// page, not an error.
func (s *PostService) ListFiltered(ctx context.Context, categoryName, placementName string, page, pageSize int) (models.PostPage, error) {
	q := ListQuery{Page: page, PageSize: pageSize}
	q.normalize()

	filter := store.PostFilter{Live: true, Sort: store.SortCurated}

	if categoryName != "" {
		category, err := s.categories.FindByName(ctx, categoryName)
		if err != nil {
			return models.PostPage{}, models.NewInternalError(err)
		}
		if category == nil {
			return models.NewPostPage(nil, 0, q.Page, q.PageSize), nil
		}
		filter.CategoryID = &category.ID
	}

	if placementName != "" {
		placement, err := s.placements.FindByName(ctx, placementName)
		if err != nil {
			return models.PostPage{}, models.NewInternalError(err)
		}
		if placement == nil {
			return models.NewPostPage(nil, 0, q.Page, q.PageSize), nil
		}
		filter.PlacementID = &placement.ID
	}

	return s.list(ctx, filter, q.Page, q.PageSize)
}

func (s *PostService) list(ctx context.Context, filter store.PostFilter, page, pageSize int) (models.PostPage, error) {
	items, total, err := s.posts.List(ctx, filter, page, pageSize)
	if err != nil {
		return models.PostPage{}, models.NewInternalError(err)
	}
	return models.NewPostPage(items, total, page, pageSize), nil
}

// ReconcileReport summarizes a count reconciliation run.
type ReconcileReport struct {
	CategoriesRepaired int `json:"categories_repaired"`
	PlacementsRepaired int `json:"placements_repaired"`
}

// ReconcileCounts recomputes every category and placement post count
// from source truth and repairs any counter that has drifted.
func (s *PostService) ReconcileCounts(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	byCategory, err := s.posts.CountByCategory(ctx)
	if err != nil {
		return report, models.NewInternalError(err)
	}
	categories, err := s.categories.List(ctx, false)
	if err != nil {
		return report, models.NewInternalError(err)
	}
	for _, c := range categories {
		actual := byCategory[c.ID]
		if c.PostCount == actual {
			continue
		}
		slog.Warn("category post count drift",
			"category", c.ID, "stored", c.PostCount, "actual", actual)
		if err := s.categories.SetPostCount(ctx, c.ID, actual); err != nil {
			return report, models.NewInternalError(err)
		}
		metrics.CountReconciled.WithLabelValues("category").Inc()
		report.CategoriesRepaired++
	}

	byPlacement, err := s.posts.CountByPlacement(ctx)
	if err != nil {
		return report, models.NewInternalError(err)
	}
	placements, err := s.placements.List(ctx, false)
	if err != nil {
		return report, models.NewInternalError(err)
	}
	for _, p := range placements {
		actual := byPlacement[p.ID]
		if p.PostCount == actual {
			continue
		}
		slog.Warn("placement post count drift",
			"placement", p.ID, "stored", p.PostCount, "actual", actual)
		if err := s.placements.SetPostCount(ctx, p.ID, actual); err != nil {
			return report, models.NewInternalError(err)
		}
		metrics.CountReconciled.WithLabelValues("placement").Inc()
		report.PlacementsRepaired++
	}

	return report, nil
}

// Counter delta helpers. Failures are logged and counted, never
// propagated: the post mutation already succeeded.

func (s *PostService) incrementCategory(ctx context.Context, id uuid.UUID) {
	if err := s.categories.IncrementPostCount(ctx, id); err != nil {
		slog.Error("category count increment failed", "category", id, "error", err)
		metrics.CountSyncFailures.WithLabelValues("category", "increment").Inc()
	}
}

func (s *PostService) decrementCategory(ctx context.Context, id uuid.UUID) {
	applied, err := s.categories.DecrementPostCount(ctx, id)
	if err != nil {
		slog.Error("category count decrement failed", "category", id, "error", err)
		metrics.CountSyncFailures.WithLabelValues("category", "decrement").Inc()
		return
	}
	if !applied {
		slog.Warn("category count decrement clamped at zero", "category", id)
		metrics.CountClampedDecrements.WithLabelValues("category").Inc()
	}
}

func (s *PostService) incrementPlacement(ctx context.Context, id uuid.UUID) {
	if err := s.placements.IncrementPostCount(ctx, id); err != nil {
		slog.Error("placement count increment failed", "placement", id, "error", err)
		metrics.CountSyncFailures.WithLabelValues("placement", "increment").Inc()
	}
}

func (s *PostService) decrementPlacement(ctx context.Context, id uuid.UUID) {
	applied, err := s.placements.DecrementPostCount(ctx, id)
	if err != nil {
		slog.Error("placement count decrement failed", "placement", id, "error", err)
		metrics.CountSyncFailures.WithLabelValues("placement", "decrement").Inc()
		return
	}
	if !applied {
		slog.Warn("placement count decrement clamped at zero", "placement", id)
		metrics.CountClampedDecrements.WithLabelValues("placement").Inc()
	}
}
