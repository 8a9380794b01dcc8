// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

// CategoryService is the category registry: CRUD plus the referential
// delete guard. A category referenced by posts cannot be deleted.
type CategoryService struct {
	categories CategoryStore
}

// NewCategoryService creates a registry over the given store.
func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Color       string
	IsActive    bool
}

// Create inserts a new category. Slug collisions are rejected.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	exists, err := s.categories.SlugExists(ctx, in.Slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if exists {
		return nil, models.NewConflictError("category with this slug already exists")
	}

	if in.Color == "" {
		in.Color = "#000000"
	}
	created, err := s.categories.Create(ctx, &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Color:       in.Color,
		IsActive:    in.IsActive,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		return nil, models.NewConflictError("category with this slug already exists")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

// List returns all categories, or only the active ones.
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	items, err := s.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if items == nil {
		items = []models.Category{}
	}
	return items, nil
}

// GetByID returns one category.
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if c == nil {
		return nil, models.NewNotFoundError("category", id)
	}
	return c, nil
}

// GetBySlug returns one category by slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if c == nil {
		return nil, models.NewNotFoundError("category", slug)
	}
	return c, nil
}

// Update modifies an existing category's writable fields.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if c == nil {
		return nil, models.NewNotFoundError("category", id)
	}

	if in.Slug != c.Slug {
		exists, err := s.categories.SlugExists(ctx, in.Slug)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if exists {
			return nil, models.NewConflictError("category with this slug already exists")
		}
	}

	c.Name = in.Name
	c.Slug = in.Slug
	c.Description = in.Description
	if in.Color != "" {
		c.Color = in.Color
	}
	c.IsActive = in.IsActive

	if err := s.categories.Update(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			return nil, models.NewConflictError("category with this slug already exists")
		}
		return nil, models.NewInternalError(err)
	}
	return c, nil
}

// Delete removes a category. Blocked while posts still reference it, so
// no post ends up pointing at a missing category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if c == nil {
		return models.NewNotFoundError("category", id)
	}
	if c.PostCount > 0 {
		return models.NewConflictError("category still has posts assigned")
	}

	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !deleted {
		return models.NewNotFoundError("category", id)
	}
	return nil
}
