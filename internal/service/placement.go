package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

// PlacementService is the placement registry. It mirrors the category
// registry, including the referential delete guard, and adds the
// sub-category view.
type PlacementService struct {
	placements PlacementStore
}

// NewPlacementService creates a registry over the given store.
func NewPlacementService(placements PlacementStore) *PlacementService {
	return &PlacementService{placements: placements}
}

// PlacementInput carries the writable placement fields.
type PlacementInput struct {
	Name        string
	Slug        string
	SubCategory models.SubCategory
	Description string
	Color       string
	IsActive    bool
	SortOrder   int
}

// Create inserts a new placement. Slug collisions and unknown
// sub-categories are rejected.
func (s *PlacementService) Create(ctx context.Context, in PlacementInput) (*models.Placement, error) {
	if !models.ValidSubCategory(in.SubCategory) {
		return nil, models.NewValidationError("unknown placement sub-category")
	}

	exists, err := s.placements.SlugExists(ctx, in.Slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if exists {
		return nil, models.NewConflictError("placement with this slug already exists")
	}

	if in.Color == "" {
		in.Color = "#3498db"
	}
	created, err := s.placements.Create(ctx, &models.Placement{
		Name:        in.Name,
		Slug:        in.Slug,
		SubCategory: in.SubCategory,
		Description: in.Description,
		Color:       in.Color,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		return nil, models.NewConflictError("placement with this slug already exists")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

// List returns all placements, or only the active ones.
func (s *PlacementService) List(ctx context.Context, activeOnly bool) ([]models.Placement, error) {
	items, err := s.placements.List(ctx, activeOnly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if items == nil {
		items = []models.Placement{}
	}
	return items, nil
}

// ListBySubCategory returns the active placements of one page region.
func (s *PlacementService) ListBySubCategory(ctx context.Context, sub models.SubCategory) ([]models.Placement, error) {
	if !models.ValidSubCategory(sub) {
		return nil, models.NewValidationError("unknown placement sub-category")
	}
	items, err := s.placements.ListBySubCategory(ctx, sub)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if items == nil {
		items = []models.Placement{}
	}
	return items, nil
}

// GetByID returns one placement.
func (s *PlacementService) GetByID(ctx context.Context, id uuid.UUID) (*models.Placement, error) {
	p, err := s.placements.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if p == nil {
		return nil, models.NewNotFoundError("placement", id)
	}
	return p, nil
}

// GetBySlug returns one placement by slug.
func (s *PlacementService) GetBySlug(ctx context.Context, slug string) (*models.Placement, error) {
	p, err := s.placements.FindBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if p == nil {
		return nil, models.NewNotFoundError("placement", slug)
	}
	return p, nil
}

// Update modifies an existing placement's writable fields.
func (s *PlacementService) Update(ctx context.Context, id uuid.UUID, in PlacementInput) (*models.Placement, error) {
	p, err := s.placements.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if p == nil {
		return nil, models.NewNotFoundError("placement", id)
	}

	if !models.ValidSubCategory(in.SubCategory) {
		return nil, models.NewValidationError("unknown placement sub-category")
	}
	if in.Slug != p.Slug {
		exists, err := s.placements.SlugExists(ctx, in.Slug)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if exists {
			return nil, models.NewConflictError("placement with this slug already exists")
		}
	}

	p.Name = in.Name
	p.Slug = in.Slug
	p.SubCategory = in.SubCategory
	p.Description = in.Description
	if in.Color != "" {
		p.Color = in.Color
	}
	p.IsActive = in.IsActive
	p.SortOrder = in.SortOrder

	if err := s.placements.Update(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicateSlug) {
			return nil, models.NewConflictError("placement with this slug already exists")
		}
		return nil, models.NewInternalError(err)
	}
	return p, nil
}

// Delete removes a placement. The same referential guard as categories
// applies: a placement referenced by posts cannot be deleted.
func (s *PlacementService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.placements.FindByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if p == nil {
		return models.NewNotFoundError("placement", id)
	}
	if p.PostCount > 0 {
		return models.NewConflictError("placement still has posts assigned")
	}

	deleted, err := s.placements.Delete(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !deleted {
		return models.NewNotFoundError("placement", id)
	}
	return nil
}
