// Package service implements the domain logic on top of narrow store
// interfaces: the post lifecycle engine with its count synchronization,
// the category and placement registries with their delete guards, and
// count reconciliation. Handlers talk to services; services talk to
// stores.
package service

import (
	"context"

	"github.com/google/uuid"

	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

// PostStore is the persistence contract the lifecycle engine depends on.
// *store.PostStore implements it; tests substitute an in-memory fake.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, f store.PostFilter, page, pageSize int) ([]models.Post, int, error)
	Update(ctx context.Context, id uuid.UUID, patch store.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Post, error)
	CountByCategory(ctx context.Context) (map[uuid.UUID]int, error)
	CountByPlacement(ctx context.Context) (map[uuid.UUID]int, error)
}

// CategoryStore is the registry contract for categories.
type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementPostCount(ctx context.Context, id uuid.UUID) error
	DecrementPostCount(ctx context.Context, id uuid.UUID) (bool, error)
	SetPostCount(ctx context.Context, id uuid.UUID, n int) error
}

// PlacementStore is the registry contract for placements.
type PlacementStore interface {
	Create(ctx context.Context, p *models.Placement) (*models.Placement, error)
	List(ctx context.Context, activeOnly bool) ([]models.Placement, error)
	ListBySubCategory(ctx context.Context, sub models.SubCategory) ([]models.Placement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Placement, error)
	FindBySlug(ctx context.Context, slug string) (*models.Placement, error)
	FindByName(ctx context.Context, name string) (*models.Placement, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, p *models.Placement) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementPostCount(ctx context.Context, id uuid.UUID) error
	DecrementPostCount(ctx context.Context, id uuid.UUID) (bool, error)
	SetPostCount(ctx context.Context, id uuid.UUID, n int) error
}
