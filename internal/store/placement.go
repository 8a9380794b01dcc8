// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pressadmin/internal/models"
)

// PlacementStore manages placements and their denormalized post counts.
type PlacementStore struct {
	db *sql.DB
}

// NewPlacementStore returns a new PlacementStore.
func NewPlacementStore(db *sql.DB) *PlacementStore {
	return &PlacementStore{db: db}
}

const placementColumns = `id, name, slug, sub_category, description, color, is_active, post_count, sort_order, created_at, updated_at`

// scanPlacement scans a row into a Placement struct.
func scanPlacement(scanner interface{ Scan(...any) error }) (*models.Placement, error) {
	var p models.Placement
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Slug, &p.SubCategory, &p.Description, &p.Color,
		&p.IsActive, &p.PostCount, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all placements ordered by sort order, then name. With
// activeOnly set, inactive placements are excluded.
func (s *PlacementStore) List(ctx context.Context, activeOnly bool) ([]models.Placement, error) {
	query := `SELECT ` + placementColumns + ` FROM placements`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	defer rows.Close()

	var items []models.Placement
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListBySubCategory returns active placements for one page region,
// ordered by sort order.
func (s *PlacementStore) ListBySubCategory(ctx context.Context, sub models.SubCategory) ([]models.Placement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+placementColumns+` FROM placements
		WHERE sub_category = $1 AND is_active
		ORDER BY sort_order, name
	`, sub)
	if err != nil {
		return nil, fmt.Errorf("list placements by sub-category: %w", err)
	}
	defer rows.Close()

	var items []models.Placement
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a placement by ID. Returns nil if not found.
func (s *PlacementStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Placement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+placementColumns+` FROM placements WHERE id = $1`, id)
	p, err := scanPlacement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find placement by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a placement by slug. Returns nil if not found.
func (s *PlacementStore) FindBySlug(ctx context.Context, slug string) (*models.Placement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+placementColumns+` FROM placements WHERE slug = $1`, slug)
	p, err := scanPlacement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find placement by slug: %w", err)
	}
	return p, nil
}

// FindByName retrieves a placement by case-insensitive exact name match.
// Returns nil if not found.
func (s *PlacementStore) FindByName(ctx context.Context, name string) (*models.Placement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+placementColumns+` FROM placements WHERE LOWER(name) = LOWER($1)`, name)
	p, err := scanPlacement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find placement by name: %w", err)
	}
	return p, nil
}

// Create inserts a new placement and returns it.
func (s *PlacementStore) Create(ctx context.Context, p *models.Placement) (*models.Placement, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO placements (name, slug, sub_category, description, color, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+placementColumns,
		p.Name, p.Slug, p.SubCategory, p.Description, p.Color, p.IsActive, p.SortOrder,
	)
	result, err := scanPlacement(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("create placement: %w", err)
	}
	return result, nil
}

// Update modifies an existing placement.
func (s *PlacementStore) Update(ctx context.Context, p *models.Placement) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE placements SET
			name = $1, slug = $2, sub_category = $3, description = $4,
			color = $5, is_active = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Name, p.Slug, p.SubCategory, p.Description, p.Color, p.IsActive, p.SortOrder, p.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("update placement: %w", err)
	}
	return nil
}

// Delete removes a placement by ID. Returns false if no row was deleted.
func (s *PlacementStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM placements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete placement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete placement rows: %w", err)
	}
	return affected > 0, nil
}

// SlugExists reports whether any placement already uses the given slug.
func (s *PlacementStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM placements WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("placement slug exists: %w", err)
	}
	return exists, nil
}

// IncrementPostCount adds one to the placement's denormalized post count.
func (s *PlacementStore) IncrementPostCount(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE placements SET post_count = post_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment placement post count: %w", err)
	}
	return nil
}

// DecrementPostCount subtracts one from the post count, clamped at zero.
// Returns false when the counter was already at zero.
func (s *PlacementStore) DecrementPostCount(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE placements SET post_count = post_count - 1, updated_at = NOW()
		WHERE id = $1 AND post_count > 0
	`, id)
	if err != nil {
		return false, fmt.Errorf("decrement placement post count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrement placement post count rows: %w", err)
	}
	return affected > 0, nil
}

// SetPostCount overwrites the stored counter. Used only by reconciliation.
func (s *PlacementStore) SetPostCount(ctx context.Context, id uuid.UUID, n int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE placements SET post_count = $1, updated_at = NOW() WHERE id = $2`, n, id)
	if err != nil {
		return fmt.Errorf("set placement post count: %w", err)
	}
	return nil
}
