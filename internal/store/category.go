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

// CategoryStore manages categories and their denormalized post counts.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, color, is_active, post_count, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color,
		&c.IsActive, &c.PostCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name. With activeOnly set,
// inactive categories are excluded.
func (s *CategoryStore) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by case-insensitive exact name match.
// Used by the public post filter path. Returns nil if not found.
func (s *CategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) = LOWER($1)`, name)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, color, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description, c.Color, c.IsActive,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category. The post count is not writable
// through Update; it only moves through the counter operations and
// reconciliation.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, color = $4,
			is_active = $5, updated_at = NOW()
		WHERE id = $6
	`, c.Name, c.Slug, c.Description, c.Color, c.IsActive, c.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Returns false if no row was deleted.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category rows: %w", err)
	}
	return affected > 0, nil
}

// SlugExists reports whether any category already uses the given slug.
func (s *CategoryStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug exists: %w", err)
	}
	return exists, nil
}

// IncrementPostCount adds one to the category's denormalized post count.
func (s *CategoryStore) IncrementPostCount(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE categories SET post_count = post_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment category post count: %w", err)
	}
	return nil
}

// DecrementPostCount subtracts one from the post count, clamped at zero.
// Returns false when the counter was already at zero; the caller treats
// that as a consistency signal, not a failure.
func (s *CategoryStore) DecrementPostCount(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET post_count = post_count - 1, updated_at = NOW()
		WHERE id = $1 AND post_count > 0
	`, id)
	if err != nil {
		return false, fmt.Errorf("decrement category post count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decrement category post count rows: %w", err)
	}
	return affected > 0, nil
}

// SetPostCount overwrites the stored counter. Used only by reconciliation.
func (s *CategoryStore) SetPostCount(ctx context.Context, id uuid.UUID, n int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE categories SET post_count = $1, updated_at = NOW() WHERE id = $2`, n, id)
	if err != nil {
		return fmt.Errorf("set category post count: %w", err)
	}
	return nil
}
