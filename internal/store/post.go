// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pressadmin/internal/models"
)

// pgTypeMap adapts pgx native types (text[] in particular) to the
// database/sql scanning interface.
var pgTypeMap = pgtype.NewMap()

// PostStore handles all post-related database operations. Every read
// joins the author, category, and placement projections so the returned
// posts carry resolved references.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.status,
	       p.author_id, p.category_id, p.placement_id, p.tags, p.image,
	       p.meta_title, p.meta_description, p.view_count, p.order_no,
	       p.published_at, p.expired_at, p.created_at, p.updated_at,
	       u.first_name, u.last_name, u.email,
	       c.name, c.slug, c.color,
	       pl.name, pl.slug, pl.sub_category, pl.color
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id
	JOIN placements pl ON pl.id = p.placement_id`

// scanPost scans one joined row into a Post with resolved references.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var author models.AuthorRef
	var category models.CategoryRef
	var placement models.PlacementRef

	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Status,
		&p.AuthorID, &p.CategoryID, &p.PlacementID, pgTypeMap.SQLScanner(&p.Tags),
		&p.Image, &p.MetaTitle, &p.MetaDescription, &p.ViewCount, &p.OrderNo,
		&p.PublishedAt, &p.ExpiredAt, &p.CreatedAt, &p.UpdatedAt,
		&author.FirstName, &author.LastName, &author.Email,
		&category.Name, &category.Slug, &category.Color,
		&placement.Name, &placement.Slug, &placement.SubCategory, &placement.Color,
	)
	if err != nil {
		return nil, err
	}

	author.ID = p.AuthorID
	category.ID = p.CategoryID
	placement.ID = p.PlacementID
	p.Author = &author
	p.Category = &category
	p.Placement = &placement
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// Create inserts a new post and returns it with resolved references.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, excerpt, content, status,
		                   author_id, category_id, placement_id, tags, image,
		                   meta_title, meta_description, order_no,
		                   published_at, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, p.Title, p.Slug, p.Excerpt, p.Content, p.Status,
		p.AuthorID, p.CategoryID, p.PlacementID, tags, p.Image,
		p.MetaTitle, p.MetaDescription, p.OrderNo,
		p.PublishedAt, p.ExpiredAt,
	).Scan(&id)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.FindByID(ctx, id)
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by its slug. Returns nil if not found.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, postSelect+` WHERE p.slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether any post already uses the given slug.
func (s *PostStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post slug exists: %w", err)
	}
	return exists, nil
}

// List returns one page of posts matching the filter plus the total
// match count. Page is 1-based; out-of-range pages yield an empty slice
// with an accurate total.
func (s *PostStore) List(ctx context.Context, f PostFilter, page, pageSize int) ([]models.Post, int, error) {
	where, args := f.whereClause()

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	limitArgs := append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		postSelect, where, f.orderClause(), len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, limitArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// Update applies a partial patch to a post and returns the updated row
// with resolved references. Returns nil if the post does not exist.
func (s *PostStore) Update(ctx context.Context, id uuid.UUID, patch PostPatch) (*models.Post, error) {
	set, args := patch.setClause()
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE posts %s WHERE id = $%d", set, len(args)), args...)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update post rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return s.FindByID(ctx, id)
}

// Delete removes a post by ID. Returns false if no row was deleted.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post rows: %w", err)
	}
	return affected > 0, nil
}

// IncrementViewCount atomically adds one view and returns the updated
// post. Returns nil if the post does not exist.
func (s *PostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("increment view count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("increment view count rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.FindByID(ctx, id)
}

// CountByCategory returns the actual number of posts per category,
// computed from source truth. Used by count reconciliation.
func (s *PostStore) CountByCategory(ctx context.Context) (map[uuid.UUID]int, error) {
	return s.countBy(ctx, "category_id")
}

// CountByPlacement returns the actual number of posts per placement.
func (s *PostStore) CountByPlacement(ctx context.Context) (map[uuid.UUID]int, error) {
	return s.countBy(ctx, "placement_id")
}

func (s *PostStore) countBy(ctx context.Context, column string) (map[uuid.UUID]int, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM posts GROUP BY %s`, column, column))
	if err != nil {
		return nil, fmt.Errorf("count posts by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan post count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
