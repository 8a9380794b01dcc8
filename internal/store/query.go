// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go builds the WHERE clause and sort order for post list queries.
// The builder is pure so the translation from filter to SQL is testable
// without a database.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressadmin/internal/models"
)

// PostSort selects the ordering of a post list.
type PostSort int

const (
	// SortNewest orders by creation date, newest first. Default.
	SortNewest PostSort = iota
	// SortCurated orders by the editorial order_no ascending, then by
	// publication date descending. Used by the public filtered view.
	SortCurated
)

// PostFilter is the conjunctive filter for post list queries. Nil/zero
// fields are not applied.
type PostFilter struct {
	Status      *models.PostStatus
	AuthorID    *uuid.UUID
	CategoryID  *uuid.UUID
	PlacementID *uuid.UUID
	// Search matches case-insensitively as a substring of title,
	// content, or excerpt.
	Search string
	// Tags matches posts whose tag set intersects the given set.
	Tags []string
	// Live restricts to published posts whose expiry is absent or in
	// the future, evaluated against Now.
	Live bool
	Now  time.Time

	Sort PostSort
}

// whereClause renders the filter into a SQL WHERE fragment with
// positional arguments. Column references are prefixed with "p." so the
// fragment works in both the joined select and the bare count query.
// Returns an empty string when no condition applies.
func (f PostFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	add := func(format string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.Status != nil {
		add("p.status = $%d", *f.Status)
	}
	if f.AuthorID != nil {
		add("p.author_id = $%d", *f.AuthorID)
	}
	if f.CategoryID != nil {
		add("p.category_id = $%d", *f.CategoryID)
	}
	if f.PlacementID != nil {
		add("p.placement_id = $%d", *f.PlacementID)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.content ILIKE $%d OR p.excerpt ILIKE $%d)", n, n, n))
	}
	if len(f.Tags) > 0 {
		add("p.tags && $%d", f.Tags)
	}
	if f.Live {
		now := f.Now
		if now.IsZero() {
			now = time.Now()
		}
		args = append(args, models.PostStatusPublished)
		statusArg := len(args)
		args = append(args, now)
		expiryArg := len(args)
		conds = append(conds, fmt.Sprintf(
			"p.status = $%d AND (p.expired_at IS NULL OR p.expired_at > $%d)", statusArg, expiryArg))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// orderClause renders the sort order.
func (f PostFilter) orderClause() string {
	if f.Sort == SortCurated {
		return "ORDER BY p.order_no ASC, p.published_at DESC NULLS LAST"
	}
	return "ORDER BY p.created_at DESC"
}

// PostPatch is a field-level partial update for a post. Nil fields are
// left untouched. Count deltas for category/placement changes are the
// caller's responsibility; the store only writes the row.
type PostPatch struct {
	Title           *string
	Slug            *string
	Excerpt         *string
	Content         *string
	Status          *models.PostStatus
	CategoryID      *uuid.UUID
	PlacementID     *uuid.UUID
	Tags            *[]string
	Image           *string
	MetaTitle       *string
	MetaDescription *string
	OrderNo         *int
	PublishedAt     *time.Time
	ExpiredAt       *time.Time
}

// setClause renders the patch into a SQL SET fragment. updated_at is
// always bumped.
func (p PostPatch) setClause() (string, []any) {
	var sets []string
	var args []any

	set := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Slug != nil {
		set("slug", *p.Slug)
	}
	if p.Excerpt != nil {
		set("excerpt", *p.Excerpt)
	}
	if p.Content != nil {
		set("content", *p.Content)
	}
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.CategoryID != nil {
		set("category_id", *p.CategoryID)
	}
	if p.PlacementID != nil {
		set("placement_id", *p.PlacementID)
	}
	if p.Tags != nil {
		set("tags", *p.Tags)
	}
	if p.Image != nil {
		set("image", *p.Image)
	}
	if p.MetaTitle != nil {
		set("meta_title", *p.MetaTitle)
	}
	if p.MetaDescription != nil {
		set("meta_description", *p.MetaDescription)
	}
	if p.OrderNo != nil {
		set("order_no", *p.OrderNo)
	}
	if p.PublishedAt != nil {
		set("published_at", *p.PublishedAt)
	}
	if p.ExpiredAt != nil {
		set("expired_at", *p.ExpiredAt)
	}

	sets = append(sets, "updated_at = NOW()")
	return "SET " + strings.Join(sets, ", "), args
}
