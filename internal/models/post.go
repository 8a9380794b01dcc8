// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
// "Expired" is not a stored state: a published post whose expired_at has
// passed is excluded from the public filtered view but keeps its stored
// status.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// ValidPostStatus reports whether s is a storable post status.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post is the central content entity. It references its author, category
// and placement by ID; the *Ref fields are virtual, populated only by
// store methods that perform the join. A nil ref means the join was not
// performed, not that the relation is absent.
type Post struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	Content         string     `json:"content"`
	Status          PostStatus `json:"status"`
	AuthorID        uuid.UUID  `json:"author_id"`
	CategoryID      uuid.UUID  `json:"category_id"`
	PlacementID     uuid.UUID  `json:"placement_id"`
	Tags            []string   `json:"tags"`
	Image           *string    `json:"image,omitempty"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	ViewCount       int        `json:"view_count"`
	OrderNo         int        `json:"order_no"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ExpiredAt       *time.Time `json:"expired_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	Author    *AuthorRef    `json:"author,omitempty"`
	Category  *CategoryRef  `json:"category,omitempty"`
	Placement *PlacementRef `json:"placement,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsExpired returns true if the post has an expiry timestamp in the past.
func (p *Post) IsExpired(now time.Time) bool {
	return p.ExpiredAt != nil && !p.ExpiredAt.After(now)
}

// AuthorRef is the resolved author projection attached to a post.
type AuthorRef struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// CategoryRef is the resolved category projection attached to a post.
type CategoryRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Color string    `json:"color"`
}

// PlacementRef is the resolved placement projection attached to a post.
type PlacementRef struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	SubCategory SubCategory `json:"sub_category"`
	Color       string      `json:"color"`
}

// PostPage is the paged envelope returned by every post list operation.
type PostPage struct {
	Items      []Post `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// NewPostPage assembles a page envelope, deriving total_pages from the
// total and page size. Out-of-range pages carry empty items with an
// accurate total.
func NewPostPage(items []Post, total, page, pageSize int) PostPage {
	if items == nil {
		items = []Post{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PostPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
