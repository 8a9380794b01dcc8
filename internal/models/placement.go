// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubCategory identifies the page region a placement belongs to.
type SubCategory string

const (
	SubCategoryTopNav       SubCategory = "topnav"
	SubCategoryRightSidebar SubCategory = "rightsidebar"
	SubCategoryLeftSidebar  SubCategory = "leftsidebar"
	SubCategoryBottom       SubCategory = "bottom"
	SubCategoryFeatured     SubCategory = "featured"
	SubCategorySidebar      SubCategory = "sidebar"
	SubCategoryHeader       SubCategory = "header"
	SubCategoryFooter       SubCategory = "footer"
)

// ValidSubCategory reports whether s is a known placement sub-category.
func ValidSubCategory(s SubCategory) bool {
	switch s {
	case SubCategoryTopNav, SubCategoryRightSidebar, SubCategoryLeftSidebar,
		SubCategoryBottom, SubCategoryFeatured, SubCategorySidebar,
		SubCategoryHeader, SubCategoryFooter:
		return true
	}
	return false
}

// Placement is a display slot posts are assigned to (header banner,
// sidebar, footer and so on). Like Category it carries a denormalized
// PostCount aggregate.
type Placement struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	SubCategory SubCategory `json:"sub_category"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	IsActive    bool        `json:"is_active"`
	PostCount   int         `json:"post_count"`
	SortOrder   int         `json:"sort_order"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
