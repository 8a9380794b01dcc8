// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// service_test.go provides in-memory store fakes so the domain logic is
// tested without a database.
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressadmin/internal/models"
	"pressadmin/internal/store"
)

type fakePostStore struct {
	posts map[uuid.UUID]*models.Post
	seq   int

	// writeErr simulates a failed insert or update, for example the
	// losing side of a concurrent slug race.
	writeErr error
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[uuid.UUID]*models.Post)}
}

func (f *fakePostStore) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	cp := *p
	cp.ID = uuid.New()
	now := time.Now()
	cp.CreatedAt = now.Add(time.Duration(f.seq) * time.Millisecond)
	cp.UpdatedAt = cp.CreatedAt
	f.seq++
	f.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePostStore) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostStore) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePostStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostStore) matches(p *models.Post, flt store.PostFilter) bool {
	if flt.Status != nil && p.Status != *flt.Status {
		return false
	}
	if flt.AuthorID != nil && p.AuthorID != *flt.AuthorID {
		return false
	}
	if flt.CategoryID != nil && p.CategoryID != *flt.CategoryID {
		return false
	}
	if flt.PlacementID != nil && p.PlacementID != *flt.PlacementID {
		return false
	}
	if flt.Search != "" {
		s := strings.ToLower(flt.Search)
		if !strings.Contains(strings.ToLower(p.Title), s) &&
			!strings.Contains(strings.ToLower(p.Content), s) {
			return false
		}
	}
	if len(flt.Tags) > 0 {
		found := false
		for _, want := range flt.Tags {
			for _, have := range p.Tags {
				if want == have {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if flt.Live {
		now := flt.Now
		if now.IsZero() {
			now = time.Now()
		}
		if p.Status != models.PostStatusPublished || p.IsExpired(now) {
			return false
		}
	}
	return true
}

func (f *fakePostStore) List(_ context.Context, flt store.PostFilter, page, pageSize int) ([]models.Post, int, error) {
	var matched []models.Post
	for _, p := range f.posts {
		if f.matches(p, flt) {
			matched = append(matched, *p)
		}
	}

	if flt.Sort == store.SortCurated {
		sort.Slice(matched, func(i, j int) bool {
			if matched[i].OrderNo != matched[j].OrderNo {
				return matched[i].OrderNo < matched[j].OrderNo
			}
			pi, pj := matched[i].PublishedAt, matched[j].PublishedAt
			if pi == nil {
				return false
			}
			if pj == nil {
				return true
			}
			return pi.After(*pj)
		})
	} else {
		sort.Slice(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	total := len(matched)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakePostStore) Update(_ context.Context, id uuid.UUID, patch store.PostPatch) (*models.Post, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Excerpt != nil {
		p.Excerpt = patch.Excerpt
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.PlacementID != nil {
		p.PlacementID = *patch.PlacementID
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Image != nil {
		p.Image = patch.Image
	}
	if patch.OrderNo != nil {
		p.OrderNo = *patch.OrderNo
	}
	if patch.PublishedAt != nil {
		p.PublishedAt = patch.PublishedAt
	}
	if patch.ExpiredAt != nil {
		p.ExpiredAt = patch.ExpiredAt
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (f *fakePostStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakePostStore) IncrementViewCount(_ context.Context, id uuid.UUID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	p.ViewCount++
	cp := *p
	return &cp, nil
}

func (f *fakePostStore) CountByCategory(_ context.Context) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, p := range f.posts {
		counts[p.CategoryID]++
	}
	return counts, nil
}

func (f *fakePostStore) CountByPlacement(_ context.Context) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, p := range f.posts {
		counts[p.PlacementID]++
	}
	return counts, nil
}

type fakeCategoryStore struct {
	categories map[uuid.UUID]*models.Category
	// incrementErr simulates a counter write failure.
	incrementErr error
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*models.Category)}
}

func (f *fakeCategoryStore) add(name string, postCount int) *models.Category {
	c := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      strings.ToLower(name),
		Color:     "#000000",
		IsActive:  true,
		PostCount: postCount,
	}
	f.categories[c.ID] = c
	return c
}

func (f *fakeCategoryStore) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	cp := *c
	cp.ID = uuid.New()
	f.categories[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCategoryStore) List(_ context.Context, activeOnly bool) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range f.categories {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, c *models.Category) error {
	if stored, ok := f.categories[c.ID]; ok {
		count := stored.PostCount
		cp := *c
		cp.PostCount = count
		f.categories[c.ID] = &cp
	}
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.categories[id]; !ok {
		return false, nil
	}
	delete(f.categories, id)
	return true, nil
}

func (f *fakeCategoryStore) IncrementPostCount(_ context.Context, id uuid.UUID) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	if c, ok := f.categories[id]; ok {
		c.PostCount++
	}
	return nil
}

func (f *fakeCategoryStore) DecrementPostCount(_ context.Context, id uuid.UUID) (bool, error) {
	c, ok := f.categories[id]
	if !ok || c.PostCount == 0 {
		return false, nil
	}
	c.PostCount--
	return true, nil
}

func (f *fakeCategoryStore) SetPostCount(_ context.Context, id uuid.UUID, n int) error {
	if c, ok := f.categories[id]; ok {
		c.PostCount = n
	}
	return nil
}

type fakePlacementStore struct {
	placements map[uuid.UUID]*models.Placement
}

func newFakePlacementStore() *fakePlacementStore {
	return &fakePlacementStore{placements: make(map[uuid.UUID]*models.Placement)}
}

func (f *fakePlacementStore) add(name string, sub models.SubCategory, postCount int) *models.Placement {
	p := &models.Placement{
		ID:          uuid.New(),
		Name:        name,
		Slug:        strings.ToLower(name),
		SubCategory: sub,
		Color:       "#3498db",
		IsActive:    true,
		PostCount:   postCount,
	}
	f.placements[p.ID] = p
	return p
}

func (f *fakePlacementStore) Create(_ context.Context, p *models.Placement) (*models.Placement, error) {
	cp := *p
	cp.ID = uuid.New()
	f.placements[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakePlacementStore) List(_ context.Context, activeOnly bool) ([]models.Placement, error) {
	var out []models.Placement
	for _, p := range f.placements {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlacementStore) ListBySubCategory(_ context.Context, sub models.SubCategory) ([]models.Placement, error) {
	var out []models.Placement
	for _, p := range f.placements {
		if p.IsActive && p.SubCategory == sub {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakePlacementStore) FindByID(_ context.Context, id uuid.UUID) (*models.Placement, error) {
	p, ok := f.placements[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlacementStore) FindBySlug(_ context.Context, slug string) (*models.Placement, error) {
	for _, p := range f.placements {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlacementStore) FindByName(_ context.Context, name string) (*models.Placement, error) {
	for _, p := range f.placements {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePlacementStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range f.placements {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlacementStore) Update(_ context.Context, p *models.Placement) error {
	if stored, ok := f.placements[p.ID]; ok {
		count := stored.PostCount
		cp := *p
		cp.PostCount = count
		f.placements[p.ID] = &cp
	}
	return nil
}

func (f *fakePlacementStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.placements[id]; !ok {
		return false, nil
	}
	delete(f.placements, id)
	return true, nil
}

func (f *fakePlacementStore) IncrementPostCount(_ context.Context, id uuid.UUID) error {
	if p, ok := f.placements[id]; ok {
		p.PostCount++
	}
	return nil
}

func (f *fakePlacementStore) DecrementPostCount(_ context.Context, id uuid.UUID) (bool, error) {
	p, ok := f.placements[id]
	if !ok || p.PostCount == 0 {
		return false, nil
	}
	p.PostCount--
	return true, nil
}

func (f *fakePlacementStore) SetPostCount(_ context.Context, id uuid.UUID, n int) error {
	if p, ok := f.placements[id]; ok {
		p.PostCount = n
	}
	return nil
}

// fixture wires a PostService over fresh fakes with one category and one
// placement already registered.
type fixture struct {
	svc        *PostService
	posts      *fakePostStore
	categories *fakeCategoryStore
	placements *fakePlacementStore
	category   *models.Category
	placement  *models.Placement
	authorID   uuid.UUID
}

func newFixture() *fixture {
	posts := newFakePostStore()
	categories := newFakeCategoryStore()
	placements := newFakePlacementStore()
	return &fixture{
		svc:        NewPostService(posts, categories, placements),
		posts:      posts,
		categories: categories,
		placements: placements,
		category:   categories.add("Tech", 0),
		placement:  placements.add("Header", models.SubCategoryHeader, 0),
		authorID:   uuid.New(),
	}
}

func (fx *fixture) createInput(title, slug string) CreatePostInput {
	return CreatePostInput{
		Title:       title,
		Slug:        slug,
		Content:     "body",
		AuthorID:    fx.authorID,
		CategoryID:  fx.category.ID,
		PlacementID: fx.placement.ID,
	}
}
