// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides in-memory fakes and a request harness so
// handler behavior is tested without a database or a token round trip.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressadmin/internal/auth"
	"pressadmin/internal/cache"
	"pressadmin/internal/middleware"
	"pressadmin/internal/models"
	"pressadmin/internal/service"
	"pressadmin/internal/store"
)

type memPosts struct {
	posts map[uuid.UUID]*models.Post
}

func (m *memPosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	m.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memPosts) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPosts) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPosts) SlugExists(_ context.Context, slug string) (bool, error) {
	p, _ := m.FindBySlug(context.Background(), slug)
	return p != nil, nil
}

func (m *memPosts) List(_ context.Context, f store.PostFilter, page, pageSize int) ([]models.Post, int, error) {
	var out []models.Post
	for _, p := range m.posts {
		if f.Live && p.Status != models.PostStatusPublished {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.PlacementID != nil && p.PlacementID != *f.PlacementID {
			continue
		}
		if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (m *memPosts) Update(_ context.Context, id uuid.UUID, patch store.PostPatch) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
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
	if patch.PublishedAt != nil {
		p.PublishedAt = patch.PublishedAt
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.posts[id]; !ok {
		return false, nil
	}
	delete(m.posts, id)
	return true, nil
}

func (m *memPosts) IncrementViewCount(_ context.Context, id uuid.UUID) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	p.ViewCount++
	cp := *p
	return &cp, nil
}

func (m *memPosts) CountByCategory(context.Context) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, p := range m.posts {
		counts[p.CategoryID]++
	}
	return counts, nil
}

func (m *memPosts) CountByPlacement(context.Context) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int)
	for _, p := range m.posts {
		counts[p.PlacementID]++
	}
	return counts, nil
}

type memCategories struct {
	items map[uuid.UUID]*models.Category
}

func (m *memCategories) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	cp := *c
	cp.ID = uuid.New()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memCategories) List(_ context.Context, activeOnly bool) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.items {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memCategories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range m.items {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCategories) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCategories) SlugExists(_ context.Context, slug string) (bool, error) {
	c, _ := m.FindBySlug(context.Background(), slug)
	return c != nil, nil
}

func (m *memCategories) Update(_ context.Context, c *models.Category) error {
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memCategories) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *memCategories) IncrementPostCount(_ context.Context, id uuid.UUID) error {
	if c, ok := m.items[id]; ok {
		c.PostCount++
	}
	return nil
}

func (m *memCategories) DecrementPostCount(_ context.Context, id uuid.UUID) (bool, error) {
	c, ok := m.items[id]
	if !ok || c.PostCount == 0 {
		return false, nil
	}
	c.PostCount--
	return true, nil
}

func (m *memCategories) SetPostCount(_ context.Context, id uuid.UUID, n int) error {
	if c, ok := m.items[id]; ok {
		c.PostCount = n
	}
	return nil
}

type memPlacements struct {
	items map[uuid.UUID]*models.Placement
}

func (m *memPlacements) Create(_ context.Context, p *models.Placement) (*models.Placement, error) {
	cp := *p
	cp.ID = uuid.New()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memPlacements) List(_ context.Context, activeOnly bool) ([]models.Placement, error) {
	var out []models.Placement
	for _, p := range m.items {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memPlacements) ListBySubCategory(_ context.Context, sub models.SubCategory) ([]models.Placement, error) {
	var out []models.Placement
	for _, p := range m.items {
		if p.IsActive && p.SubCategory == sub {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPlacements) FindByID(_ context.Context, id uuid.UUID) (*models.Placement, error) {
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPlacements) FindBySlug(_ context.Context, slug string) (*models.Placement, error) {
	for _, p := range m.items {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPlacements) FindByName(_ context.Context, name string) (*models.Placement, error) {
	for _, p := range m.items {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memPlacements) SlugExists(_ context.Context, slug string) (bool, error) {
	p, _ := m.FindBySlug(context.Background(), slug)
	return p != nil, nil
}

func (m *memPlacements) Update(_ context.Context, p *models.Placement) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memPlacements) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *memPlacements) IncrementPostCount(_ context.Context, id uuid.UUID) error {
	if p, ok := m.items[id]; ok {
		p.PostCount++
	}
	return nil
}

func (m *memPlacements) DecrementPostCount(_ context.Context, id uuid.UUID) (bool, error) {
	p, ok := m.items[id]
	if !ok || p.PostCount == 0 {
		return false, nil
	}
	p.PostCount--
	return true, nil
}

func (m *memPlacements) SetPostCount(_ context.Context, id uuid.UUID, n int) error {
	if p, ok := m.items[id]; ok {
		p.PostCount = n
	}
	return nil
}

// harness wires handlers over fakes and a chi router mirroring the real
// route tree. Authentication is simulated: asUser injects a principal
// directly into the request context.
type harness struct {
	router     chi.Router
	posts      *memPosts
	categories *memCategories
	placements *memPlacements
	category   *models.Category
	placement  *models.Placement
	postSvc    *service.PostService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	posts := &memPosts{posts: make(map[uuid.UUID]*models.Post)}
	categories := &memCategories{items: make(map[uuid.UUID]*models.Category)}
	placements := &memPlacements{items: make(map[uuid.UUID]*models.Placement)}

	category, _ := categories.Create(context.Background(), &models.Category{
		Name: "Tech", Slug: "tech", Color: "#000000", IsActive: true,
	})
	placement, _ := placements.Create(context.Background(), &models.Placement{
		Name: "Header", Slug: "header", SubCategory: models.SubCategoryHeader,
		Color: "#3498db", IsActive: true,
	})

	postSvc := service.NewPostService(posts, categories, placements)
	categorySvc := service.NewCategoryService(categories)
	placementSvc := service.NewPlacementService(placements)

	postHandler := NewPostHandler(postSvc, cache.NewPostCache(nil))
	categoryHandler := NewCategoryHandler(categorySvc)
	placementHandler := NewPlacementHandler(placementSvc)
	adminHandler := NewAdminHandler(postSvc)

	r := chi.NewRouter()
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.Get("/filter", postHandler.ListFiltered)
		r.Get("/author/{authorId}", postHandler.ListByAuthor)
		r.Get("/tag/{tag}", postHandler.ListByTag)
		r.Get("/slug/{slug}", postHandler.GetBySlug)
		r.Get("/{id}", postHandler.Get)
		r.Patch("/{id}/view", postHandler.IncrementView)
		r.Post("/", postHandler.Create)
		r.Patch("/{id}", postHandler.Update)
		r.Delete("/{id}", postHandler.Delete)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Get("/{id}", categoryHandler.Get)
		r.Post("/", categoryHandler.Create)
		r.Patch("/{id}", categoryHandler.Update)
		r.Delete("/{id}", categoryHandler.Delete)
	})
	r.Route("/placements", func(r chi.Router) {
		r.Get("/", placementHandler.List)
		r.Get("/subcategory/{subCategory}", placementHandler.ListBySubCategory)
		r.Post("/", placementHandler.Create)
		r.Delete("/{id}", placementHandler.Delete)
	})
	r.Post("/admin/reconcile-counts", adminHandler.ReconcileCounts)

	return &harness{
		router:     r,
		posts:      posts,
		categories: categories,
		placements: placements,
		category:   category,
		placement:  placement,
		postSvc:    postSvc,
	}
}

// do executes a request, optionally as an authenticated principal.
func (h *harness) do(t *testing.T, method, path string, body string, principal *auth.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if principal != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), *principal))
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func principalOf(role models.Role) *auth.Principal {
	return &auth.Principal{ID: uuid.New(), Role: role}
}

// decodeEnvelope unmarshals a success envelope, failing the test on an
// error response.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

// errorCode extracts the code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var env struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, rec.Body.String())
	}
	if env.Success {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	return env.Error.Code
}

func (h *harness) seedPost(t *testing.T, authorID uuid.UUID, slug string) *models.Post {
	t.Helper()

	post, err := h.postSvc.Create(context.Background(), service.CreatePostInput{
		Title:       "Seeded " + slug,
		Slug:        slug,
		Content:     "body",
		AuthorID:    authorID,
		CategoryID:  h.category.ID,
		PlacementID: h.placement.ID,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}
