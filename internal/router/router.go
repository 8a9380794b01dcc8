// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router assembles the chi route tree: middleware ordering,
// public reads, and the authenticated mutation routes.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pressadmin/internal/auth"
	"pressadmin/internal/handlers"
	"pressadmin/internal/middleware"
)

// Handlers bundles everything the route tree needs.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Posts      *handlers.PostHandler
	Categories *handlers.CategoryHandler
	Placements *handlers.PlacementHandler
	Users      *handlers.UserHandler
	Admin      *handlers.AdminHandler
	Tokens     *auth.Tokens
}

// New builds the full route tree. Reads are public; mutations sit
// behind bearer-token authentication, with per-route role checks in the
// handlers themselves.
func New(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	limiter := middleware.NewRateLimiter(300, time.Minute)
	r.Use(limiter.Middleware)

	requireAuth := middleware.RequireAuth(h.Tokens, handlers.Unauthorized)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.With(requireAuth).Get("/me", h.Auth.Me)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.Posts.List)
		r.Get("/filter", h.Posts.ListFiltered)
		r.Get("/author/{authorId}", h.Posts.ListByAuthor)
		r.Get("/tag/{tag}", h.Posts.ListByTag)
		r.Get("/slug/{slug}", h.Posts.GetBySlug)
		r.Get("/{id}", h.Posts.Get)
		// View reporting comes from the public site, no auth.
		r.Patch("/{id}/view", h.Posts.IncrementView)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Posts.Create)
			r.Patch("/{id}", h.Posts.Update)
			r.Delete("/{id}", h.Posts.Delete)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Categories.List)
		r.Get("/slug/{slug}", h.Categories.GetBySlug)
		r.Get("/{id}", h.Categories.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Categories.Create)
			r.Patch("/{id}", h.Categories.Update)
			r.Delete("/{id}", h.Categories.Delete)
		})
	})

	r.Route("/placements", func(r chi.Router) {
		r.Get("/", h.Placements.List)
		r.Get("/subcategory/{subCategory}", h.Placements.ListBySubCategory)
		r.Get("/slug/{slug}", h.Placements.GetBySlug)
		r.Get("/{id}", h.Placements.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.Placements.Create)
			r.Patch("/{id}", h.Placements.Update)
			r.Delete("/{id}", h.Placements.Delete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.Users.List)
		r.Post("/", h.Users.Create)
		r.Get("/{id}", h.Users.Get)
		r.Patch("/{id}", h.Users.UpdateProfile)
		r.Patch("/{id}/role", h.Users.SetRole)
		r.Patch("/{id}/active", h.Users.SetActive)
		r.Delete("/{id}", h.Users.Delete)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/reconcile-counts", h.Admin.ReconcileCounts)
	})

	return r
}
