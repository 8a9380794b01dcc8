// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"pressadmin/internal/auth"
	"pressadmin/internal/cache"
	"pressadmin/internal/config"
	"pressadmin/internal/database"
	"pressadmin/internal/handlers"
	"pressadmin/internal/router"
	"pressadmin/internal/service"
	"pressadmin/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	// The cache is optional; without Valkey every read goes to Postgres.
	var valkey *redis.Client
	valkey, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, running without cache", "error", err)
		valkey = nil
	}
	postCache := cache.NewPostCache(valkey)

	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	placementStore := store.NewPlacementStore(db)
	userStore := store.NewUserStore(db)

	postService := service.NewPostService(postStore, categoryStore, placementStore)
	categoryService := service.NewCategoryService(categoryStore)
	placementService := service.NewPlacementService(placementStore)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	handler := router.New(router.Handlers{
		Auth:       handlers.NewAuthHandler(userStore, tokens),
		Posts:      handlers.NewPostHandler(postService, postCache),
		Categories: handlers.NewCategoryHandler(categoryService),
		Placements: handlers.NewPlacementHandler(placementService),
		Users:      handlers.NewUserHandler(userStore),
		Admin:      handlers.NewAdminHandler(postService),
		Tokens:     tokens,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	if valkey != nil {
		valkey.Close()
	}
	slog.Info("server stopped")
}
