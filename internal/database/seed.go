package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// defaultPlacements is the placement set every fresh install starts with,
// one per page region the admin client knows how to render.
var defaultPlacements = []struct {
	Name        string
	Slug        string
	SubCategory string
	Description string
	Color       string
	SortOrder   int
}{
	{"Top Navigation", "top-navigation", "topnav", "Posts displayed in the top navigation area", "#3498db", 1},
	{"Right Sidebar", "right-sidebar", "rightsidebar", "Posts displayed in the right sidebar", "#2ecc71", 2},
	{"Left Sidebar", "left-sidebar", "leftsidebar", "Posts displayed in the left sidebar", "#f39c12", 3},
	{"Bottom Section", "bottom-section", "bottom", "Posts displayed in the bottom section", "#e74c3c", 4},
	{"Featured Content", "featured-content", "featured", "Featured posts for special highlighting", "#9b59b6", 5},
	{"Header Banner", "header-banner", "header", "Posts displayed in header banner area", "#1abc9c", 6},
	{"Footer Area", "footer-area", "footer", "Posts displayed in footer area", "#34495e", 7},
}

// Seed populates the database with initial development data: a default
// admin user and the default placement set. No-op when data exists.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedPlacements(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@pressadmin.local", string(hash), "Admin", "User", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@pressadmin.local",
		"password", "admin",
	)
	return nil
}

func seedPlacements(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM placements").Scan(&count); err != nil {
		return fmt.Errorf("seed check placements: %w", err)
	}
	if count > 0 {
		slog.Info("placements already seeded, skipping")
		return nil
	}

	for _, p := range defaultPlacements {
		_, err := db.Exec(`
			INSERT INTO placements (name, slug, sub_category, description, color, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.Name, p.Slug, p.SubCategory, p.Description, p.Color, p.SortOrder)
		if err != nil {
			return fmt.Errorf("seed placement %s: %w", p.Slug, err)
		}
	}

	slog.Info("database seeded with default placements", "count", len(defaultPlacements))
	return nil
}
