package handlers

import (
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressadmin/internal/models"
)

// fieldErrors collects validation failures so a bad request reports
// every problem at once.
type fieldErrors []string

func (e *fieldErrors) require(value, field string) {
	if strings.TrimSpace(value) == "" {
		*e = append(*e, field+" is required")
	}
}

func (e *fieldErrors) maxLen(value, field string, max int) {
	if len(value) > max {
		*e = append(*e, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

func (e *fieldErrors) email(value, field string) {
	if _, err := mail.ParseAddress(value); err != nil {
		*e = append(*e, field+" must be a valid email address")
	}
}

func (e fieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return models.NewValidationError(strings.Join(e, "; "))
}

// urlUUID parses a UUID route parameter.
func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, models.NewValidationError("invalid " + name)
	}
	return id, nil
}

// queryParam reads the first non-empty value among the given parameter
// names. Later names are aliases kept for older clients.
func queryParam(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := r.URL.Query().Get(name); v != "" {
			return v
		}
	}
	return ""
}

// queryInt reads an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, def int, names ...string) int {
	raw := queryParam(r, names...)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
