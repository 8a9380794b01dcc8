// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"pressadmin/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// principalKey is the context key for the authenticated principal.
	principalKey contextKey = "principal"
)

// Authenticator resolves a bearer token into a principal.
// *auth.Tokens implements it.
type Authenticator interface {
	Verify(token string) (auth.Principal, error)
}

// unauthorized is set by the router to render the 401 envelope; the
// middleware package stays free of the response-shape dependency.
type unauthorizedWriter func(w http.ResponseWriter, r *http.Request, message string)

// RequireAuth rejects requests without a valid Authorization bearer
// token and stores the resolved principal in the request context.
// Downstream handlers access it via PrincipalFromCtx().
func RequireAuth(tokens Authenticator, deny unauthorizedWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				deny(w, r, "authorization header required")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				deny(w, r, "invalid authorization header format")
				return
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				deny(w, r, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromCtx extracts the authenticated principal from the request
// context. The second return is false on routes outside RequireAuth.
func PrincipalFromCtx(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}

// WithPrincipal returns a context carrying the given principal. Test hook.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
