// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"pressadmin/internal/auth"
	"pressadmin/internal/models"
)

type fakeAuthenticator struct {
	principal auth.Principal
	err       error
}

func (f *fakeAuthenticator) Verify(string) (auth.Principal, error) {
	return f.principal, f.err
}

func denyWith(status int) (unauthorizedWriter, *int) {
	var calls int
	return func(w http.ResponseWriter, r *http.Request, message string) {
		calls++
		w.WriteHeader(status)
	}, &calls
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	deny, calls := denyWith(http.StatusUnauthorized)
	handler := RequireAuth(&fakeAuthenticator{}, deny)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run without a token")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized || *calls != 1 {
		t.Errorf("code = %d, deny calls = %d", rec.Code, *calls)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	deny, calls := denyWith(http.StatusUnauthorized)
	handler := RequireAuth(&fakeAuthenticator{}, deny)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run with a malformed header")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if *calls != 1 {
		t.Errorf("deny calls = %d", *calls)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	deny, calls := denyWith(http.StatusUnauthorized)
	authn := &fakeAuthenticator{err: errors.New("bad token")}
	handler := RequireAuth(authn, deny)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run with an invalid token")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if *calls != 1 {
		t.Errorf("deny calls = %d", *calls)
	}
}

func TestRequireAuth_ValidTokenExposesPrincipal(t *testing.T) {
	want := auth.Principal{ID: uuid.New(), Role: models.RoleEditor}
	deny, _ := denyWith(http.StatusUnauthorized)

	var got auth.Principal
	var ok bool
	handler := RequireAuth(&fakeAuthenticator{principal: want}, deny)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			got, ok = PrincipalFromCtx(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !ok || got != want {
		t.Errorf("principal = %+v ok=%v, want %+v", got, ok, want)
	}
}

func TestPrincipalFromCtx_AbsentOutsideAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := PrincipalFromCtx(req.Context()); ok {
		t.Error("principal reported on unauthenticated request")
	}
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first requests blocked: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("client %s blocked on first request", addr)
		}
	}
}
