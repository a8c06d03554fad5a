package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/whisperboard/backend/internal/domain"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mod := &moderationServiceMock{
		statsFunc: func(_ context.Context, _ domain.Viewer) (*domain.PlatformStats, error) {
			return &domain.PlatformStats{}, nil
		},
	}
	noLimit := func(next http.Handler) http.Handler { return next }

	return NewRouter(
		NewConfessionHandler(&feedServiceMock{}, &ledgerServiceMock{}, testLogger()),
		NewAdminHandler(mod, testLogger()),
		NewHealthHandler(&dbPingerMock{}, "test"),
		noLimit,
	)
}

func TestRouter_AdminRoutesGuarded(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// Guest gets 401 before the handler runs.
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("guest: expected 401, got %d", rec.Code)
	}

	// Authenticated member gets 403.
	req = authedRequest(http.MethodGet, "/admin/stats", nil, uuid.New(), "MEMBER")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("member: expected 403, got %d", rec.Code)
	}

	// Admin passes through to the handler.
	req = authedRequest(http.MethodGet, "/admin/stats", nil, uuid.New(), "ADMIN")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}
}

func TestRouter_PublicRoutesOpen(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	for _, target := range []string{"/confessions", "/live", "/ready", "/health"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/confessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
