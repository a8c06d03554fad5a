package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/whisperboard/backend/internal/domain"
)

type moderationServiceMock struct {
	setHiddenFunc func(ctx context.Context, viewer domain.Viewer, id uuid.UUID, hidden bool) (*domain.Confession, error)
	removeFunc    func(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error
	reportsFunc   func(ctx context.Context, viewer domain.Viewer, limit int) ([]domain.ReportWithConfession, error)
	statsFunc     func(ctx context.Context, viewer domain.Viewer) (*domain.PlatformStats, error)
}

func (m *moderationServiceMock) SetHidden(ctx context.Context, viewer domain.Viewer, id uuid.UUID, hidden bool) (*domain.Confession, error) {
	return m.setHiddenFunc(ctx, viewer, id, hidden)
}

func (m *moderationServiceMock) Remove(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error {
	return m.removeFunc(ctx, viewer, id)
}

func (m *moderationServiceMock) ListReports(ctx context.Context, viewer domain.Viewer, limit int) ([]domain.ReportWithConfession, error) {
	return m.reportsFunc(ctx, viewer, limit)
}

func (m *moderationServiceMock) Stats(ctx context.Context, viewer domain.Viewer) (*domain.PlatformStats, error) {
	return m.statsFunc(ctx, viewer)
}

func TestAdminSetHidden(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	mod := &moderationServiceMock{
		setHiddenFunc: func(_ context.Context, viewer domain.Viewer, gotID uuid.UUID, hidden bool) (*domain.Confession, error) {
			if !viewer.IsAdmin() {
				t.Errorf("expected admin viewer")
			}
			if gotID != id || !hidden {
				t.Errorf("unexpected args: id=%s hidden=%v", gotID, hidden)
			}
			return &domain.Confession{ID: id, State: domain.StateHidden}, nil
		},
	}
	h := NewAdminHandler(mod, testLogger())

	req := authedRequest(http.MethodPost, "/admin/confessions/"+id.String()+"/hide", strings.NewReader(`{"hidden":true}`), uuid.New(), "ADMIN")
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.SetHidden(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp setHiddenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != id.String() || !resp.IsHidden {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAdminSetHidden_RemovedTarget404(t *testing.T) {
	t.Parallel()

	mod := &moderationServiceMock{
		setHiddenFunc: func(_ context.Context, _ domain.Viewer, _ uuid.UUID, _ bool) (*domain.Confession, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewAdminHandler(mod, testLogger())

	id := uuid.NewString()
	req := authedRequest(http.MethodPost, "/admin/confessions/"+id+"/hide", strings.NewReader(`{"hidden":false}`), uuid.New(), "ADMIN")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.SetHidden(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminSetHidden_MalformedBody(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(&moderationServiceMock{}, testLogger())

	id := uuid.NewString()
	req := authedRequest(http.MethodPost, "/admin/confessions/"+id+"/hide", strings.NewReader(`{"hidden":`), uuid.New(), "ADMIN")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.SetHidden(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminRemove_NoContent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	removed := false
	mod := &moderationServiceMock{
		removeFunc: func(_ context.Context, _ domain.Viewer, gotID uuid.UUID) error {
			if gotID != id {
				t.Errorf("expected id %s, got %s", id, gotID)
			}
			removed = true
			return nil
		},
	}
	h := NewAdminHandler(mod, testLogger())

	req := authedRequest(http.MethodDelete, "/admin/confessions/"+id.String(), nil, uuid.New(), "ADMIN")
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	h.Remove(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !removed {
		t.Errorf("remove was not called")
	}
}

func TestAdminReports_LimitAndShape(t *testing.T) {
	t.Parallel()

	mod := &moderationServiceMock{
		reportsFunc: func(_ context.Context, _ domain.Viewer, limit int) ([]domain.ReportWithConfession, error) {
			if limit != 10 {
				t.Errorf("expected limit 10, got %d", limit)
			}
			return []domain.ReportWithConfession{{
				Report: domain.Report{
					ID:           uuid.New(),
					ConfessionID: uuid.New(),
					ReporterID:   uuid.New(),
					Reason:       "offensive",
					CreatedAt:    time.Now(),
				},
				Confession: domain.ConfessionPreview{
					ID:        uuid.New(),
					Body:      "deleted already",
					IsRemoved: true,
				},
			}}, nil
		},
	}
	h := NewAdminHandler(mod, testLogger())

	req := authedRequest(http.MethodGet, "/admin/reports?limit=10", nil, uuid.New(), "ADMIN")
	rec := httptest.NewRecorder()
	h.Reports(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Reports []reportItemResponse `json:"reports"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(resp.Reports))
	}
	got := resp.Reports[0]
	if got.Reason != "offensive" || !got.Confession.IsRemoved {
		t.Errorf("unexpected report payload: %+v", got)
	}
}

func TestAdminReports_NonNumericLimit(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(&moderationServiceMock{}, testLogger())

	req := authedRequest(http.MethodGet, "/admin/reports?limit=many", nil, uuid.New(), "ADMIN")
	rec := httptest.NewRecorder()
	h.Reports(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminStats(t *testing.T) {
	t.Parallel()

	mod := &moderationServiceMock{
		statsFunc: func(_ context.Context, _ domain.Viewer) (*domain.PlatformStats, error) {
			return &domain.PlatformStats{Confessions: 7, Likes: 15, Comments: 9, Reports: 2}, nil
		},
	}
	h := NewAdminHandler(mod, testLogger())

	req := authedRequest(http.MethodGet, "/admin/stats", nil, uuid.New(), "ADMIN")
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := statsResponse{Confessions: 7, Likes: 15, Comments: 9, Reports: 2}
	if resp != want {
		t.Errorf("expected %+v, got %+v", want, resp)
	}
}
