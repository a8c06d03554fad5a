package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/whisperboard/backend/pkg/ctxutil"
)

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name       string
		identity   *ctxutil.Identity
		wantStatus int
	}{
		{"guest", nil, http.StatusUnauthorized},
		{"member", &ctxutil.Identity{UserID: uuid.New(), Role: "MEMBER"}, http.StatusForbidden},
		{"admin", &ctxutil.Identity{UserID: uuid.New(), Role: "ADMIN"}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			wrapped := RequireAdmin()(handler)

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			if tc.identity != nil {
				req = req.WithContext(ctxutil.WithIdentity(req.Context(), *tc.identity))
			}
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
