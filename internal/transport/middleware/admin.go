package middleware

import (
	"net/http"

	"github.com/whisperboard/backend/internal/domain"
	"github.com/whisperboard/backend/pkg/ctxutil"
)

// RequireAdmin guards the admin route group. The moderation service checks
// the viewer's role again; this guard just keeps non-admin traffic from
// reaching those handlers at all.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := ctxutil.IdentityFromCtx(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if id.Role != string(domain.RoleAdmin) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
