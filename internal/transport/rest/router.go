package rest

import (
	"net/http"

	"github.com/whisperboard/backend/internal/transport/middleware"
)

// NewRouter assembles the route table. Mutating routes carry the rate
// limiter, moderation routes carry the admin guard. Cross-cutting
// middleware such as auth and logging is applied by the caller around
// the returned handler.
func NewRouter(
	confessions *ConfessionHandler,
	admin *AdminHandler,
	health *HealthHandler,
	rateLimit middleware.Middleware,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /confessions", confessions.List)
	mux.HandleFunc("GET /confessions/{id}", confessions.Get)
	mux.Handle("POST /confessions", rateLimit(http.HandlerFunc(confessions.Create)))
	mux.Handle("POST /confessions/{id}/like", rateLimit(http.HandlerFunc(confessions.Like)))
	mux.Handle("POST /confessions/{id}/comments", rateLimit(http.HandlerFunc(confessions.Comment)))
	mux.Handle("POST /confessions/{id}/report", rateLimit(http.HandlerFunc(confessions.Report)))

	adminOnly := middleware.RequireAdmin()
	mux.Handle("POST /admin/confessions/{id}/hide", adminOnly(http.HandlerFunc(admin.SetHidden)))
	mux.Handle("DELETE /admin/confessions/{id}", adminOnly(http.HandlerFunc(admin.Remove)))
	mux.Handle("GET /admin/reports", adminOnly(http.HandlerFunc(admin.Reports)))
	mux.Handle("GET /admin/stats", adminOnly(http.HandlerFunc(admin.Stats)))

	return mux
}
