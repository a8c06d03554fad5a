package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/whisperboard/backend/internal/domain"
)

type moderationService interface {
	SetHidden(ctx context.Context, viewer domain.Viewer, id uuid.UUID, hidden bool) (*domain.Confession, error)
	Remove(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error
	ListReports(ctx context.Context, viewer domain.Viewer, limit int) ([]domain.ReportWithConfession, error)
	Stats(ctx context.Context, viewer domain.Viewer) (*domain.PlatformStats, error)
}

// AdminHandler serves the moderation endpoints. Routes are mounted behind
// the admin middleware guard; the service re-checks the role anyway.
type AdminHandler struct {
	moderation moderationService
	log        *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(moderation moderationService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		log:        logger.With("handler", "admin"),
	}
}

type setHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

type setHiddenResponse struct {
	ID       string `json:"id"`
	IsHidden bool   `json:"isHidden"`
}

// SetHidden handles POST /admin/confessions/{id}/hide.
func (h *AdminHandler) SetHidden(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req setHiddenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.moderation.SetHidden(r.Context(), viewerFromCtx(r), id, req.Hidden)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, setHiddenResponse{
		ID:       c.ID.String(),
		IsHidden: c.State == domain.StateHidden,
	})
}

// Remove handles DELETE /admin/confessions/{id}.
func (h *AdminHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.moderation.Remove(r.Context(), viewerFromCtx(r), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reportItemResponse struct {
	ID           string                   `json:"id"`
	ConfessionID string                   `json:"confessionId"`
	ReporterID   string                   `json:"reporterId"`
	Reason       string                   `json:"reason"`
	CreatedAt    time.Time                `json:"createdAt"`
	Confession   reportConfessionResponse `json:"confession"`
}

type reportConfessionResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	IsRemoved bool      `json:"isRemoved"`
}

// Reports handles GET /admin/reports?limit=N.
func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, r, h.log, domain.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}

	reports, err := h.moderation.ListReports(r.Context(), viewerFromCtx(r), limit)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items := make([]reportItemResponse, 0, len(reports))
	for _, rep := range reports {
		items = append(items, reportItemResponse{
			ID:           rep.ID.String(),
			ConfessionID: rep.ConfessionID.String(),
			ReporterID:   rep.ReporterID.String(),
			Reason:       rep.Reason,
			CreatedAt:    rep.CreatedAt,
			Confession: reportConfessionResponse{
				ID:        rep.Confession.ID.String(),
				Body:      rep.Confession.Body,
				Image:     rep.Confession.Image,
				CreatedAt: rep.Confession.CreatedAt,
				IsRemoved: rep.Confession.IsRemoved,
			},
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"reports": items})
}

type statsResponse struct {
	Confessions int `json:"confessions"`
	Likes       int `json:"likes"`
	Comments    int `json:"comments"`
	Reports     int `json:"reports"`
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.moderation.Stats(r.Context(), viewerFromCtx(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Confessions: stats.Confessions,
		Likes:       stats.Likes,
		Comments:    stats.Comments,
		Reports:     stats.Reports,
	})
}
