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
	"github.com/whisperboard/backend/internal/service/feed"
	"github.com/whisperboard/backend/internal/service/ledger"
	"github.com/whisperboard/backend/internal/service/visibility"
)

type feedService interface {
	List(ctx context.Context, viewer domain.Viewer, input feed.ListInput) (*feed.Page, error)
	Get(ctx context.Context, viewer domain.Viewer, id uuid.UUID) (*feed.Detail, error)
}

type ledgerService interface {
	CreateConfession(ctx context.Context, viewer domain.Viewer, input ledger.CreateConfessionInput) (*domain.Confession, error)
	ToggleLike(ctx context.Context, viewer domain.Viewer, confessionID uuid.UUID) (bool, error)
	AddComment(ctx context.Context, viewer domain.Viewer, confessionID uuid.UUID, body string) (*domain.Comment, error)
	AddReport(ctx context.Context, viewer domain.Viewer, confessionID uuid.UUID, reason string) (bool, error)
}

// ConfessionHandler serves the public confession endpoints.
type ConfessionHandler struct {
	feed   feedService
	ledger ledgerService
	log    *slog.Logger
}

// NewConfessionHandler creates a ConfessionHandler.
func NewConfessionHandler(feed feedService, ledger ledgerService, logger *slog.Logger) *ConfessionHandler {
	return &ConfessionHandler{
		feed:   feed,
		ledger: ledger,
		log:    logger.With("handler", "confession"),
	}
}

type confessionResponse struct {
	ID            string    `json:"id"`
	Body          string    `json:"body"`
	Image         *string   `json:"image,omitempty"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	IsLiked       bool      `json:"isLiked"`
	CreatedAt     time.Time `json:"createdAt"`

	// Moderation fields, present in admin responses only.
	AuthorID *string `json:"authorId,omitempty"`
	IsHidden *bool   `json:"isHidden,omitempty"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type listResponse struct {
	Confessions []confessionResponse `json:"confessions"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"pageSize"`
}

type detailResponse struct {
	confessionResponse
	Comments []commentResponse `json:"comments"`
}

func toConfessionResponse(p visibility.Projection) confessionResponse {
	resp := confessionResponse{
		ID:            p.ID.String(),
		Body:          p.Body,
		Image:         p.Image,
		LikesCount:    p.LikeCount,
		CommentsCount: p.CommentCount,
		IsLiked:       p.IsLiked,
		CreatedAt:     p.CreatedAt,
		IsHidden:      p.IsHidden,
	}
	if p.AuthorID != nil {
		s := p.AuthorID.String()
		resp.AuthorID = &s
	}
	return resp
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

// List handles GET /confessions?page&pageSize&sort&search.
func (h *ConfessionHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := listInputFromQuery(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	page, err := h.feed.List(r.Context(), viewerFromCtx(r), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items := make([]confessionResponse, 0, len(page.Confessions))
	for _, p := range page.Confessions {
		items = append(items, toConfessionResponse(p))
	}

	writeJSON(w, http.StatusOK, listResponse{
		Confessions: items,
		Page:        page.Page,
		PageSize:    page.PageSize,
	})
}

func listInputFromQuery(r *http.Request) (feed.ListInput, error) {
	q := r.URL.Query()
	input := feed.ListInput{
		Sort:   domain.SortMode(q.Get("sort")),
		Search: q.Get("search"),
	}

	// An absent param means "use the default"; a supplied param must be a
	// positive integer, so an explicit page=0 or pageSize=0 is rejected
	// here rather than silently treated as absent.
	var errs []domain.FieldError
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, domain.FieldError{Field: "page", Message: "must be a positive integer"})
		}
		input.Page = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, domain.FieldError{Field: "pageSize", Message: "must be a positive integer"})
		}
		input.PageSize = n
	}
	if len(errs) > 0 {
		return feed.ListInput{}, domain.NewValidationErrors(errs)
	}

	return input, nil
}

// Get handles GET /confessions/{id}.
func (h *ConfessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	detail, err := h.feed.Get(r.Context(), viewerFromCtx(r), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	comments := make([]commentResponse, 0, len(detail.Comments))
	for _, c := range detail.Comments {
		comments = append(comments, toCommentResponse(c))
	}

	writeJSON(w, http.StatusOK, detailResponse{
		confessionResponse: toConfessionResponse(detail.Projection),
		Comments:           comments,
	})
}

type createConfessionRequest struct {
	Body  string  `json:"body"`
	Image *string `json:"image"`
}

// Create handles POST /confessions.
func (h *ConfessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createConfessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.ledger.CreateConfession(r.Context(), viewerFromCtx(r), ledger.CreateConfessionInput{
		Body:  req.Body,
		Image: req.Image,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, confessionResponse{
		ID:        c.ID.String(),
		Body:      c.Body,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
	})
}

// Like handles POST /confessions/{id}/like.
func (h *ConfessionHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	liked, err := h.ledger.ToggleLike(r.Context(), viewerFromCtx(r), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

type addCommentRequest struct {
	Body string `json:"body"`
}

// Comment handles POST /confessions/{id}/comments.
func (h *ConfessionHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.ledger.AddComment(r.Context(), viewerFromCtx(r), id, req.Body)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(*c))
}

type reportRequest struct {
	Reason string `json:"reason"`
}

type reportResponse struct {
	Reported        bool `json:"reported"`
	AlreadyReported bool `json:"alreadyReported,omitempty"`
}

// Report handles POST /confessions/{id}/report. A duplicate report is not
// an error: it responds 200 instead of 201 and flags alreadyReported.
func (h *ConfessionHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	already, err := h.ledger.AddReport(r.Context(), viewerFromCtx(r), id, req.Reason)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	status := http.StatusCreated
	if already {
		status = http.StatusOK
	}
	writeJSON(w, status, reportResponse{Reported: true, AlreadyReported: already})
}
