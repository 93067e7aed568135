package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"docready/internal/domain"
	"docready/internal/recommendation/store"
	dErrors "docready/pkg/domain-errors"
	"docready/pkg/platform/httputil"
	"docready/pkg/requestcontext"
)

// Service defines the interface for evaluation operations.
type Service interface {
	Evaluate(ctx context.Context, userID string, app domain.LoanApplication) (*store.Evaluation, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*store.Evaluation, error)
	List(ctx context.Context, userID string) ([]*store.Evaluation, error)
	Export(ctx context.Context, userID string, id uuid.UUID) (string, error)
}

// Handler wires recommendation endpoints to the evaluation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a recommendation handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts recommendation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/recommendations/evaluate", h.HandleEvaluate)
	r.Get("/recommendations", h.HandleList)
	r.Get("/recommendations/{id}", h.HandleGet)
	r.Get("/recommendations/{id}/export", h.HandleExport)
}

// HandleEvaluate handles POST /recommendations/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	eval, err := h.service.Evaluate(ctx, userID, req.Application)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"user_id", userID,
			"loan_purpose", req.Application.LoanPurpose,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "evaluation created",
		"request_id", requestID,
		"user_id", userID,
		"evaluation_id", eval.ID,
		"loan_purpose", req.Application.LoanPurpose,
		"item_count", eval.Recommendations.Total(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromEvaluation(eval))
}

// HandleGet handles GET /recommendations/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	eval, err := h.service.Get(ctx, userID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvaluation(eval))
}

// HandleList handles GET /recommendations requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}

	evals, err := h.service.List(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation list failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvaluations(evals))
}

// HandleExport handles GET /recommendations/{id}/export requests.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUser(w, ctx)
	if !ok {
		return
	}
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	csv, err := h.service.Export(ctx, userID, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="recommendations.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

func (h *Handler) requireUser(w http.ResponseWriter, ctx context.Context) (string, bool) {
	userID := requestcontext.UserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return userID, true
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "id must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
