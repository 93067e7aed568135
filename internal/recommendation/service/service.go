// Package service orchestrates checklist evaluation: it runs the rule
// engine, persists the result, and fans out to the cache and audit stream.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"docready/internal/audit"
	"docready/internal/domain"
	"docready/internal/recommendation"
	"docready/internal/recommendation/export"
	"docready/internal/recommendation/metrics"
	"docready/internal/recommendation/store"
	dErrors "docready/pkg/domain-errors"
	"docready/pkg/requestcontext"
)

const tracerName = "docready/recommendation"

// Cache is a read-through cache in front of the durable store. A nil
// evaluation with a nil error signals a miss.
type Cache interface {
	Get(ctx context.Context, id uuid.UUID) (*store.Evaluation, error)
	Set(ctx context.Context, eval *store.Evaluation) error
}

// AuditPublisher records evaluation lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service runs the checklist engine and manages stored evaluations.
type Service struct {
	engine *recommendation.Engine
	store  store.EvaluationStore

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	cache          Cache
	tracer         trace.Tracer
	now            func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithNow overrides the timestamp source for stored evaluations.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service.
func New(engine *recommendation.Engine, evaluations store.EvaluationStore, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		store:  evaluations,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Evaluate runs the checklist engine over the application and persists the
// result under the authenticated user.
func (s *Service) Evaluate(ctx context.Context, userID string, app domain.LoanApplication) (*store.Evaluation, error) {
	ctx, span := s.tracer.Start(ctx, "recommendation.Evaluate")
	defer span.End()

	start := s.now()

	app.Normalize()
	set := s.engine.Evaluate(app)
	coverage := s.engine.CoverageStats(app.Borrowers)

	eval := &store.Evaluation{
		ID:              uuid.New(),
		UserID:          userID,
		LoanPurpose:     app.LoanPurpose,
		Recommendations: set,
		Coverage:        coverage,
		CreatedAt:       start,
	}

	// Persistence, cache, and audit are independent; run them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.store.Save(gctx, eval)
	})
	if s.cache != nil {
		g.Go(func() error {
			if err := s.cache.Set(gctx, eval); err != nil {
				// Cache failures must not fail the evaluation.
				s.logger.WarnContext(gctx, "evaluation cache write failed",
					"request_id", requestcontext.RequestID(ctx),
					"evaluation_id", eval.ID,
					"error", err,
				)
			}
			return nil
		})
	}
	if s.auditPublisher != nil {
		g.Go(func() error {
			return s.auditPublisher.Emit(gctx, audit.Event{
				UserID:       userID,
				EvaluationID: eval.ID,
				Action:       audit.ActionEvaluationCreated,
				LoanPurpose:  string(app.LoanPurpose),
				ItemCount:    eval.Recommendations.Total(),
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save evaluation")
	}

	s.recordMetrics(eval, s.now().Sub(start))
	s.logger.InfoContext(ctx, "application evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"evaluation_id", eval.ID,
		"loan_purpose", app.LoanPurpose,
		"item_count", eval.Recommendations.Total(),
	)
	return eval, nil
}

// Get fetches a stored evaluation, enforcing that it belongs to the caller.
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*store.Evaluation, error) {
	eval, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	// Hide other users' evaluations rather than acknowledging them.
	if eval.UserID != userID {
		return nil, dErrors.New(dErrors.CodeNotFound, "evaluation not found")
	}
	return eval, nil
}

// List returns the caller's evaluations in creation order.
func (s *Service) List(ctx context.Context, userID string) ([]*store.Evaluation, error) {
	evals, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list evaluations")
	}
	return evals, nil
}

// Export renders a stored evaluation's checklist as CSV.
func (s *Service) Export(ctx context.Context, userID string, id uuid.UUID) (string, error) {
	eval, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, audit.Event{
			UserID:       userID,
			EvaluationID: eval.ID,
			Action:       audit.ActionEvaluationExported,
		})
	}
	return export.CSV(&eval.Recommendations), nil
}

func (s *Service) lookup(ctx context.Context, id uuid.UUID) (*store.Evaluation, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "evaluation cache read failed",
				"request_id", requestcontext.RequestID(ctx),
				"evaluation_id", id,
				"error", err,
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	eval, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "evaluation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load evaluation")
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, eval)
	}
	return eval, nil
}

func (s *Service) recordMetrics(eval *store.Evaluation, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementEvaluation(string(eval.LoanPurpose))
	for _, category := range domain.Categories() {
		for _, item := range eval.Recommendations.Section(category) {
			s.metrics.IncrementItem(string(item.Status), string(category))
		}
	}
	s.metrics.ObserveCoverageGap(eval.Coverage.EmploymentCoverage.Needed)
	s.metrics.ObserveEvaluateLatency(elapsed)
}
