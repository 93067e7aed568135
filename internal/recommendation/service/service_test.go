package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"docready/internal/audit"
	"docready/internal/domain"
	"docready/internal/recommendation"
	"docready/internal/recommendation/store"
	dErrors "docready/pkg/domain-errors"
)

// ============================================================
// Test doubles
// ============================================================

type fakeCache struct {
	entries map[uuid.UUID]*store.Evaluation
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]*store.Evaluation)}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*store.Evaluation, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[id], nil
}

func (c *fakeCache) Set(_ context.Context, eval *store.Evaluation) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[eval.ID] = eval
	return nil
}

type failingStore struct {
	store.EvaluationStore
}

func (failingStore) Save(context.Context, *store.Evaluation) error {
	return errors.New("database down")
}

// ============================================================
// Suite
// ============================================================

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.InMemoryStore
	cache   *fakeCache
	audits  *audit.InMemoryStore
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemoryStore()
	s.cache = newFakeCache()
	s.audits = audit.NewInMemoryStore()

	engine := recommendation.NewEngine(recommendation.WithClock(func() time.Time {
		return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	}))
	s.service = New(engine, s.store,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithCache(s.cache),
		WithAuditPublisher(audit.NewPublisher(s.audits)),
	)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func purchaseApplication() domain.LoanApplication {
	return domain.LoanApplication{
		LoanPurpose: domain.LoanPurposePurchase,
		Borrowers: []domain.Borrower{{
			FirstName: "Avery",
			LastName:  "Quinn",
			EmploymentHistory: []domain.EmploymentRecord{{
				EmployerName: "Acme",
				StartDate:    "2023-01-10",
				Status:       domain.EmploymentPresent,
			}},
			Residences: []domain.Residence{{DurationMonths: 30}},
		}},
	}
}

// ============================================================
// Evaluate
// ============================================================

func (s *ServiceSuite) TestEvaluate() {
	s.Run("persists and returns the evaluation", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)
		s.Equal("user-1", eval.UserID)
		s.Equal(domain.LoanPurposePurchase, eval.LoanPurpose)
		s.Positive(eval.Recommendations.Total())

		saved, err := s.store.FindByID(s.ctx, eval.ID)
		s.Require().NoError(err)
		s.Equal(eval.Recommendations, saved.Recommendations)
	})

	s.Run("writes through to the cache", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)
		s.Contains(s.cache.entries, eval.ID)
	})

	s.Run("emits a creation audit event", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		events, err := s.audits.ListByUser(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		last := events[len(events)-1]
		s.Equal(audit.ActionEvaluationCreated, last.Action)
		s.Equal(eval.ID, last.EvaluationID)
		s.Equal(eval.Recommendations.Total(), last.ItemCount)
	})

	s.Run("tolerates cache write failures", func() {
		s.cache.setErr = errors.New("redis down")
		_, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)
	})

	s.Run("surfaces store failures as internal errors", func() {
		engine := recommendation.NewEngine()
		svc := New(engine, failingStore{}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

		_, err := svc.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// ============================================================
// Get / List
// ============================================================

func (s *ServiceSuite) TestGet() {
	s.Run("returns the caller's evaluation", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		found, err := s.service.Get(s.ctx, "user-1", eval.ID)
		s.Require().NoError(err)
		s.Equal(eval.ID, found.ID)
	})

	s.Run("hides other users' evaluations", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		_, err = s.service.Get(s.ctx, "user-2", eval.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("returns not_found for unknown ID", func() {
		_, err := s.service.Get(s.ctx, "user-1", uuid.New())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("serves from cache before the store", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		s.cache.gets = 0
		_, err = s.service.Get(s.ctx, "user-1", eval.ID)
		s.Require().NoError(err)
		s.Equal(1, s.cache.gets)
	})

	s.Run("falls back to the store when cache reads fail", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		s.cache.getErr = errors.New("redis down")
		found, err := s.service.Get(s.ctx, "user-1", eval.ID)
		s.Require().NoError(err)
		s.Equal(eval.ID, found.ID)
	})
}

func (s *ServiceSuite) TestList() {
	s.Run("lists only the caller's evaluations", func() {
		_, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)
		_, err = s.service.Evaluate(s.ctx, "user-2", purchaseApplication())
		s.Require().NoError(err)

		evals, err := s.service.List(s.ctx, "user-1")
		s.Require().NoError(err)
		s.Require().Len(evals, 1)
		s.Equal("user-1", evals[0].UserID)
	})
}

// ============================================================
// Export
// ============================================================

func (s *ServiceSuite) TestExport() {
	s.Run("renders the stored checklist as CSV", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		csv, err := s.service.Export(s.ctx, "user-1", eval.ID)
		s.Require().NoError(err)
		s.True(strings.HasPrefix(csv, `"Section","Item","Status","Reason"`))
		s.Contains(csv, "Executed purchase contract")
	})

	s.Run("emits an export audit event", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		_, err = s.service.Export(s.ctx, "user-1", eval.ID)
		s.Require().NoError(err)

		events, err := s.audits.ListByUser(s.ctx, "user-1")
		s.Require().NoError(err)
		last := events[len(events)-1]
		s.Equal(audit.ActionEvaluationExported, last.Action)
	})

	s.Run("rejects exports of other users' evaluations", func() {
		eval, err := s.service.Evaluate(s.ctx, "user-1", purchaseApplication())
		s.Require().NoError(err)

		_, err = s.service.Export(s.ctx, "user-2", eval.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
