// Package store persists completed checklist evaluations so prior results
// can be fetched and exported without re-running the engine. Stores are
// interface-driven to keep the service testable and to allow swapping
// in-memory and PostgreSQL persistence without rewiring business code.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"docready/internal/domain"
	dErrors "docready/pkg/domain-errors"
)

// Evaluation is one stored engine run: the input identity, the checklist
// it produced, and the coverage summary.
type Evaluation struct {
	ID              uuid.UUID                `json:"id"`
	UserID          string                   `json:"user_id"`
	LoanPurpose     domain.LoanPurpose       `json:"loan_purpose"`
	Recommendations domain.RecommendationSet `json:"recommendations"`
	Coverage        domain.CoverageStats     `json:"coverage"`
	CreatedAt       time.Time                `json:"created_at"`
}

// EvaluationStore persists evaluations.
type EvaluationStore interface {
	Save(ctx context.Context, eval *Evaluation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Evaluation, error)
	ListByUser(ctx context.Context, userID string) ([]*Evaluation, error)
}

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "evaluation not found")
