package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies what happened to an evaluation.
type Action string

const (
	ActionEvaluationCreated  Action = "evaluation.created"
	ActionEvaluationFetched  Action = "evaluation.fetched"
	ActionEvaluationExported Action = "evaluation.exported"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time `json:"timestamp"`
	UserID       string    `json:"user_id"`
	EvaluationID uuid.UUID `json:"evaluation_id"`
	Action       Action    `json:"action"`
	LoanPurpose  string    `json:"loan_purpose,omitempty"`
	ItemCount    int       `json:"item_count,omitempty"`
}
