package handler

import (
	"time"

	"docready/internal/domain"
	"docready/internal/recommendation/store"
)

// EvaluationResponse is the HTTP response for evaluation endpoints.
type EvaluationResponse struct {
	ID              string                   `json:"id"`
	LoanPurpose     string                   `json:"loan_purpose,omitempty"`
	Recommendations domain.RecommendationSet `json:"recommendations"`
	Coverage        domain.CoverageStats     `json:"coverage"`
	CreatedAt       time.Time                `json:"created_at"`
}

// ListResponse is the HTTP response for GET /recommendations.
type ListResponse struct {
	Evaluations []*EvaluationResponse `json:"evaluations"`
}

// FromEvaluation converts a stored evaluation to an HTTP response.
func FromEvaluation(eval *store.Evaluation) *EvaluationResponse {
	return &EvaluationResponse{
		ID:              eval.ID.String(),
		LoanPurpose:     string(eval.LoanPurpose),
		Recommendations: eval.Recommendations,
		Coverage:        eval.Coverage,
		CreatedAt:       eval.CreatedAt,
	}
}

// FromEvaluations converts a list of stored evaluations.
func FromEvaluations(evals []*store.Evaluation) *ListResponse {
	out := make([]*EvaluationResponse, 0, len(evals))
	for _, eval := range evals {
		out = append(out, FromEvaluation(eval))
	}
	return &ListResponse{Evaluations: out}
}
