package handler

import (
	"docready/internal/domain"
	dErrors "docready/pkg/domain-errors"
)

// maxBorrowers bounds request size; intake never sends more than four
// applicants on a single loan.
const maxBorrowers = 8

// EvaluateRequest is the HTTP request body for POST /recommendations/evaluate.
type EvaluateRequest struct {
	Application domain.LoanApplication `json:"application"`
}

// Validate validates and normalizes the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	switch r.Application.LoanPurpose {
	case domain.LoanPurposeUnset, domain.LoanPurposePurchase,
		domain.LoanPurposeRefinance, domain.LoanPurposeCashOut:
	default:
		return dErrors.New(dErrors.CodeValidation, "loan_purpose must be purchase, refinance, or cash_out")
	}

	if len(r.Application.Borrowers) > maxBorrowers {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d borrowers are supported", maxBorrowers)
	}

	for _, b := range r.Application.Borrowers {
		for _, rec := range b.EmploymentHistory {
			switch rec.Status {
			case domain.EmploymentPresent, domain.EmploymentPrior, "":
			default:
				return dErrors.New(dErrors.CodeValidation, "employment status must be present or prior")
			}
		}
	}

	r.Application.Normalize()
	return nil
}
