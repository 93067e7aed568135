// Package recommendation derives the supporting-document checklist and
// coverage statistics for a loan application snapshot. Evaluation is pure:
// no I/O, no mutation of the input, deterministic item order.
package recommendation

// Policy holds the lender thresholds referenced by the rule set. Lifting
// them out of the rules keeps the table testable and overridable per
// lender without code changes.
type Policy struct {
	// HistoryMonths is the employment and residence history window the
	// application must cover.
	HistoryMonths int

	// GapReviewDays is the gap length above which a letter of explanation
	// goes to review.
	GapReviewDays int

	// PayStubDays is the recency window for pay stubs.
	PayStubDays int

	// W2Years is the number of years of W-2 forms collected.
	W2Years int

	// TaxReturnYears is the number of years of personal and business
	// returns collected from self-employed borrowers.
	TaxReturnYears int

	// AssetStatementMonths is the number of months of account statements
	// collected per asset.
	AssetStatementMonths int

	// RentReceiptMonths is the number of months of rent receipts collected
	// alongside lease agreements for rental income.
	RentReceiptMonths int
}

// DefaultPolicy returns the standard conforming-loan thresholds.
func DefaultPolicy() Policy {
	return Policy{
		HistoryMonths:        24,
		GapReviewDays:        30,
		PayStubDays:          30,
		W2Years:              2,
		TaxReturnYears:       2,
		AssetStatementMonths: 2,
		RentReceiptMonths:    2,
	}
}
