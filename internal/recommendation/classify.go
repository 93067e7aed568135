package recommendation

import (
	"strings"

	"docready/internal/domain"
)

// Intake systems send income and liability types as free text. The
// classifiers below normalize those values into tags once, so the rule
// table matches on tags instead of scattering substring checks. Anything
// that matches no known tag lands in the unclassified bucket and is
// surfaced by the engine rather than silently skipped.

// IncomeTag is the normalized income stream classification.
type IncomeTag string

const (
	IncomeBonus        IncomeTag = "bonus"
	IncomeOvertime     IncomeTag = "overtime"
	IncomeCommission   IncomeTag = "commission"
	IncomeRental       IncomeTag = "rental"
	IncomeSCorp        IncomeTag = "s_corp"
	IncomePartnership  IncomeTag = "partnership"
	IncomeUnclassified IncomeTag = "unclassified"
)

// ClassifyIncome maps a free-form income type to its tag using
// case-insensitive substring matching, preserving the intake convention.
func ClassifyIncome(raw string) IncomeTag {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return IncomeUnclassified
	case strings.Contains(s, "s-corp") || strings.Contains(s, "s corp") || strings.Contains(s, "s corporation"):
		return IncomeSCorp
	case strings.Contains(s, "partnership"):
		return IncomePartnership
	case strings.Contains(s, "bonus"):
		return IncomeBonus
	case strings.Contains(s, "overtime"):
		return IncomeOvertime
	case strings.Contains(s, "commission"):
		return IncomeCommission
	case strings.Contains(s, "rental"):
		return IncomeRental
	}
	return IncomeUnclassified
}

// IsVariable reports whether the income stream needs a written VOE
// confirming a two-year history.
func (t IncomeTag) IsVariable() bool {
	return t == IncomeBonus || t == IncomeOvertime || t == IncomeCommission
}

// LiabilityTag is the normalized liability classification.
type LiabilityTag string

const (
	LiabilityMortgage     LiabilityTag = "mortgage"
	LiabilityHELOC        LiabilityTag = "heloc"
	LiabilityUnclassified LiabilityTag = "unclassified"
)

// ClassifyLiability maps a free-form liability type to its tag. Only
// property liens are distinguished; everything else is unclassified.
func ClassifyLiability(raw string) LiabilityTag {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "heloc"):
		return LiabilityHELOC
	case strings.Contains(s, "mortgage"):
		return LiabilityMortgage
	}
	return LiabilityUnclassified
}

// citizenshipDocs enumerates which residency documents a borrower owes.
type citizenshipDocs int

const (
	citizenshipNone citizenshipDocs = iota
	citizenshipGreenCard
	citizenshipEADVisa
)

// classifyCitizenship reproduces the intake matching order: anything
// containing "citizen" or "us" owes nothing, then "permanent"/"resident"
// selects the I-551, and every other non-empty value owes an EAD or visa.
// Non-permanent-resident values fall into the resident bucket; that is the
// documented upstream behavior.
func classifyCitizenship(c domain.CitizenshipType) citizenshipDocs {
	s := strings.ToLower(strings.TrimSpace(string(c)))
	if s == "" {
		return citizenshipNone
	}
	if strings.Contains(s, "citizen") || strings.Contains(s, "us") {
		return citizenshipNone
	}
	if strings.Contains(s, "permanent") || strings.Contains(s, "resident") {
		return citizenshipGreenCard
	}
	return citizenshipEADVisa
}

// isInvestmentProperty flags REO records whose type marks them as
// investment holdings.
func isInvestmentProperty(propertyType string) bool {
	return strings.Contains(strings.ToLower(propertyType), "invest")
}
