package recommendation

import (
	"fmt"

	"docready/internal/domain"
)

// Rule evaluation order is fixed and significant: purpose-gated general
// items first, then per-borrower items in borrower array order, then the
// application-scoped asset and credit sections. Checklist renderers and
// the CSV export rely on this order being reproduced exactly.

// purposeRules emits the general items gated on loan purpose.
func (e *Engine) purposeRules(app *domain.LoanApplication, set *domain.RecommendationSet) {
	switch app.LoanPurpose {
	case domain.LoanPurposePurchase:
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   "Executed purchase contract",
			Status: domain.StatusRequired,
			Reason: "Purchase transactions require the fully executed sales contract including all addenda.",
		})
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   "Earnest money deposit proof",
			Status: domain.StatusRequired,
			Reason: "Canceled check or wire confirmation documenting the earnest money deposit.",
		})
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   "Gift letter with donor ability evidence",
			Status: domain.StatusConditional,
			Reason: "Needed only when gift funds are used toward down payment or closing costs.",
		})
	case domain.LoanPurposeRefinance, domain.LoanPurposeCashOut:
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   "Current mortgage statement for subject property",
			Status: domain.StatusRequired,
			Reason: "Refinance transactions require the most recent statement on the loan being paid off.",
		})
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   "Copy of promissory note for subject property",
			Status: domain.StatusRequired,
			Reason: "The existing note documents the terms of the loan being refinanced.",
		})
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   "Homeowners insurance declaration page for subject property",
			Status: domain.StatusRequired,
			Reason: "Proof of current hazard coverage on the subject property.",
		})
	}
}

// borrowerRules emits the per-borrower items, tagged with the borrower name.
func (e *Engine) borrowerRules(b domain.Borrower, set *domain.RecommendationSet) {
	tag := b.Tag()

	set.Add(domain.CategoryGeneral, domain.RecommendationItem{
		Name:   tag + " Government-issued photo ID",
		Status: domain.StatusRequired,
		Reason: "Identity verification is required for every borrower.",
	})

	e.employmentCoverageRules(b, tag, set)
	e.residenceCoverageRules(b, tag, set)
	e.citizenshipRules(b, tag, set)
	e.declarationRules(b, tag, set)
	e.incomeRules(b, tag, set)

	// Unconditional per borrower: underwriters always review recent pulls.
	set.Add(domain.CategoryCredit, domain.RecommendationItem{
		Name:   tag + " Letter of explanation for recent credit inquiries",
		Status: domain.StatusConditional,
		Reason: "Needed if the credit report shows inquiries within the last 90 days.",
	})
}

func (e *Engine) employmentCoverageRules(b domain.Borrower, tag string, set *domain.RecommendationSet) {
	months := e.durations.EmploymentMonths(b.EmploymentHistory)
	needed := e.policy.HistoryMonths - months
	if needed > 0 {
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Prior employment history to cover missing %d months", tag, needed),
			Status: domain.StatusRequired,
			Reason: fmt.Sprintf("Employment history covers %d of the required %d months.", months, e.policy.HistoryMonths),
		})
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Letter of explanation for employment gaps longer than %d days", tag, e.policy.GapReviewDays),
			Status: domain.StatusReview,
			Reason: "Gaps between jobs need a written explanation before underwriting.",
		})
		return
	}
	set.Add(domain.CategoryGeneral, domain.RecommendationItem{
		Name:   fmt.Sprintf("%s Employment history coverage (%d months)", tag, e.policy.HistoryMonths),
		Status: domain.StatusOk,
		Reason: fmt.Sprintf("Documented employment history meets the %d-month requirement.", e.policy.HistoryMonths),
	})
}

func (e *Engine) residenceCoverageRules(b domain.Borrower, tag string, set *domain.RecommendationSet) {
	months := e.durations.ResidenceMonths(b.Residences)
	needed := e.policy.HistoryMonths - months
	if needed > 0 {
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Prior residence addresses to cover missing %d months", tag, needed),
			Status: domain.StatusRequired,
			Reason: fmt.Sprintf("Residence history covers %d of the required %d months.", months, e.policy.HistoryMonths),
		})
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Letter of explanation for residence gaps longer than %d days", tag, e.policy.GapReviewDays),
			Status: domain.StatusReview,
			Reason: "Gaps in the address history need a written explanation before underwriting.",
		})
		return
	}
	set.Add(domain.CategoryGeneral, domain.RecommendationItem{
		Name:   fmt.Sprintf("%s Residence history coverage (%d months)", tag, e.policy.HistoryMonths),
		Status: domain.StatusOk,
		Reason: fmt.Sprintf("Documented residence history meets the %d-month requirement.", e.policy.HistoryMonths),
	})
}

func (e *Engine) citizenshipRules(b domain.Borrower, tag string, set *domain.RecommendationSet) {
	switch classifyCitizenship(b.Citizenship) {
	case citizenshipGreenCard:
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   tag + " I-551 Permanent Resident Card, front and back",
			Status: domain.StatusRequired,
			Reason: "Permanent resident borrowers must document lawful residency status.",
		})
	case citizenshipEADVisa:
		set.Add(domain.CategoryGeneral, domain.RecommendationItem{
			Name:   tag + " EAD card or visa with I-94",
			Status: domain.StatusRequired,
			Reason: "Non-permanent resident borrowers must document work authorization.",
		})
	}
}

// declarationRules emits credit items for adverse declaration flags. Each
// flag gates independently; a borrower may trigger zero, one, or all three.
func (e *Engine) declarationRules(b domain.Borrower, tag string, set *domain.RecommendationSet) {
	if b.Declaration.Bankruptcy {
		set.Add(domain.CategoryCredit, domain.RecommendationItem{
			Name:   tag + " Bankruptcy discharge papers and schedules",
			Status: domain.StatusRequired,
			Reason: "Declared bankruptcy requires full discharge documentation.",
		})
	}
	if b.Declaration.Foreclosure {
		set.Add(domain.CategoryCredit, domain.RecommendationItem{
			Name:   tag + " Foreclosure or short-sale documentation",
			Status: domain.StatusRequired,
			Reason: "Declared foreclosure or short sale requires settlement documentation.",
		})
	}
	if b.Declaration.OutstandingJudgments {
		set.Add(domain.CategoryCredit, domain.RecommendationItem{
			Name:   tag + " Proof of judgment payoff or payment arrangement",
			Status: domain.StatusRequired,
			Reason: "Outstanding judgments must be satisfied or under a documented plan.",
		})
	}
}

// incomeRules emits the income documentation items for one borrower. The
// wage-earner, variable-income, and self-employment branches gate
// independently and can all fire for the same borrower.
func (e *Engine) incomeRules(b domain.Borrower, tag string, set *domain.RecommendationSet) {
	hasEmploymentIncome := false
	isSelfEmployed := false
	for _, rec := range b.EmploymentHistory {
		if rec.Status == domain.EmploymentPresent && rec.MonthlyIncome > 0 {
			hasEmploymentIncome = true
		}
		if rec.SelfEmployed {
			isSelfEmployed = true
		}
	}

	hasVariable := false
	hasSCorp := false
	hasPartnership := false
	hasRental := false
	for _, src := range b.IncomeSources {
		switch tagOf := ClassifyIncome(src.IncomeType); {
		case tagOf.IsVariable():
			hasVariable = true
		case tagOf == IncomeSCorp:
			hasSCorp = true
		case tagOf == IncomePartnership:
			hasPartnership = true
		case tagOf == IncomeRental:
			hasRental = true
		}
	}

	if hasEmploymentIncome && !isSelfEmployed {
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Pay stubs covering the most recent %d days", tag, e.policy.PayStubDays),
			Status: domain.StatusRequired,
			Reason: "Current wage income must be documented with recent pay stubs.",
		})
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s W-2 forms for the last %d years", tag, e.policy.W2Years),
			Status: domain.StatusRequired,
			Reason: "Wage history must be documented with employer W-2 forms.",
		})
	}

	if hasVariable {
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   tag + " Written VOE confirming 2-year variable income history",
			Status: domain.StatusRequired,
			Reason: "Bonus, overtime, or commission income needs a two-year earnings history.",
		})
	}

	if isSelfEmployed {
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Personal tax returns for the last %d years", tag, e.policy.TaxReturnYears),
			Status: domain.StatusRequired,
			Reason: "Self-employment income is verified against filed personal returns.",
		})
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   tag + " Year-to-date profit and loss statement with balance sheet",
			Status: domain.StatusRequired,
			Reason: "Current-year business performance must be documented.",
		})
		if hasSCorp {
			set.Add(domain.CategoryIncome, domain.RecommendationItem{
				Name:   tag + " K-1 statements (S-Corp)",
				Status: domain.StatusRequired,
				Reason: "S-Corp distributions are verified against shareholder K-1s.",
			})
			set.Add(domain.CategoryIncome, domain.RecommendationItem{
				Name:   fmt.Sprintf("%s 1120S corporate returns for the last %d years", tag, e.policy.TaxReturnYears),
				Status: domain.StatusRequired,
				Reason: "S-Corp income is verified against filed corporate returns.",
			})
		}
		if hasPartnership {
			set.Add(domain.CategoryIncome, domain.RecommendationItem{
				Name:   tag + " K-1 statements (Partnership)",
				Status: domain.StatusRequired,
				Reason: "Partnership distributions are verified against partner K-1s.",
			})
			set.Add(domain.CategoryIncome, domain.RecommendationItem{
				Name:   fmt.Sprintf("%s 1065 partnership returns for the last %d years", tag, e.policy.TaxReturnYears),
				Status: domain.StatusRequired,
				Reason: "Partnership income is verified against filed partnership returns.",
			})
		}
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   tag + " Business bank statements",
			Status: domain.StatusConditional,
			Reason: "Needed if business cash flow requires further support.",
		})
	}

	if hasRental {
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Current lease agreements and %d months of rent receipts", tag, e.policy.RentReceiptMonths),
			Status: domain.StatusConditional,
			Reason: "Rental income claimed for qualification must be documented.",
		})
	}
}

// assetRules emits the application-scoped asset section. With no declared
// assets the purpose decides whether proof of funds is mandatory.
func (e *Engine) assetRules(app *domain.LoanApplication, set *domain.RecommendationSet) {
	hasAssets := false
	for _, b := range app.Borrowers {
		for _, a := range b.Assets {
			hasAssets = true
			name := fmt.Sprintf("%s Account statements (%d months) for %s", b.Tag(), e.policy.AssetStatementMonths, a.AssetType)
			if suffix := a.AccountSuffix(); suffix != "" {
				name = fmt.Sprintf("%s ending %s", name, suffix)
			}
			set.Add(domain.CategoryAssets, domain.RecommendationItem{
				Name:   name,
				Status: domain.StatusRequired,
				Reason: "Funds used for down payment, closing, and reserves must be sourced and seasoned.",
			})
		}
	}
	if hasAssets {
		return
	}

	if app.LoanPurpose == domain.LoanPurposePurchase {
		set.Add(domain.CategoryAssets, domain.RecommendationItem{
			Name:   "Proof of funds for down payment and closing costs",
			Status: domain.StatusRequired,
			Reason: "No assets were listed; purchase transactions must document funds to close.",
		})
		return
	}
	set.Add(domain.CategoryAssets, domain.RecommendationItem{
		Name:   "Asset statements if cash to close is required",
		Status: domain.StatusConditional,
		Reason: "Provide account statements if the transaction requires funds at closing.",
	})
}

// creditRules emits the application-scoped payoff and REO items. When REO
// was only inferred from liens the property items are emitted once,
// generically, since there is no per-property record to attach them to.
func (e *Engine) creditRules(app *domain.LoanApplication, flags appFlags, set *domain.RecommendationSet) {
	if anyLiabilityPaidAtClosing(app) {
		set.Add(domain.CategoryCredit, domain.RecommendationItem{
			Name:   "Payoff statements for debts paid at closing",
			Status: domain.StatusRequired,
			Reason: "Debts marked for payoff must have current payoff statements.",
		})
	}

	if flags.hasREO() {
		if flags.reoCount > 0 {
			for _, b := range app.Borrowers {
				for _, p := range b.REOProperties {
					e.reoPropertyRules(b, p, flags, set)
				}
			}
		} else {
			set.Add(domain.CategoryCredit, domain.RecommendationItem{
				Name:   "Mortgage or HELOC statements for all owned properties",
				Status: domain.StatusRequired,
				Reason: "Property liens were reported as liabilities; statements are required for each.",
			})
			set.Add(domain.CategoryCredit, domain.RecommendationItem{
				Name:   "Hazard insurance declaration pages for all owned properties",
				Status: domain.StatusRequired,
				Reason: "Each owned property must show current hazard coverage.",
			})
			set.Add(domain.CategoryCredit, domain.RecommendationItem{
				Name:   "Property tax bills for all owned properties",
				Status: domain.StatusConditional,
				Reason: "Needed if taxes are not escrowed on the existing liens.",
			})
		}
	}

	if flags.helocLiens > 0 {
		set.Add(domain.CategoryCredit, domain.RecommendationItem{
			Name:   "HELOC statements showing current balance and credit limit",
			Status: domain.StatusRequired,
			Reason: "Reported HELOC liens must be documented with current statements.",
		})
	}
}

func (e *Engine) reoPropertyRules(b domain.Borrower, p domain.REOProperty, flags appFlags, set *domain.RecommendationSet) {
	where := p.AddressLine
	if where == "" {
		where = "owned property"
	}
	set.Add(domain.CategoryCredit, domain.RecommendationItem{
		Name:   fmt.Sprintf("%s Mortgage or HELOC statement for %s", b.Tag(), where),
		Status: domain.StatusRequired,
		Reason: "Each owned property with a lien must have a current statement.",
	})
	set.Add(domain.CategoryCredit, domain.RecommendationItem{
		Name:   fmt.Sprintf("%s Hazard insurance declaration page for %s", b.Tag(), where),
		Status: domain.StatusRequired,
		Reason: "Each owned property must show current hazard coverage.",
	})
	set.Add(domain.CategoryCredit, domain.RecommendationItem{
		Name:   fmt.Sprintf("%s Property tax bill for %s", b.Tag(), where),
		Status: domain.StatusConditional,
		Reason: "Needed if taxes are not escrowed on the existing lien.",
	})
	if isInvestmentProperty(p.PropertyType) || flags.hasRentalIncome {
		set.Add(domain.CategoryIncome, domain.RecommendationItem{
			Name:   fmt.Sprintf("%s Lease agreement for %s", b.Tag(), where),
			Status: domain.StatusConditional,
			Reason: "Rental use of the property must be documented with the current lease.",
		})
	}
}

// anyLiabilityPaidAtClosing scans application-level and borrower-level
// debts for a payoff flag.
func anyLiabilityPaidAtClosing(app *domain.LoanApplication) bool {
	for _, l := range app.Liabilities {
		if l.PaidAtClosing() {
			return true
		}
	}
	for _, b := range app.Borrowers {
		for _, l := range b.Liabilities {
			if l.PaidAtClosing() {
				return true
			}
		}
	}
	return false
}
