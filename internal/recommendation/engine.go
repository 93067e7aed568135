package recommendation

import (
	"docready/internal/domain"
)

// Engine derives the document checklist from a loan application snapshot.
// The goal is to keep the rule table centralized and testable: Evaluate is
// a total, deterministic function of its input and the configured policy.
type Engine struct {
	policy    Policy
	durations *DurationCalculator
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy overrides the default lender thresholds.
func WithPolicy(p Policy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithClock sets the clock used when measuring ongoing employment.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.durations = NewDurationCalculator(WithDurationClock(clock))
	}
}

// NewEngine constructs an engine with the default policy and real time.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		policy:    DefaultPolicy(),
		durations: NewDurationCalculator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the thresholds the engine evaluates against.
func (e *Engine) Policy() Policy {
	return e.policy
}

// appFlags holds application-level facts derived once before the rules run.
type appFlags struct {
	reoCount        int
	mortgageLiens   int
	helocLiens      int
	inferredREO     int
	hasRentalIncome bool
}

func (f appFlags) hasREO() bool {
	return f.reoCount > 0 || f.inferredREO > 0
}

// deriveFlags computes the shared facts of rule step 1. Explicit REO
// entries take precedence over lien inference so properties are never
// double-counted.
func (e *Engine) deriveFlags(app *domain.LoanApplication) appFlags {
	var f appFlags
	for _, b := range app.Borrowers {
		f.reoCount += len(b.REOProperties)
		for _, src := range b.IncomeSources {
			if ClassifyIncome(src.IncomeType) == IncomeRental {
				f.hasRentalIncome = true
			}
		}
	}
	for _, l := range app.Liabilities {
		switch ClassifyLiability(l.LiabilityType) {
		case LiabilityMortgage:
			f.mortgageLiens++
		case LiabilityHELOC:
			f.helocLiens++
		}
	}
	if f.reoCount == 0 {
		f.inferredREO = f.mortgageLiens + f.helocLiens
	}
	return f
}

// Evaluate runs the full rule table against the snapshot and returns the
// categorized checklist. Absent collections are treated as empty; the
// method never fails and never mutates app.
func (e *Engine) Evaluate(app domain.LoanApplication) domain.RecommendationSet {
	var set domain.RecommendationSet
	flags := e.deriveFlags(&app)

	e.purposeRules(&app, &set)
	for _, b := range app.Borrowers {
		e.borrowerRules(b, &set)
	}
	e.assetRules(&app, &set)
	e.creditRules(&app, flags, &set)

	return set
}
