// Package domain holds the loan application snapshot consumed by the
// recommendation engine and the checklist types it produces. Snapshots are
// read-only inputs; nothing in this module mutates them after Normalize.
package domain

import "strings"

// LoanPurpose enumerates why the loan is being taken out.
type LoanPurpose string

const (
	LoanPurposeUnset     LoanPurpose = ""
	LoanPurposePurchase  LoanPurpose = "purchase"
	LoanPurposeRefinance LoanPurpose = "refinance"
	LoanPurposeCashOut   LoanPurpose = "cash_out"
)

// CitizenshipType enumerates the borrower's declared citizenship status.
// Upstream intake systems send free-form values, so the engine matches
// these loosely (see recommendation.Classify* helpers).
type CitizenshipType string

const (
	CitizenshipUnset             CitizenshipType = ""
	CitizenshipUSCitizen         CitizenshipType = "us_citizen"
	CitizenshipPermanentResident CitizenshipType = "permanent_resident"
	CitizenshipNonPermanent      CitizenshipType = "non_permanent_resident"
	CitizenshipOther             CitizenshipType = "other"
)

// EmploymentStatus distinguishes current from prior jobs.
type EmploymentStatus string

const (
	EmploymentPresent EmploymentStatus = "present"
	EmploymentPrior   EmploymentStatus = "prior"
)

// EmploymentRecord is one job in the borrower's history. EndDate is empty
// for an ongoing job. Dates are ISO strings (YYYY-MM-DD) as supplied by
// the intake layer; malformed dates contribute zero months.
type EmploymentRecord struct {
	EmployerName  string           `json:"employer_name,omitempty"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date,omitempty"`
	Status        EmploymentStatus `json:"status"`
	MonthlyIncome float64          `json:"monthly_income"`
	SelfEmployed  bool             `json:"self_employed"`
}

// Residence is one address in the borrower's residence history. Duration
// arrives precomputed from the intake form; the engine does not derive it
// from dates.
type Residence struct {
	DurationMonths int    `json:"duration_months"`
	ResidencyBasis string `json:"residency_basis,omitempty"`
	AddressLine    string `json:"address_line,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	Zip            string `json:"zip,omitempty"`
}

// IncomeSource is a recurring income stream. IncomeType is a free-form tag
// ("Bonus", "S-Corp", "Rental Income", ...) classified by the engine.
type IncomeSource struct {
	IncomeType    string  `json:"income_type"`
	MonthlyAmount float64 `json:"monthly_amount"`
}

// Asset is a depository or investment account.
type Asset struct {
	AssetType     string  `json:"asset_type"`
	AccountNumber string  `json:"account_number,omitempty"`
	Value         float64 `json:"value,omitempty"`
}

// AccountSuffix returns the last four digits of the account number. Only
// the suffix is ever surfaced in checklist items.
func (a Asset) AccountSuffix() string {
	n := a.AccountNumber
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

// Liability is a recurring debt. LiabilityType is free text matched for
// mortgage/HELOC liens when no explicit REO records exist.
type Liability struct {
	LiabilityType  string  `json:"liability_type"`
	MonthlyPayment float64 `json:"monthly_payment,omitempty"`
	ToBePaidOff    bool    `json:"to_be_paid_off"`
	PayoffStatus   bool    `json:"payoff_status"`
}

// PaidAtClosing reports whether the debt is settled at closing under
// either of the two flags intake systems use interchangeably.
func (l Liability) PaidAtClosing() bool {
	return l.ToBePaidOff || l.PayoffStatus
}

// REOProperty is a property the borrower already owns. LiabilityIndex
// links the property to a liability in the owning borrower's list; nil
// means no linked lien.
type REOProperty struct {
	AddressLine    string `json:"address_line,omitempty"`
	PropertyType   string `json:"property_type,omitempty"`
	LiabilityIndex *int   `json:"liability_index,omitempty"`
}

// Declaration holds the yes/no disclosure answers. Only the first three
// flags drive checklist items; the rest are carried for completeness.
type Declaration struct {
	Bankruptcy           bool `json:"bankruptcy"`
	Foreclosure          bool `json:"foreclosure"`
	OutstandingJudgments bool `json:"outstanding_judgments"`
	PartyToLawsuit       bool `json:"party_to_lawsuit,omitempty"`
	BorrowedDownPayment  bool `json:"borrowed_down_payment,omitempty"`
	DelinquentFederal    bool `json:"delinquent_federal_debt,omitempty"`
	PrimaryResidence     bool `json:"primary_residence,omitempty"`
}

// HasAdverseFlags reports whether any of the checklist-driving flags are set.
func (d Declaration) HasAdverseFlags() bool {
	return d.Bankruptcy || d.Foreclosure || d.OutstandingJudgments
}

// Borrower is one applicant on the loan.
type Borrower struct {
	FirstName         string             `json:"first_name"`
	LastName          string             `json:"last_name"`
	Citizenship       CitizenshipType    `json:"citizenship,omitempty"`
	EmploymentHistory []EmploymentRecord `json:"employment_history"`
	Residences        []Residence        `json:"residences"`
	IncomeSources     []IncomeSource     `json:"income_sources"`
	Assets            []Asset            `json:"assets"`
	Liabilities       []Liability        `json:"liabilities"`
	REOProperties     []REOProperty      `json:"reo_properties"`
	Declaration       Declaration        `json:"declaration"`
}

// Tag returns the "[First Last]" prefix used on per-borrower checklist items.
func (b Borrower) Tag() string {
	name := strings.TrimSpace(strings.TrimSpace(b.FirstName) + " " + strings.TrimSpace(b.LastName))
	if name == "" {
		name = "Borrower"
	}
	return "[" + name + "]"
}

// LoanApplication is the immutable snapshot evaluated by the engine.
// Liabilities at this level are application-scoped; borrower-level debts
// live under each Borrower.
type LoanApplication struct {
	LoanPurpose LoanPurpose `json:"loan_purpose,omitempty"`
	Borrowers   []Borrower  `json:"borrowers"`
	Liabilities []Liability `json:"liabilities"`
}

// Normalize defaults every nil collection to an empty slice so rule code
// can range over fields without nil checks. Applied once at ingestion.
func (a *LoanApplication) Normalize() {
	if a.Borrowers == nil {
		a.Borrowers = []Borrower{}
	}
	if a.Liabilities == nil {
		a.Liabilities = []Liability{}
	}
	for i := range a.Borrowers {
		b := &a.Borrowers[i]
		if b.EmploymentHistory == nil {
			b.EmploymentHistory = []EmploymentRecord{}
		}
		if b.Residences == nil {
			b.Residences = []Residence{}
		}
		if b.IncomeSources == nil {
			b.IncomeSources = []IncomeSource{}
		}
		if b.Assets == nil {
			b.Assets = []Asset{}
		}
		if b.Liabilities == nil {
			b.Liabilities = []Liability{}
		}
		if b.REOProperties == nil {
			b.REOProperties = []REOProperty{}
		}
	}
}
