package domain

// Status classifies how firm a document requirement is. Every emitted item
// carries exactly one of these four values.
type Status string

const (
	StatusRequired    Status = "required"
	StatusConditional Status = "conditional"
	StatusReview      Status = "review"
	StatusOk          Status = "ok"
)

// IsValid reports whether s is one of the four enumerated statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusRequired, StatusConditional, StatusReview, StatusOk:
		return true
	}
	return false
}

// Category names one of the four checklist sections. Section order is part
// of the display and CSV export contract.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryIncome  Category = "income"
	CategoryAssets  Category = "assets"
	CategoryCredit  Category = "credit"
)

// Categories returns the sections in their fixed display order.
func Categories() []Category {
	return []Category{CategoryGeneral, CategoryIncome, CategoryAssets, CategoryCredit}
}

// RecommendationItem is a single document requirement with its status and
// the justification shown to the applicant.
type RecommendationItem struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// RecommendationSet groups checklist items into the four ordered sections.
// Within a section, items appear in rule-evaluation order (borrower order,
// then rule order); renderers must preserve it.
type RecommendationSet struct {
	General []RecommendationItem `json:"general"`
	Income  []RecommendationItem `json:"income"`
	Assets  []RecommendationItem `json:"assets"`
	Credit  []RecommendationItem `json:"credit"`
}

// Section returns the items for a category. Unknown categories yield nil.
func (s *RecommendationSet) Section(c Category) []RecommendationItem {
	switch c {
	case CategoryGeneral:
		return s.General
	case CategoryIncome:
		return s.Income
	case CategoryAssets:
		return s.Assets
	case CategoryCredit:
		return s.Credit
	}
	return nil
}

// Add appends an item to the named section, preserving emission order.
func (s *RecommendationSet) Add(c Category, item RecommendationItem) {
	switch c {
	case CategoryGeneral:
		s.General = append(s.General, item)
	case CategoryIncome:
		s.Income = append(s.Income, item)
	case CategoryAssets:
		s.Assets = append(s.Assets, item)
	case CategoryCredit:
		s.Credit = append(s.Credit, item)
	}
}

// Total counts items across all sections.
func (s *RecommendationSet) Total() int {
	return len(s.General) + len(s.Income) + len(s.Assets) + len(s.Credit)
}

// CoverageWindow compares documented history months against the lender
// threshold. Needed is never negative.
type CoverageWindow struct {
	Needed  int `json:"needed"`
	Covered int `json:"covered"`
}

// CoverageStats summarizes application-wide history coverage. Needed
// fields track the weakest borrower, not a sum; Covered holds the minimum
// coverage observed across borrowers.
type CoverageStats struct {
	EmploymentCoverage  CoverageWindow `json:"employment_coverage"`
	ResidenceCoverage   CoverageWindow `json:"residence_coverage"`
	HasDeclarationFlags bool           `json:"has_declaration_flags"`
	REOCount            int            `json:"reo_count"`
}
