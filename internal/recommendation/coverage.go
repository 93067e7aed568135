package recommendation

import (
	"docready/internal/domain"
)

// CoverageStats aggregates history coverage across borrowers. The
// application is only as covered as its weakest borrower: Needed is the
// maximum shortfall observed, Covered the minimum months observed (the
// first borrower seeds both minimums).
//
// REOCount intentionally counts only explicit REO records and ignores the
// lien inference used by the checklist rules; see the open-questions entry
// in DESIGN.md before changing either side.
func (e *Engine) CoverageStats(borrowers []domain.Borrower) domain.CoverageStats {
	var stats domain.CoverageStats

	for i, b := range borrowers {
		empMonths := e.durations.EmploymentMonths(b.EmploymentHistory)
		resMonths := e.durations.ResidenceMonths(b.Residences)

		empNeeded := needed(e.policy.HistoryMonths, empMonths)
		resNeeded := needed(e.policy.HistoryMonths, resMonths)

		if empNeeded > stats.EmploymentCoverage.Needed {
			stats.EmploymentCoverage.Needed = empNeeded
		}
		if resNeeded > stats.ResidenceCoverage.Needed {
			stats.ResidenceCoverage.Needed = resNeeded
		}
		if i == 0 || empMonths < stats.EmploymentCoverage.Covered {
			stats.EmploymentCoverage.Covered = empMonths
		}
		if i == 0 || resMonths < stats.ResidenceCoverage.Covered {
			stats.ResidenceCoverage.Covered = resMonths
		}

		if b.Declaration.HasAdverseFlags() {
			stats.HasDeclarationFlags = true
		}
		stats.REOCount += len(b.REOProperties)
	}

	return stats
}

// needed floors the coverage shortfall at zero.
func needed(threshold, covered int) int {
	if n := threshold - covered; n > 0 {
		return n
	}
	return 0
}
