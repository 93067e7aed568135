package recommendation

import (
	"testing"
	"time"

	"docready/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	calc := NewDurationCalculator(WithDurationClock(fixedClock))

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same date is zero", "2024-03-10", "2024-03-10", 0},
		{"exactly one month", "2024-03-10", "2024-04-10", 1},
		{"partial final month dropped", "2024-03-10", "2024-04-09", 0},
		{"end day past start day keeps month", "2024-03-10", "2024-04-11", 1},
		{"full year", "2023-01-01", "2024-01-01", 12},
		{"year boundary with day decrement", "2023-06-20", "2024-06-19", 11},
		{"reversed dates floor at zero", "2024-06-01", "2024-01-01", 0},
		{"empty start is zero", "", "2024-01-01", 0},
		{"empty end is zero", "2024-01-01", "", 0},
		{"garbage start is zero", "not-a-date", "2024-01-01", 0},
		{"garbage end is zero", "2024-01-01", "13/45/9999", 0},
		{"rfc3339 timestamps accepted", "2023-01-10T00:00:00Z", "2023-04-10T00:00:00Z", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.MonthsBetween(tt.start, tt.end)
			if got != tt.want {
				t.Fatalf("MonthsBetween(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestEmploymentMonths(t *testing.T) {
	calc := NewDurationCalculator(WithDurationClock(fixedClock))

	t.Run("ongoing job measured against the clock", func(t *testing.T) {
		records := []domain.EmploymentRecord{
			{StartDate: "2024-01-15", Status: domain.EmploymentPresent},
		}
		// 2024-01-15 .. 2026-01-15 is exactly 24 whole months.
		if got := calc.EmploymentMonths(records); got != 24 {
			t.Fatalf("expected 24 months, got %d", got)
		}
	})

	t.Run("prior and present records sum", func(t *testing.T) {
		records := []domain.EmploymentRecord{
			{StartDate: "2025-06-15", Status: domain.EmploymentPresent},
			{StartDate: "2024-01-15", EndDate: "2025-06-15", Status: domain.EmploymentPrior},
		}
		// 7 ongoing + 17 prior.
		if got := calc.EmploymentMonths(records); got != 24 {
			t.Fatalf("expected 24 months, got %d", got)
		}
	})

	t.Run("overlapping concurrent jobs double count", func(t *testing.T) {
		records := []domain.EmploymentRecord{
			{StartDate: "2025-01-15", Status: domain.EmploymentPresent},
			{StartDate: "2025-01-15", Status: domain.EmploymentPresent},
		}
		// Documented upstream behavior: no overlap dedup.
		if got := calc.EmploymentMonths(records); got != 24 {
			t.Fatalf("expected 24 months from two concurrent 12-month jobs, got %d", got)
		}
	})

	t.Run("malformed dates contribute nothing", func(t *testing.T) {
		records := []domain.EmploymentRecord{
			{StartDate: "??", Status: domain.EmploymentPresent},
			{StartDate: "2025-01-15", EndDate: "bogus", Status: domain.EmploymentPrior},
		}
		if got := calc.EmploymentMonths(records); got != 0 {
			t.Fatalf("expected 0 months, got %d", got)
		}
	})

	t.Run("no records is zero", func(t *testing.T) {
		if got := calc.EmploymentMonths(nil); got != 0 {
			t.Fatalf("expected 0 months, got %d", got)
		}
	})
}

func TestResidenceMonths(t *testing.T) {
	calc := NewDurationCalculator()

	t.Run("sums precomputed durations", func(t *testing.T) {
		residences := []domain.Residence{
			{DurationMonths: 18},
			{DurationMonths: 10},
		}
		if got := calc.ResidenceMonths(residences); got != 28 {
			t.Fatalf("expected 28 months, got %d", got)
		}
	})

	t.Run("missing or negative durations contribute nothing", func(t *testing.T) {
		residences := []domain.Residence{
			{DurationMonths: 0},
			{DurationMonths: -3},
			{DurationMonths: 6},
		}
		if got := calc.ResidenceMonths(residences); got != 6 {
			t.Fatalf("expected 6 months, got %d", got)
		}
	})
}
