package recommendation

import (
	"time"

	"docready/internal/domain"
)

// Clock supplies the current time. Injected so ongoing-employment spans are
// reproducible in tests.
type Clock func() time.Time

// DurationCalculator computes whole-month spans between dates and
// accumulates per-borrower history totals. It never fails: absent or
// unparseable dates contribute zero months, which biases toward requiring
// more documentation, never less.
type DurationCalculator struct {
	clock Clock
}

// DurationOption configures a DurationCalculator.
type DurationOption func(*DurationCalculator)

// WithDurationClock sets the clock used to resolve ongoing employment.
func WithDurationClock(clock Clock) DurationOption {
	return func(c *DurationCalculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewDurationCalculator constructs a calculator defaulting to real time.
func NewDurationCalculator(opts ...DurationOption) *DurationCalculator {
	c := &DurationCalculator{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dateLayouts are tried in order when parsing intake date strings.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthsBetween returns the number of whole calendar months from start to
// end. A partial final month is dropped: the count is decremented when the
// end day-of-month precedes the start day-of-month. Returns 0 when either
// date is absent or unparseable, and never returns a negative value.
func (c *DurationCalculator) MonthsBetween(start, end string) int {
	s, ok := parseDate(start)
	if !ok {
		return 0
	}
	e, ok := parseDate(end)
	if !ok {
		return 0
	}
	return monthsBetween(s, e)
}

func monthsBetween(s, e time.Time) int {
	months := (e.Year()-s.Year())*12 + int(e.Month()) - int(s.Month())
	if e.Day() < s.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// EmploymentMonths sums whole months across the borrower's employment
// records. A record with no end date is treated as ongoing and measured
// against the current clock. Records are not deduplicated: overlapping
// concurrent jobs each count toward coverage.
func (c *DurationCalculator) EmploymentMonths(records []domain.EmploymentRecord) int {
	total := 0
	for _, rec := range records {
		start, ok := parseDate(rec.StartDate)
		if !ok {
			continue
		}
		end, ok := parseDate(rec.EndDate)
		if !ok {
			if rec.EndDate != "" {
				// Malformed end date: conservative zero contribution.
				continue
			}
			end = c.clock()
		}
		total += monthsBetween(start, end)
	}
	return total
}

// ResidenceMonths sums the precomputed duration field across residences.
// No date arithmetic is involved; a residence with no duration adds 0.
func (c *DurationCalculator) ResidenceMonths(residences []domain.Residence) int {
	total := 0
	for _, r := range residences {
		if r.DurationMonths > 0 {
			total += r.DurationMonths
		}
	}
	return total
}
