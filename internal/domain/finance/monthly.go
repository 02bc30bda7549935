package finance

import (
	"fmt"
	"time"
)

const allTimeLabel = "All Time"

// Period is a calendar month in UTC, or all time when unset
type Period struct {
	Year  int
	Month int
	set   bool
}

// AllTimePeriod covers every purchase
func AllTimePeriod() Period {
	return Period{}
}

// NewPeriod requires year and month together; both nil means all time
func NewPeriod(year, month *int) (Period, error) {
	switch {
	case year == nil && month == nil:
		return AllTimePeriod(), nil
	case year == nil || month == nil:
		return Period{}, ErrInvalidPeriod
	}
	return MonthPeriod(*year, *month)
}

// MonthPeriod builds a single-month period
func MonthPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 || year < 1 {
		return Period{}, fmt.Errorf("%w: %d-%d", ErrInvalidPeriod, year, month)
	}
	return Period{Year: year, Month: month, set: true}, nil
}

// IsAllTime reports whether the period is unbounded
func (p Period) IsAllTime() bool {
	return !p.set
}

// Label formats the period as YYYY-MM or "All Time"
func (p Period) Label() string {
	if !p.set {
		return allTimeLabel
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Bounds returns [start, end) of the month in UTC
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period, compared in UTC
func (p Period) Contains(t time.Time) bool {
	if !p.set {
		return true
	}
	start, end := p.Bounds()
	t = t.UTC()
	return !t.Before(start) && t.Before(end)
}

// Previous returns the month before p. All time has no previous month.
func (p Period) Previous() Period {
	if !p.set {
		return p
	}
	start, _ := p.Bounds()
	prev := start.AddDate(0, -1, 0)
	return Period{Year: prev.Year(), Month: int(prev.Month()), set: true}
}

// PeriodOf returns the month containing t (UTC)
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{Year: t.Year(), Month: int(t.Month()), set: true}
}

// FilterByPeriod keeps purchases made within the period
func FilterByPeriod(purchases []Purchase, period Period) []Purchase {
	if period.IsAllTime() {
		return purchases
	}
	out := make([]Purchase, 0, len(purchases))
	for _, p := range purchases {
		if period.Contains(p.PurchasedAt) {
			out = append(out, p)
		}
	}
	return out
}

// BuildMonthlySummary applies the flat 70% instructor split to the period's
// purchases regardless of session percentages, and splits the platform
// remainder between the special admin and regular admin tiers.
func BuildMonthlySummary(data Dataset, period Period) MonthlySummary {
	split := NewFlatPeriodSplit(HasSpecialAdmin(data.Users))
	purchases := FilterByPeriod(data.Purchases, period)

	agg := aggregate(purchases, newLookups(data.Sessions, data.Courses, data.Users), split)

	return MonthlySummary{
		Period:             period.Label(),
		TotalRevenue:       agg.TotalRevenue,
		InstructorEarned:   agg.InstructorTotal,
		SpecialAdminEarned: agg.TotalRevenue * split.SpecialAdmin,
		RegularAdminEarned: agg.TotalRevenue * split.RegularAdmin(),
		Instructors:        agg.Instructors,
		Skipped:            agg.Skipped,
	}
}

// BuildPeriodBalances computes per-session earnings inside one month and
// reconciles them against payouts recorded for that same month.
func BuildPeriodBalances(data Dataset, period Period, defaultPercentage float64) (PeriodBalances, error) {
	if period.IsAllTime() {
		return PeriodBalances{}, ErrInvalidPeriod
	}

	split := NewPerSessionSplit()
	if defaultPercentage > 0 {
		split.DefaultPercentage = defaultPercentage
	}

	purchases := FilterByPeriod(data.Purchases, period)
	agg := aggregate(purchases, newLookups(data.Sessions, data.Courses, data.Users), split)

	return PeriodBalances{
		Period:       period.Label(),
		TotalRevenue: agg.TotalRevenue,
		Instructors:  Reconcile(agg.Instructors, data.Payouts, ForPeriod(period.Year, period.Month)),
	}, nil
}
