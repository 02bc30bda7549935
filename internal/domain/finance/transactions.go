package finance

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive purchased_at filter. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange parses YYYY-MM-DD bounds (UTC). The end date covers its whole day.
func ParseDateRange(start, end string) (DateRange, error) {
	var rng DateRange

	if s := strings.TrimSpace(start); s != "" {
		from, err := time.Parse(dateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: start_date %q", ErrInvalidDateRange, s)
		}
		rng.From = &from
	}

	if s := strings.TrimSpace(end); s != "" {
		to, err := time.Parse(dateLayout, s)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: end_date %q", ErrInvalidDateRange, s)
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		rng.To = &to
	}

	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return DateRange{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidDateRange)
	}

	return rng, nil
}

// Contains reports whether t is inside the range
func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ListTransactions filters purchases by date and enriches them for display.
// Test purchases stay in the list with amount 0 and the is_test badge.
func ListTransactions(purchases []Purchase, courses []Course, rng DateRange) []TransactionRecord {
	byCourse := make(map[string]*Course, len(courses))
	for i := range courses {
		byCourse[courses[i].CourseID] = &courses[i]
	}

	out := make([]TransactionRecord, 0, len(purchases))
	for _, p := range purchases {
		if !rng.Contains(p.PurchasedAt) {
			continue
		}
		rec := TransactionRecord{
			Purchase:       p,
			Amount:         EffectiveAmount(p),
			OriginalAmount: p.Amount,
			IsTest:         IsTest(p),
		}
		if c, ok := byCourse[p.CourseID]; ok {
			rec.CourseTitle = c.Title
			rec.InstructorID = c.InstructorID
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PurchasedAt.After(out[j].PurchasedAt)
	})
	return out
}
