package finance

// ScopeKind selects which payouts count against earnings
type ScopeKind string

const (
	ScopeKindAllTime ScopeKind = "all_time"
	ScopeKindPeriod  ScopeKind = "period"
)

// ReconcileScope limits the payout rows summed during reconciliation
type ReconcileScope struct {
	Kind  ScopeKind
	Year  int
	Month int
}

// AllTime sums every payout an instructor has ever received.
// This is what the overview uses, against all-time earnings.
func AllTime() ReconcileScope {
	return ReconcileScope{Kind: ScopeKindAllTime}
}

// ForPeriod sums only payouts recorded for the given year and month
func ForPeriod(year, month int) ReconcileScope {
	return ReconcileScope{Kind: ScopeKindPeriod, Year: year, Month: month}
}

// Includes reports whether a payout row falls inside the scope
func (s ReconcileScope) Includes(p Payout) bool {
	if s.Kind != ScopeKindPeriod {
		return true
	}
	return p.Year == s.Year && p.Month == s.Month
}

// PaidOut sums payouts per instructor within scope
func PaidOut(payouts []Payout, scope ReconcileScope) map[int64]float64 {
	paid := make(map[int64]float64)
	for _, p := range payouts {
		if scope.Includes(p) {
			paid[p.InstructorID] += p.AmountPaid
		}
	}
	return paid
}

// Reconcile attaches paid-out and pending balances to each instructor report.
// Pending goes negative when an instructor was overpaid; that is reported as is.
// Instructors with payouts but no earnings in reports are not added.
func Reconcile(reports []InstructorReport, payouts []Payout, scope ReconcileScope) []InstructorPayout {
	paid := PaidOut(payouts, scope)

	out := make([]InstructorPayout, 0, len(reports))
	for _, r := range reports {
		p := paid[r.InstructorID]
		out = append(out, InstructorPayout{
			InstructorReport: r,
			PaidOut:          p,
			PendingPayout:    r.InstructorShare - p,
		})
	}
	return out
}
