package finance

import "math"

const (
	// DefaultInstructorPercentage applies to sessions without a configured percentage
	DefaultInstructorPercentage = 70.0

	// FlatInstructorShare is the fixed instructor fraction used by the monthly summary
	FlatInstructorShare = 0.70

	// SpecialAdminShare is granted when at least one user carries the special admin flag
	SpecialAdminShare = 0.20
)

// SplitPolicy decides the instructor's share of a single purchase
type SplitPolicy interface {
	// Name identifies the policy in logs and reports
	Name() string
	// InstructorShare returns the instructor's cut of amount for a purchase on session
	InstructorShare(amount float64, session *Session) float64
}

// PerSessionSplit reads the instructor percentage from each session.
// Used by the all-time overview.
type PerSessionSplit struct {
	DefaultPercentage float64
}

// NewPerSessionSplit creates a per-session split with the standard default
func NewPerSessionSplit() PerSessionSplit {
	return PerSessionSplit{DefaultPercentage: DefaultInstructorPercentage}
}

func (PerSessionSplit) Name() string { return "per_session" }

func (p PerSessionSplit) InstructorShare(amount float64, session *Session) float64 {
	def := p.DefaultPercentage
	if def == 0 {
		def = DefaultInstructorPercentage
	}
	pct := def
	if session != nil {
		pct = session.PayoutPercentage(def)
	}
	return amount * pct / 100
}

// FlatPeriodSplit ignores session configuration and applies a fixed
// instructor/platform split. Used by the monthly summary.
type FlatPeriodSplit struct {
	Instructor   float64
	SpecialAdmin float64
}

// NewFlatPeriodSplit builds the monthly split. The special admin tier only
// exists when some user is flagged as special admin.
func NewFlatPeriodSplit(hasSpecialAdmin bool) FlatPeriodSplit {
	split := FlatPeriodSplit{Instructor: FlatInstructorShare}
	if hasSpecialAdmin {
		split.SpecialAdmin = SpecialAdminShare
	}
	return split
}

func (FlatPeriodSplit) Name() string { return "flat_period" }

func (f FlatPeriodSplit) InstructorShare(amount float64, _ *Session) float64 {
	return amount * f.Instructor
}

// RegularAdmin is the platform remainder after instructor and special admin
func (f FlatPeriodSplit) RegularAdmin() float64 {
	// rounded so 1 - 0.7 - 0.2 reads as 0.1
	return math.Round((1-f.Instructor-f.SpecialAdmin)*1e4) / 1e4
}

// HasSpecialAdmin reports whether any user carries the special admin flag
func HasSpecialAdmin(users []User) bool {
	for _, u := range users {
		if u.SpecialAdmin {
			return true
		}
	}
	return false
}
