package finance

import (
	"sort"
	"time"
)

// DefaultRecentLimit is how many purchases the overview activity feed shows
const DefaultRecentLimit = 10

const unknownStudent = "Unknown"

// lookups indexes the reference tables by the keys purchases use
type lookups struct {
	sessions map[string]*Session
	courses  map[string]*Course
	users    map[int64]*User
}

func newLookups(sessions []Session, courses []Course, users []User) lookups {
	l := lookups{
		sessions: make(map[string]*Session, len(sessions)),
		courses:  make(map[string]*Course, len(courses)),
		users:    make(map[int64]*User, len(users)),
	}
	for i := range sessions {
		l.sessions[sessions[i].SessionID] = &sessions[i]
	}
	for i := range courses {
		l.courses[courses[i].CourseID] = &courses[i]
	}
	for i := range users {
		l.users[users[i].ID] = &users[i]
	}
	return l
}

func (l lookups) studentName(userID int64) string {
	if u, ok := l.users[userID]; ok && u.Name != "" {
		return u.Name
	}
	return unknownStudent
}

// resolve walks purchase -> session, course -> instructor. A false result
// means the purchase is excluded from instructor aggregation; skipped records why.
func (l lookups) resolve(p Purchase, skipped *SkipStats) (*Session, *Course, *User, bool) {
	session, ok := l.sessions[p.SessionID]
	if !ok {
		skipped.MissingSession++
		return nil, nil, nil, false
	}
	course, ok := l.courses[p.CourseID]
	if !ok {
		skipped.MissingCourse++
		return nil, nil, nil, false
	}
	if course.InstructorID.IsEmpty() {
		skipped.Unassigned++
		return nil, nil, nil, false
	}
	id, ok := course.InstructorID.UserID()
	if !ok {
		skipped.UnknownInstructor++
		return nil, nil, nil, false
	}
	instructor, ok := l.users[id]
	if !ok {
		skipped.UnknownInstructor++
		return nil, nil, nil, false
	}
	return session, course, instructor, true
}

type courseAcc struct {
	report   CourseReport
	sessions map[string]*SessionReport
}

type instructorAcc struct {
	report  InstructorReport
	courses map[string]*courseAcc
}

// aggregation is the shared result of walking a purchase set under one split policy
type aggregation struct {
	TotalRevenue    float64
	InstructorTotal float64
	Instructors     []InstructorReport
	Skipped         SkipStats
}

func aggregate(purchases []Purchase, l lookups, split SplitPolicy) aggregation {
	var agg aggregation
	accs := make(map[int64]*instructorAcc)

	for _, p := range sortedByTime(purchases) {
		amount := EffectiveAmount(p)
		agg.TotalRevenue += amount

		session, course, instructor, ok := l.resolve(p, &agg.Skipped)
		if !ok {
			continue
		}

		earned := split.InstructorShare(amount, session)

		ia, ok := accs[instructor.ID]
		if !ok {
			ia = &instructorAcc{
				report: InstructorReport{
					InstructorID:    instructor.ID,
					InstructorName:  instructor.Name,
					InstructorEmail: instructor.Email,
				},
				courses: make(map[string]*courseAcc),
			}
			accs[instructor.ID] = ia
		}
		ia.report.TotalRevenue += amount
		ia.report.InstructorShare += earned

		ca, ok := ia.courses[course.CourseID]
		if !ok {
			ca = &courseAcc{
				report:   CourseReport{CourseID: course.CourseID, Title: course.Title},
				sessions: make(map[string]*SessionReport),
			}
			ia.courses[course.CourseID] = ca
		}
		ca.report.Revenue += amount
		ca.report.Earned += earned

		sr, ok := ca.sessions[session.SessionID]
		if !ok {
			sr = &SessionReport{
				SessionID:  session.SessionID,
				Title:      session.Title,
				Venue:      session.Venue,
				Percentage: split.InstructorShare(100, session),
				Purchases:  []PurchaseLine{},
			}
			if session.Date.Valid {
				d := session.Date.Time
				sr.Date = &d
			}
			ca.sessions[session.SessionID] = sr
		}
		sr.Revenue += amount
		sr.Earned += earned
		sr.Purchases = append(sr.Purchases, PurchaseLine{
			TicketNumber: p.TicketNumber,
			StudentID:    p.UserID,
			StudentName:  l.studentName(p.UserID),
			Amount:       amount,
			Earned:       earned,
			PurchasedAt:  p.PurchasedAt,
			IsTest:       IsTest(p),
		})
	}

	agg.Instructors = flatten(accs)
	for _, r := range agg.Instructors {
		agg.InstructorTotal += r.InstructorShare
	}
	return agg
}

// flatten turns the keyed accumulators into ordered slices:
// instructors by id, courses and sessions by business key.
func flatten(accs map[int64]*instructorAcc) []InstructorReport {
	out := make([]InstructorReport, 0, len(accs))
	for _, ia := range accs {
		report := ia.report
		report.Courses = make([]CourseReport, 0, len(ia.courses))
		for _, ca := range ia.courses {
			course := ca.report
			course.Sessions = make([]SessionReport, 0, len(ca.sessions))
			for _, sr := range ca.sessions {
				course.Sessions = append(course.Sessions, *sr)
			}
			sort.Slice(course.Sessions, func(i, j int) bool {
				return course.Sessions[i].SessionID < course.Sessions[j].SessionID
			})
			report.Courses = append(report.Courses, course)
		}
		sort.Slice(report.Courses, func(i, j int) bool {
			return report.Courses[i].CourseID < report.Courses[j].CourseID
		})
		out = append(out, report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstructorID < out[j].InstructorID })
	return out
}

// sortedByTime returns a chronological copy; ties keep ticket order
func sortedByTime(purchases []Purchase) []Purchase {
	out := make([]Purchase, len(purchases))
	copy(out, purchases)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].PurchasedAt.Before(out[j].PurchasedAt)
		}
		return out[i].TicketNumber < out[j].TicketNumber
	})
	return out
}

// recentPurchases returns up to limit raw purchases, newest first
func recentPurchases(purchases []Purchase, limit int) []Purchase {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	sorted := sortedByTime(purchases)
	out := make([]Purchase, 0, limit)
	for i := len(sorted) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, sorted[i])
	}
	return out
}

// OverviewOptions tunes the overview without changing its arithmetic
type OverviewOptions struct {
	RecentLimit       int
	DefaultPercentage float64
}

// BuildOverview computes the all-time revenue split with per-session
// percentages and reconciles every instructor against all payouts ever made.
func BuildOverview(data Dataset, opts OverviewOptions) Overview {
	split := NewPerSessionSplit()
	if opts.DefaultPercentage > 0 {
		split.DefaultPercentage = opts.DefaultPercentage
	}

	agg := aggregate(data.Purchases, newLookups(data.Sessions, data.Courses, data.Users), split)

	return Overview{
		TotalRevenue:            agg.TotalRevenue,
		TotalPurchases:          len(data.Purchases),
		TotalEnrollments:        data.EnrollmentCount,
		TotalInstructorEarnings: agg.InstructorTotal,
		PlatformAdminEarnings:   agg.TotalRevenue - agg.InstructorTotal,
		InstructorPayouts:       Reconcile(agg.Instructors, data.Payouts, AllTime()),
		RecentTransactions:      recentPurchases(data.Purchases, opts.RecentLimit),
		Skipped:                 agg.Skipped,
	}
}

// timeOrZero is used by exports that need a printable session date
func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
