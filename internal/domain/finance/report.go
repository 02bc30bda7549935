package finance

import "time"

// Dataset is every table a finance report reads, loaded in one pass
type Dataset struct {
	Purchases       []Purchase
	Sessions        []Session
	Courses         []Course
	Users           []User
	Payouts         []Payout
	EnrollmentCount int
}

// PurchaseLine is a single purchase inside a session breakdown
type PurchaseLine struct {
	TicketNumber string    `json:"ticket_number"`
	StudentID    int64     `json:"student_id"`
	StudentName  string    `json:"student_name"`
	Amount       float64   `json:"amount"`
	Earned       float64   `json:"earned"`
	PurchasedAt  time.Time `json:"purchased_at"`
	IsTest       bool      `json:"is_test"`
}

// SessionReport holds a session's revenue and its purchase lines
type SessionReport struct {
	SessionID  string         `json:"session_id"`
	Title      string         `json:"title"`
	Venue      string         `json:"venue,omitempty"`
	Date       *time.Time     `json:"date,omitempty"`
	Percentage float64        `json:"instructor_payout_percentage"`
	Revenue    float64        `json:"revenue"`
	Earned     float64        `json:"earned"`
	Purchases  []PurchaseLine `json:"purchases"`
}

// CourseReport groups sessions of one course
type CourseReport struct {
	CourseID string          `json:"course_id"`
	Title    string          `json:"title"`
	Revenue  float64         `json:"revenue"`
	Earned   float64         `json:"earned"`
	Sessions []SessionReport `json:"sessions"`
}

// InstructorReport is one instructor's earnings breakdown
type InstructorReport struct {
	InstructorID    int64          `json:"instructor_id"`
	InstructorName  string         `json:"instructor_name"`
	InstructorEmail string         `json:"instructor_email"`
	TotalRevenue    float64        `json:"total_revenue"`
	InstructorShare float64        `json:"instructor_share"`
	Courses         []CourseReport `json:"courses"`
}

// InstructorPayout is an instructor report reconciled against the payout ledger
type InstructorPayout struct {
	InstructorReport
	PaidOut       float64 `json:"paid_out"`
	PendingPayout float64 `json:"pending_payout"`
}

// SkipStats counts purchases left out of instructor aggregation.
// Skipping is policy, not failure: those purchases still count toward total revenue.
type SkipStats struct {
	MissingSession    int `json:"missing_session"`
	MissingCourse     int `json:"missing_course"`
	Unassigned        int `json:"unassigned"`
	UnknownInstructor int `json:"unknown_instructor"`
}

// Total returns the number of skipped purchases
func (s SkipStats) Total() int {
	return s.MissingSession + s.MissingCourse + s.Unassigned + s.UnknownInstructor
}

// Overview is the all-time finance dashboard
type Overview struct {
	TotalRevenue            float64            `json:"total_revenue"`
	TotalPurchases          int                `json:"total_purchases"`
	TotalEnrollments        int                `json:"total_enrollments"`
	TotalInstructorEarnings float64            `json:"total_instructor_earnings"`
	PlatformAdminEarnings   float64            `json:"platform_admin_earnings"`
	InstructorPayouts       []InstructorPayout `json:"instructor_payouts"`
	RecentTransactions      []Purchase         `json:"recent_transactions"`
	Skipped                 SkipStats          `json:"-"`
}

// MonthlySummary is the flat-split earnings view for a period
type MonthlySummary struct {
	Period             string             `json:"period"`
	TotalRevenue       float64            `json:"total_revenue"`
	InstructorEarned   float64            `json:"instructor_earned"`
	SpecialAdminEarned float64            `json:"special_admin_earned"`
	RegularAdminEarned float64            `json:"regular_admin_earned"`
	Instructors        []InstructorReport `json:"instructors"`
	Skipped            SkipStats          `json:"-"`
}

// PeriodBalances reconciles one period's per-session earnings with that period's payouts
type PeriodBalances struct {
	Period       string             `json:"period"`
	TotalRevenue float64            `json:"total_revenue"`
	Instructors  []InstructorPayout `json:"instructors"`
}

// TransactionRecord is a purchase prepared for audit display.
// Amount shadows Purchase.Amount in JSON output.
type TransactionRecord struct {
	Purchase
	Amount         float64       `json:"amount"`
	OriginalAmount float64       `json:"original_amount"`
	IsTest         bool          `json:"is_test"`
	CourseTitle    string        `json:"course_title"`
	InstructorID   InstructorRef `json:"instructor_id"`
}
