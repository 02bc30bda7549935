package finance

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Role represents user role in the tutoring program
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Payout statuses
const (
	PayoutStatusCompleted = "completed"
)

// InstructorRef is the raw instructor reference stored on a course.
// Finance resolves it against the numeric users.id column. Other subsystems
// (course CRUD, session management) key instructors by users.uid instead;
// the two keys must be reconciled where those subsystems write courses.
type InstructorRef string

// IsEmpty reports whether the course has no instructor assigned
func (r InstructorRef) IsEmpty() bool {
	return strings.TrimSpace(string(r)) == ""
}

// UserID parses the reference as a numeric user id
func (r InstructorRef) UserID() (int64, bool) {
	if r.IsEmpty() {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(r)), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// User is the subset of a user row finance needs
type User struct {
	ID           int64  `db:"id" json:"id"`
	UID          string `db:"uid" json:"uid"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	Role         Role   `db:"role" json:"role"`
	SpecialAdmin bool   `db:"special_admin" json:"special_admin"`
}

// Course represents a course row
type Course struct {
	ID           int64         `db:"id" json:"id"`
	CourseID     string        `db:"course_id" json:"course_id"`
	Title        string        `db:"title" json:"title"`
	InstructorID InstructorRef `db:"instructor_id" json:"instructor_id"`
}

// Session represents a scheduled tutoring session of a course
type Session struct {
	ID                         int64           `db:"id" json:"id"`
	SessionID                  string          `db:"session_id" json:"session_id"`
	CourseID                   string          `db:"course_id" json:"course_id"`
	Title                      string          `db:"title" json:"title"`
	Venue                      string          `db:"venue" json:"venue"`
	Date                       sql.NullTime    `db:"date" json:"-"`
	InstructorPayoutPercentage sql.NullFloat64 `db:"instructor_payout_percentage" json:"-"`
}

// PayoutPercentage returns the configured instructor percentage or def when unset
func (s *Session) PayoutPercentage(def float64) float64 {
	if s.InstructorPayoutPercentage.Valid {
		return s.InstructorPayoutPercentage.Float64
	}
	return def
}

// Purchase is a settled ticket payment. Finance never mutates purchases.
type Purchase struct {
	ID            int64     `db:"id" json:"id"`
	TicketNumber  string    `db:"ticket_number" json:"ticket_number"`
	UserID        int64     `db:"user_id" json:"user_id"`
	SessionID     string    `db:"session_id" json:"session_id"`
	CourseID      string    `db:"course_id" json:"course_id"`
	Amount        float64   `db:"amount" json:"amount"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	Status        string    `db:"status" json:"status"`
	IsTest        bool      `db:"is_test" json:"is_test"`
	PurchasedAt   time.Time `db:"purchased_at" json:"purchased_at"`
}

// Payout is an append-only ledger row recording money paid to an instructor
type Payout struct {
	ID               string    `db:"id" json:"id"`
	InstructorID     int64     `db:"instructor_id" json:"instructor_id"`
	InstructorName   string    `db:"instructor_name" json:"instructor_name"`
	InstructorEmail  string    `db:"instructor_email" json:"instructor_email"`
	Month            int       `db:"month" json:"month"`
	Year             int       `db:"year" json:"year"`
	AmountPaid       float64   `db:"amount_paid" json:"amount_paid"`
	PaymentMethod    string    `db:"payment_method" json:"payment_method"`
	PaymentReference string    `db:"payment_reference" json:"payment_reference,omitempty"`
	PaidBy           string    `db:"paid_by" json:"paid_by,omitempty"`
	Status           string    `db:"status" json:"status"`
	PaidAt           time.Time `db:"paid_at" json:"paid_at"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// PayoutFilter narrows payout listings. Zero values mean "any".
type PayoutFilter struct {
	InstructorID int64
	Year         int
	Month        int
}
