package finance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const defaultQueryTimeout = 5 * time.Second

// Repository is the Postgres-backed Store
type Repository struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// NewRepository creates finance repository. A zero timeout uses the default.
func NewRepository(db *sqlx.DB, queryTimeout time.Duration) *Repository {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Repository{db: db, queryTimeout: queryTimeout}
}

func (r *Repository) ListPurchases(ctx context.Context) ([]Purchase, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	purchases := make([]Purchase, 0)
	err := r.db.SelectContext(ctx2, &purchases, `
		SELECT id, ticket_number, user_id, session_id, course_id, amount,
		       COALESCE(payment_method, '') AS payment_method,
		       COALESCE(status, '') AS status,
		       COALESCE(is_test, false) AS is_test,
		       purchased_at
		FROM purchases
		ORDER BY purchased_at ASC, ticket_number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list purchases: %v", ErrInternal, err)
	}
	return purchases, nil
}

func (r *Repository) ListSessions(ctx context.Context) ([]Session, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	sessions := make([]Session, 0)
	err := r.db.SelectContext(ctx2, &sessions, `
		SELECT id, session_id, course_id,
		       COALESCE(title, '') AS title,
		       COALESCE(venue, '') AS venue,
		       date, instructor_payout_percentage
		FROM sessions
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list sessions: %v", ErrInternal, err)
	}
	return sessions, nil
}

func (r *Repository) ListCourses(ctx context.Context) ([]Course, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	courses := make([]Course, 0)
	err := r.db.SelectContext(ctx2, &courses, `
		SELECT id, course_id, COALESCE(title, '') AS title,
		       COALESCE(instructor_id::text, '') AS instructor_id
		FROM courses
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list courses: %v", ErrInternal, err)
	}
	return courses, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	users := make([]User, 0)
	err := r.db.SelectContext(ctx2, &users, `
		SELECT id, COALESCE(uid, '') AS uid, COALESCE(name, '') AS name,
		       COALESCE(email, '') AS email, role,
		       COALESCE(special_admin, false) AS special_admin
		FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrInternal, err)
	}
	return users, nil
}

func (r *Repository) CountEnrollments(ctx context.Context) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var count int
	if err := r.db.GetContext(ctx2, &count, `SELECT COUNT(*) FROM enrollments`); err != nil {
		return 0, fmt.Errorf("%w: count enrollments: %v", ErrInternal, err)
	}
	return count, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var u User
	err := r.db.GetContext(ctx2, &u, `
		SELECT id, COALESCE(uid, '') AS uid, COALESCE(name, '') AS name,
		       COALESCE(email, '') AS email, role,
		       COALESCE(special_admin, false) AS special_admin
		FROM users WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}
	return &u, nil
}

func (r *Repository) ListPayouts(ctx context.Context, filter PayoutFilter) ([]Payout, error) {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	base := `
		SELECT id, instructor_id, instructor_name, instructor_email, month, year, amount_paid,
		       payment_method, COALESCE(payment_reference, '') AS payment_reference,
		       COALESCE(paid_by, '') AS paid_by, status, paid_at, created_at
		FROM payouts
		WHERE 1=1`
	args := make([]interface{}, 0, 3)
	idx := 1

	if filter.InstructorID > 0 {
		base += fmt.Sprintf(" AND instructor_id = $%d", idx)
		args = append(args, filter.InstructorID)
		idx++
	}
	if filter.Year > 0 {
		base += fmt.Sprintf(" AND year = $%d", idx)
		args = append(args, filter.Year)
		idx++
	}
	if filter.Month > 0 {
		base += fmt.Sprintf(" AND month = $%d", idx)
		args = append(args, filter.Month)
	}

	base = strings.TrimSpace(base) + " ORDER BY paid_at DESC"

	payouts := make([]Payout, 0)
	if err := r.db.SelectContext(ctx2, &payouts, base, args...); err != nil {
		return nil, fmt.Errorf("%w: list payouts: %v", ErrInternal, err)
	}
	return payouts, nil
}

func (r *Repository) InsertPayout(ctx context.Context, p *Payout) error {
	ctx2, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	_, err := r.db.NamedExecContext(ctx2, `
		INSERT INTO payouts (
			id, instructor_id, instructor_name, instructor_email, month, year, amount_paid,
			payment_method, payment_reference, paid_by, status, paid_at, created_at
		) VALUES (
			:id, :instructor_id, :instructor_name, :instructor_email, :month, :year, :amount_paid,
			:payment_method, :payment_reference, :paid_by, :status, :paid_at, :created_at
		)
	`, p)
	if err != nil {
		return fmt.Errorf("%w: insert payout: %v", ErrInternal, err)
	}
	return nil
}
