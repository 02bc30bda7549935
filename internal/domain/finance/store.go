package finance

import "context"

// Store is the record store finance reads from. Every method is a plain
// read except InsertPayout, which only appends.
type Store interface {
	ListPurchases(ctx context.Context) ([]Purchase, error)
	ListSessions(ctx context.Context) ([]Session, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListUsers(ctx context.Context) ([]User, error)
	CountEnrollments(ctx context.Context) (int, error)

	ListPayouts(ctx context.Context, filter PayoutFilter) ([]Payout, error)
	// GetUserByID returns nil, nil when no user has the given numeric id
	GetUserByID(ctx context.Context, id int64) (*User, error)
	InsertPayout(ctx context.Context, payout *Payout) error
}
