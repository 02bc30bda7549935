package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options tunes report generation
type Options struct {
	RecentLimit       int
	DefaultPercentage float64
}

// Service generates finance reports and records payouts.
// Nothing is cached: every report is recomputed from the store.
type Service struct {
	store    Store
	notifier PayoutNotifier
	opts     Options
	now      func() time.Time
}

// NewService creates finance service. notifier may be nil.
func NewService(store Store, notifier PayoutNotifier, opts Options) *Service {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	if opts.DefaultPercentage <= 0 {
		opts.DefaultPercentage = DefaultInstructorPercentage
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// tables selects which optional tables a report needs beyond purchases
type tables struct {
	sessions    bool
	users       bool
	payouts     bool
	enrollments bool
}

var (
	overviewTables = tables{sessions: true, users: true, payouts: true, enrollments: true}
	summaryTables  = tables{sessions: true, users: true}
	balanceTables  = tables{sessions: true, users: true, payouts: true}
	listingTables  = tables{}
)

// load issues the independent reads concurrently and fails the whole
// report if any of them fails.
func (s *Service) load(ctx context.Context, need tables) (Dataset, error) {
	var data Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		data.Purchases, err = s.store.ListPurchases(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Courses, err = s.store.ListCourses(gctx)
		return err
	})
	if need.sessions {
		g.Go(func() (err error) {
			data.Sessions, err = s.store.ListSessions(gctx)
			return err
		})
	}
	if need.users {
		g.Go(func() (err error) {
			data.Users, err = s.store.ListUsers(gctx)
			return err
		})
	}
	if need.payouts {
		g.Go(func() (err error) {
			data.Payouts, err = s.store.ListPayouts(gctx, PayoutFilter{})
			return err
		})
	}
	if need.enrollments {
		g.Go(func() (err error) {
			data.EnrollmentCount, err = s.store.CountEnrollments(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrAggregationFailed, err)
	}
	return data, nil
}

// Overview returns the all-time revenue split and payout balances
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	data, err := s.load(ctx, overviewTables)
	if err != nil {
		return nil, err
	}

	overview := BuildOverview(data, OverviewOptions{
		RecentLimit:       s.opts.RecentLimit,
		DefaultPercentage: s.opts.DefaultPercentage,
	})

	log.Debug().
		Int("purchases", overview.TotalPurchases).
		Int("instructors", len(overview.InstructorPayouts)).
		Int("skipped", overview.Skipped.Total()).
		Interface("skip_reasons", overview.Skipped).
		Msg("finance overview computed")

	return &overview, nil
}

// MonthlySummary returns the flat-split summary for a period
func (s *Service) MonthlySummary(ctx context.Context, period Period) (*MonthlySummary, error) {
	data, err := s.load(ctx, summaryTables)
	if err != nil {
		return nil, err
	}

	summary := BuildMonthlySummary(data, period)

	log.Debug().
		Str("period", summary.Period).
		Float64("total_revenue", summary.TotalRevenue).
		Int("instructors", len(summary.Instructors)).
		Int("skipped", summary.Skipped.Total()).
		Msg("finance monthly summary computed")

	return &summary, nil
}

// PeriodBalances reconciles a single month's earnings with that month's payouts
func (s *Service) PeriodBalances(ctx context.Context, period Period) (*PeriodBalances, error) {
	if period.IsAllTime() {
		return nil, ErrInvalidPeriod
	}

	data, err := s.load(ctx, balanceTables)
	if err != nil {
		return nil, err
	}

	balances, err := BuildPeriodBalances(data, period, s.opts.DefaultPercentage)
	if err != nil {
		return nil, err
	}
	return &balances, nil
}

// Transactions lists purchases for audit display
func (s *Service) Transactions(ctx context.Context, rng DateRange) ([]TransactionRecord, error) {
	data, err := s.load(ctx, listingTables)
	if err != nil {
		return nil, err
	}
	return ListTransactions(data.Purchases, data.Courses, rng), nil
}

// MarkPayoutPaid appends a completed payout for an existing instructor.
// It is a pure insert: the pending balance is neither read nor enforced.
func (s *Service) MarkPayoutPaid(ctx context.Context, req MarkPaidRequest) (*Payout, error) {
	req.Normalize()

	instructor, err := s.store.GetUserByID(ctx, req.InstructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, ErrInstructorNotFound
	}

	now := s.now()
	payout := &Payout{
		ID:               uuid.New().String(),
		InstructorID:     instructor.ID,
		InstructorName:   instructor.Name,
		InstructorEmail:  instructor.Email,
		Month:            req.Month,
		Year:             req.Year,
		AmountPaid:       req.AmountPaid,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		PaidBy:           req.PaidBy,
		Status:           PayoutStatusCompleted,
		PaidAt:           now,
		CreatedAt:        now,
	}

	if err := s.store.InsertPayout(ctx, payout); err != nil {
		return nil, err
	}

	log.Info().
		Str("payout_id", payout.ID).
		Int64("instructor_id", payout.InstructorID).
		Float64("amount_paid", payout.AmountPaid).
		Int("year", payout.Year).
		Int("month", payout.Month).
		Str("paid_by", payout.PaidBy).
		Msg("instructor payout recorded")

	s.notifier.PayoutCompleted(ctx, payout)

	return payout, nil
}

// ListPayouts returns payouts matching filter, newest first
func (s *Service) ListPayouts(ctx context.Context, filter PayoutFilter) ([]Payout, error) {
	return s.store.ListPayouts(ctx, filter)
}

// InstructorPayouts returns every payout made to one instructor
func (s *Service) InstructorPayouts(ctx context.Context, instructorID int64) ([]Payout, error) {
	return s.store.ListPayouts(ctx, PayoutFilter{InstructorID: instructorID})
}

// PeriodPayouts returns payouts recorded for a year and month
func (s *Service) PeriodPayouts(ctx context.Context, period Period) ([]Payout, error) {
	if period.IsAllTime() {
		return nil, ErrInvalidPeriod
	}
	return s.store.ListPayouts(ctx, PayoutFilter{Year: period.Year, Month: period.Month})
}
