package finance

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestService_Overview(t *testing.T) {
	data := baseDataset()
	data.EnrollmentCount = 3
	data.Payouts = []Payout{{InstructorID: 5, AmountPaid: 200, Year: 2026, Month: 2}}
	svc := NewService(newMemoryStore(data), nil, Options{})

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.TotalEnrollments != 3 {
		t.Errorf("total_enrollments = %d", overview.TotalEnrollments)
	}
	assertMoney(t, "paid_out", overview.InstructorPayouts[0].PaidOut, 200)
	assertMoney(t, "pending_payout", overview.InstructorPayouts[0].PendingPayout, 500)
}

func TestService_ReadFailureFailsWholeReport(t *testing.T) {
	for _, op := range []string{"purchases", "sessions", "courses", "users", "payouts", "enrollments"} {
		t.Run(op, func(t *testing.T) {
			store := newMemoryStore(baseDataset())
			store.failOn = op
			svc := NewService(store, nil, Options{})

			overview, err := svc.Overview(context.Background())
			if !errors.Is(err, ErrAggregationFailed) {
				t.Fatalf("expected ErrAggregationFailed, got %v", err)
			}
			if !errors.Is(err, errStoreDown) {
				t.Errorf("cause not preserved: %v", err)
			}
			if overview != nil {
				t.Error("expected no partial overview")
			}
		})
	}
}

func TestService_MonthlySummaryReadFailure(t *testing.T) {
	store := newMemoryStore(baseDataset())
	store.failOn = "users"
	svc := NewService(store, nil, Options{})

	period, _ := MonthPeriod(2026, 2)
	if _, err := svc.MonthlySummary(context.Background(), period); !errors.Is(err, ErrAggregationFailed) {
		t.Fatalf("expected ErrAggregationFailed, got %v", err)
	}
}

func TestService_MarkPayoutPaid(t *testing.T) {
	store := newMemoryStore(baseDataset())
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, Options{})
	fixed := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	payout, err := svc.MarkPayoutPaid(context.Background(), MarkPaidRequest{
		InstructorID:     5,
		Month:            2,
		Year:             2026,
		AmountPaid:       700,
		PaymentReference: "  EFT-1  ",
		PaidBy:           "ops@tutorhub.test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payout.ID == "" || payout.Status != PayoutStatusCompleted {
		t.Errorf("unexpected payout: %+v", payout)
	}
	if payout.InstructorName != "Thandi" || payout.InstructorEmail != "thandi@example.com" {
		t.Errorf("instructor details not denormalised: %+v", payout)
	}
	if payout.PaymentMethod != DefaultPayoutMethod || payout.PaymentReference != "EFT-1" {
		t.Errorf("request not normalised: %+v", payout)
	}
	if !payout.PaidAt.Equal(fixed) || !payout.CreatedAt.Equal(fixed) {
		t.Errorf("timestamps = %v / %v", payout.PaidAt, payout.CreatedAt)
	}
	if store.payoutCount() != 1 {
		t.Errorf("payout rows = %d, want 1", store.payoutCount())
	}
	if len(notifier.payouts) != 1 || notifier.payouts[0].ID != payout.ID {
		t.Errorf("notifier not called with payout")
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	assertMoney(t, "pending after payout", overview.InstructorPayouts[0].PendingPayout, 0)
}

func TestService_MarkPayoutPaid_UnknownInstructor(t *testing.T) {
	store := newMemoryStore(baseDataset())
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, Options{})

	_, err := svc.MarkPayoutPaid(context.Background(), MarkPaidRequest{
		InstructorID: 404, Month: 2, Year: 2026, AmountPaid: 10,
	})
	if !errors.Is(err, ErrInstructorNotFound) {
		t.Fatalf("expected ErrInstructorNotFound, got %v", err)
	}
	if store.payoutCount() != 0 {
		t.Errorf("payout row created for unknown instructor")
	}
	if len(notifier.payouts) != 0 {
		t.Errorf("notifier called for rejected payout")
	}
}

func TestService_MarkPayoutPaid_InsertFailure(t *testing.T) {
	store := newMemoryStore(baseDataset())
	store.failOn = "insert"
	notifier := &recordingNotifier{}
	svc := NewService(store, notifier, Options{})

	_, err := svc.MarkPayoutPaid(context.Background(), MarkPaidRequest{
		InstructorID: 5, Month: 2, Year: 2026, AmountPaid: 10,
	})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(notifier.payouts) != 0 {
		t.Errorf("notifier called for failed insert")
	}
}

func TestService_PayoutListings(t *testing.T) {
	data := baseDataset()
	data.Payouts = []Payout{
		{ID: "a", InstructorID: 5, Year: 2026, Month: 1, AmountPaid: 100},
		{ID: "b", InstructorID: 5, Year: 2026, Month: 2, AmountPaid: 150},
		{ID: "c", InstructorID: 7, Year: 2026, Month: 2, AmountPaid: 50},
	}
	svc := NewService(newMemoryStore(data), nil, Options{})
	ctx := context.Background()

	mine, err := svc.InstructorPayouts(ctx, 5)
	if err != nil || len(mine) != 2 {
		t.Fatalf("instructor payouts = %d, %v", len(mine), err)
	}

	period, _ := MonthPeriod(2026, 2)
	feb, err := svc.PeriodPayouts(ctx, period)
	if err != nil || len(feb) != 2 {
		t.Fatalf("period payouts = %d, %v", len(feb), err)
	}

	if _, err := svc.PeriodPayouts(ctx, AllTimePeriod()); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}

	all, err := svc.ListPayouts(ctx, PayoutFilter{})
	if err != nil || len(all) != 3 {
		t.Fatalf("all payouts = %d, %v", len(all), err)
	}
	assertMoney(t, "total_paid", NewPayoutListResponse(all).TotalPaid, 300)
}

func TestService_Transactions(t *testing.T) {
	svc := NewService(newMemoryStore(baseDataset()), nil, Options{})

	records, err := svc.Transactions(context.Background(), DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].CourseTitle != "Algebra" {
		t.Errorf("unexpected records: %+v", records)
	}
}
