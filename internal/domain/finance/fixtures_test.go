package finance

import (
	"database/sql"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertMoney(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !almostEqual(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

var nullPct = sql.NullFloat64{}

func pct(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func session(id, courseID string, percentage sql.NullFloat64) Session {
	return Session{SessionID: id, CourseID: courseID, Title: "Session " + id, InstructorPayoutPercentage: percentage}
}

func purchase(ticket, sessionID, courseID string, amount float64, when time.Time) Purchase {
	return Purchase{
		TicketNumber:  ticket,
		UserID:        100,
		SessionID:     sessionID,
		CourseID:      courseID,
		Amount:        amount,
		PaymentMethod: "card",
		Status:        "paid",
		PurchasedAt:   when,
	}
}

// baseDataset is scenario A: one instructor (5) teaching C1 through session S1 at 70%
func baseDataset() Dataset {
	return Dataset{
		Purchases: []Purchase{
			purchase("T-1", "S1", "C1", 1000, at(2026, time.February, 10)),
		},
		Sessions: []Session{session("S1", "C1", pct(70))},
		Courses:  []Course{{CourseID: "C1", Title: "Algebra", InstructorID: "5"}},
		Users: []User{
			{ID: 5, Name: "Thandi", Email: "thandi@example.com", Role: RoleInstructor},
			{ID: 100, Name: "Sipho", Role: RoleStudent},
		},
	}
}
