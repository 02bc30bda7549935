package finance

import (
	"testing"
	"time"
)

func TestBuildOverview_SingleSaleSplit(t *testing.T) {
	overview := BuildOverview(baseDataset(), OverviewOptions{})

	assertMoney(t, "total_revenue", overview.TotalRevenue, 1000)
	assertMoney(t, "total_instructor_earnings", overview.TotalInstructorEarnings, 700)
	assertMoney(t, "platform_admin_earnings", overview.PlatformAdminEarnings, 300)

	if len(overview.InstructorPayouts) != 1 {
		t.Fatalf("expected 1 instructor, got %d", len(overview.InstructorPayouts))
	}
	ip := overview.InstructorPayouts[0]
	if ip.InstructorID != 5 || ip.InstructorName != "Thandi" {
		t.Errorf("unexpected instructor: %+v", ip.InstructorReport)
	}
	assertMoney(t, "instructor_share", ip.InstructorShare, 700)
	assertMoney(t, "pending_payout", ip.PendingPayout, 700)

	if len(ip.Courses) != 1 || len(ip.Courses[0].Sessions) != 1 {
		t.Fatalf("unexpected breakdown: %+v", ip.Courses)
	}
	sess := ip.Courses[0].Sessions[0]
	assertMoney(t, "session percentage", sess.Percentage, 70)
	if len(sess.Purchases) != 1 || sess.Purchases[0].StudentName != "Sipho" {
		t.Errorf("unexpected purchase lines: %+v", sess.Purchases)
	}
}

func TestBuildOverview_TestPurchaseContributesNothing(t *testing.T) {
	data := baseDataset()
	test := purchase("T-2", "S1", "C1", 500, at(2026, time.February, 11))
	test.IsTest = true
	data.Purchases = append(data.Purchases, test)

	overview := BuildOverview(data, OverviewOptions{})

	assertMoney(t, "total_revenue", overview.TotalRevenue, 1000)
	assertMoney(t, "total_instructor_earnings", overview.TotalInstructorEarnings, 700)
	if overview.TotalPurchases != 2 {
		t.Errorf("total_purchases = %d, want 2", overview.TotalPurchases)
	}

	lines := overview.InstructorPayouts[0].Courses[0].Sessions[0].Purchases
	if len(lines) != 2 {
		t.Fatalf("expected test purchase line to be listed, got %d lines", len(lines))
	}
	if !lines[1].IsTest || lines[1].Amount != 0 || lines[1].Earned != 0 {
		t.Errorf("test line = %+v", lines[1])
	}
}

func TestBuildOverview_DefaultPercentageWhenUnset(t *testing.T) {
	data := baseDataset()
	data.Sessions = []Session{session("S1", "C1", nullPct)}

	overview := BuildOverview(data, OverviewOptions{})
	assertMoney(t, "instructor earnings", overview.TotalInstructorEarnings, 700)

	overview = BuildOverview(data, OverviewOptions{DefaultPercentage: 60})
	assertMoney(t, "instructor earnings custom default", overview.TotalInstructorEarnings, 600)
}

func TestBuildOverview_PerSessionPercentages(t *testing.T) {
	data := baseDataset()
	data.Sessions = append(data.Sessions, session("S2", "C1", pct(50)))
	data.Purchases = append(data.Purchases, purchase("T-3", "S2", "C1", 200, at(2026, time.March, 1)))

	overview := BuildOverview(data, OverviewOptions{})

	assertMoney(t, "instructor earnings", overview.TotalInstructorEarnings, 800)
	sessions := overview.InstructorPayouts[0].Courses[0].Sessions
	if len(sessions) != 2 || sessions[0].SessionID != "S1" || sessions[1].SessionID != "S2" {
		t.Fatalf("sessions not ordered by id: %+v", sessions)
	}
	assertMoney(t, "S2 earned", sessions[1].Earned, 100)
}

func TestBuildOverview_OrphansCountTowardRevenueOnly(t *testing.T) {
	data := baseDataset()
	data.Courses = append(data.Courses,
		Course{CourseID: "C-unassigned", Title: "No tutor"},
		Course{CourseID: "C-ghost", Title: "Deleted tutor", InstructorID: "999"},
		Course{CourseID: "C-uid", Title: "Legacy ref", InstructorID: "u_abc"},
	)
	data.Sessions = append(data.Sessions,
		session("S-unassigned", "C-unassigned", nullPct),
		session("S-ghost", "C-ghost", nullPct),
		session("S-uid", "C-uid", nullPct),
	)
	data.Purchases = append(data.Purchases,
		purchase("T-a", "S-missing", "C1", 100, at(2026, time.February, 1)),
		purchase("T-b", "S1", "C-missing", 100, at(2026, time.February, 1)),
		purchase("T-c", "S-unassigned", "C-unassigned", 100, at(2026, time.February, 1)),
		purchase("T-d", "S-ghost", "C-ghost", 100, at(2026, time.February, 1)),
		purchase("T-e", "S-uid", "C-uid", 100, at(2026, time.February, 1)),
	)

	overview := BuildOverview(data, OverviewOptions{})

	assertMoney(t, "total_revenue", overview.TotalRevenue, 1500)
	assertMoney(t, "instructor earnings", overview.TotalInstructorEarnings, 700)
	assertMoney(t, "platform earnings", overview.PlatformAdminEarnings, 800)

	want := SkipStats{MissingSession: 1, MissingCourse: 1, Unassigned: 1, UnknownInstructor: 2}
	if overview.Skipped != want {
		t.Errorf("skipped = %+v, want %+v", overview.Skipped, want)
	}
	if overview.Skipped.Total() != 5 {
		t.Errorf("skipped total = %d", overview.Skipped.Total())
	}
}

func TestBuildOverview_Conservation(t *testing.T) {
	data := baseDataset()
	data.Users = append(data.Users, User{ID: 7, Name: "Lerato", Role: RoleInstructor})
	data.Courses = append(data.Courses, Course{CourseID: "C2", Title: "Physics", InstructorID: "7"})
	data.Sessions = append(data.Sessions, session("S3", "C2", pct(82.5)))
	data.Purchases = append(data.Purchases,
		purchase("T-4", "S3", "C2", 333.33, at(2026, time.January, 5)),
		purchase("T-5", "S3", "C2", 19.99, at(2026, time.January, 6)),
	)

	overview := BuildOverview(data, OverviewOptions{})

	var shares float64
	for _, ip := range overview.InstructorPayouts {
		shares += ip.InstructorShare
	}
	assertMoney(t, "sum of shares", shares, overview.TotalInstructorEarnings)
	assertMoney(t, "conservation", overview.TotalInstructorEarnings+overview.PlatformAdminEarnings, overview.TotalRevenue)

	if overview.InstructorPayouts[0].InstructorID != 5 || overview.InstructorPayouts[1].InstructorID != 7 {
		t.Errorf("instructors not ordered by id")
	}
}

func TestBuildOverview_RecentTransactions(t *testing.T) {
	data := baseDataset()
	for i := 1; i <= 12; i++ {
		data.Purchases = append(data.Purchases, purchase("R-"+string(rune('a'+i)), "S1", "C1", 10, at(2026, time.March, i)))
	}

	overview := BuildOverview(data, OverviewOptions{})
	if len(overview.RecentTransactions) != DefaultRecentLimit {
		t.Fatalf("recent = %d, want %d", len(overview.RecentTransactions), DefaultRecentLimit)
	}
	if !overview.RecentTransactions[0].PurchasedAt.Equal(at(2026, time.March, 12)) {
		t.Errorf("newest first expected, got %v", overview.RecentTransactions[0].PurchasedAt)
	}

	overview = BuildOverview(data, OverviewOptions{RecentLimit: 3})
	if len(overview.RecentTransactions) != 3 {
		t.Errorf("recent = %d, want 3", len(overview.RecentTransactions))
	}
}

func TestBuildOverview_Empty(t *testing.T) {
	overview := BuildOverview(Dataset{}, OverviewOptions{})

	if overview.TotalRevenue != 0 || overview.TotalInstructorEarnings != 0 || overview.PlatformAdminEarnings != 0 {
		t.Errorf("expected zero totals, got %+v", overview)
	}
	if overview.InstructorPayouts == nil || len(overview.InstructorPayouts) != 0 {
		t.Errorf("expected empty non-nil instructor list")
	}
}

func TestBuildOverview_UnknownStudentName(t *testing.T) {
	data := baseDataset()
	data.Purchases[0].UserID = 4242

	overview := BuildOverview(data, OverviewOptions{})
	line := overview.InstructorPayouts[0].Courses[0].Sessions[0].Purchases[0]
	if line.StudentName != "Unknown" {
		t.Errorf("student name = %q, want Unknown", line.StudentName)
	}
}
