package finance

import "testing"

func TestPerSessionSplit(t *testing.T) {
	split := NewPerSessionSplit()

	s := session("S1", "C1", pct(60))
	assertMoney(t, "configured", split.InstructorShare(1000, &s), 600)

	unset := session("S2", "C1", nullPct)
	assertMoney(t, "default", split.InstructorShare(1000, &unset), 700)

	assertMoney(t, "nil session", split.InstructorShare(100, nil), 70)

	custom := PerSessionSplit{DefaultPercentage: 50}
	assertMoney(t, "custom default", custom.InstructorShare(100, &unset), 50)
}

func TestPerSessionSplit_ZeroPercentIsHonoured(t *testing.T) {
	s := session("S1", "C1", pct(0))
	assertMoney(t, "zero", NewPerSessionSplit().InstructorShare(1000, &s), 0)
}

func TestFlatPeriodSplit(t *testing.T) {
	with := NewFlatPeriodSplit(true)
	s := session("S1", "C1", pct(95))

	assertMoney(t, "instructor ignores session", with.InstructorShare(1000, &s), 700)
	assertMoney(t, "special admin", with.SpecialAdmin, 0.20)
	if with.RegularAdmin() != 0.1 {
		t.Errorf("RegularAdmin() = %v, want exactly 0.1", with.RegularAdmin())
	}

	without := NewFlatPeriodSplit(false)
	assertMoney(t, "special admin absent", without.SpecialAdmin, 0)
	if without.RegularAdmin() != 0.3 {
		t.Errorf("RegularAdmin() = %v, want exactly 0.3", without.RegularAdmin())
	}
}

func TestHasSpecialAdmin(t *testing.T) {
	if HasSpecialAdmin([]User{{ID: 1}, {ID: 2}}) {
		t.Error("expected no special admin")
	}
	if !HasSpecialAdmin([]User{{ID: 1}, {ID: 2, SpecialAdmin: true}}) {
		t.Error("expected special admin")
	}
}
