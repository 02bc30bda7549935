package finance

import (
	"context"
	"errors"
	"sync"
)

var errStoreDown = errors.New("connection refused")

// memoryStore is an in-memory Store. failOn names a read that returns errStoreDown.
type memoryStore struct {
	mu     sync.Mutex
	data   Dataset
	failOn string
}

func newMemoryStore(data Dataset) *memoryStore {
	return &memoryStore{data: data}
}

func (m *memoryStore) fail(op string) error {
	if m.failOn == op {
		return errStoreDown
	}
	return nil
}

func (m *memoryStore) ListPurchases(context.Context) ([]Purchase, error) {
	return m.data.Purchases, m.fail("purchases")
}

func (m *memoryStore) ListSessions(context.Context) ([]Session, error) {
	return m.data.Sessions, m.fail("sessions")
}

func (m *memoryStore) ListCourses(context.Context) ([]Course, error) {
	return m.data.Courses, m.fail("courses")
}

func (m *memoryStore) ListUsers(context.Context) ([]User, error) {
	return m.data.Users, m.fail("users")
}

func (m *memoryStore) CountEnrollments(context.Context) (int, error) {
	return m.data.EnrollmentCount, m.fail("enrollments")
}

func (m *memoryStore) ListPayouts(_ context.Context, f PayoutFilter) ([]Payout, error) {
	if err := m.fail("payouts"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Payout{}
	for _, p := range m.data.Payouts {
		if f.InstructorID != 0 && p.InstructorID != f.InstructorID {
			continue
		}
		if f.Year != 0 && p.Year != f.Year {
			continue
		}
		if f.Month != 0 && p.Month != f.Month {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryStore) GetUserByID(_ context.Context, id int64) (*User, error) {
	if err := m.fail("user"); err != nil {
		return nil, err
	}
	for i := range m.data.Users {
		if m.data.Users[i].ID == id {
			u := m.data.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) InsertPayout(_ context.Context, p *Payout) error {
	if err := m.fail("insert"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Payouts = append(m.data.Payouts, *p)
	return nil
}

func (m *memoryStore) payoutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data.Payouts)
}

type recordingNotifier struct {
	mu      sync.Mutex
	payouts []*Payout
}

func (r *recordingNotifier) PayoutCompleted(_ context.Context, p *Payout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payouts = append(r.payouts, p)
}
