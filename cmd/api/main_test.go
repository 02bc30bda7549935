package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tutorhub/tutorhub-api/internal/config"
	"github.com/tutorhub/tutorhub-api/internal/domain/finance"
	"github.com/tutorhub/tutorhub-api/internal/pkg/jwt"
)

type emptyStore struct{}

func (emptyStore) ListPurchases(context.Context) ([]finance.Purchase, error) { return nil, nil }
func (emptyStore) ListSessions(context.Context) ([]finance.Session, error)   { return nil, nil }
func (emptyStore) ListCourses(context.Context) ([]finance.Course, error)     { return nil, nil }
func (emptyStore) ListUsers(context.Context) ([]finance.User, error)         { return nil, nil }
func (emptyStore) CountEnrollments(context.Context) (int, error)             { return 0, nil }
func (emptyStore) ListPayouts(context.Context, finance.PayoutFilter) ([]finance.Payout, error) {
	return nil, nil
}
func (emptyStore) GetUserByID(context.Context, int64) (*finance.User, error) { return nil, nil }
func (emptyStore) InsertPayout(context.Context, *finance.Payout) error       { return nil }

func newTestRouter(t *testing.T) (http.Handler, *jwt.Service) {
	t.Helper()
	jwtService := jwt.NewService("test-secret", time.Minute)
	svc := finance.NewService(emptyStore{}, nil, finance.Options{})
	cfg := &config.Config{AllowedOrigins: []string{"http://localhost:3000"}}
	return newRouter(cfg, jwtService, finance.NewHandler(svc, nil)), jwtService
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRouter_FinanceRoutesRequireAdmin(t *testing.T) {
	r, jwtService := newTestRouter(t)

	instructorToken, err := jwtService.GenerateAccessToken(5, "instructor")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	adminToken, err := jwtService.GenerateAccessToken(1, "admin")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"instructor", instructorToken, http.StatusForbidden},
		{"admin", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/finance/overview", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestRouter_InstructorSelfView(t *testing.T) {
	r, jwtService := newTestRouter(t)

	token, err := jwtService.GenerateAccessToken(5, "instructor")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/finance/me/payouts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}
