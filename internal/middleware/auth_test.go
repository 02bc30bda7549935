package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tutorhub/tutorhub-api/internal/pkg/jwt"
)

func TestAuthMiddlewareAllowsValidAccessToken(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Minute)
	token, err := jwtSvc.GenerateAccessToken(7, RoleAdmin)
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	var gotID int64
	var gotRole string
	protected := Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotRole = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != 7 || gotRole != RoleAdmin {
		t.Fatalf("unexpected context values: id=%d role=%q", gotID, gotRole)
	}
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Minute)
	protected := Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	w := httptest.NewRecorder()
	protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	jwtSvc := jwt.NewService("secret", -time.Minute)
	token, err := jwtSvc.GenerateAccessToken(7, RoleAdmin)
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	protected := Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Minute)
	token, err := jwtSvc.GenerateAccessToken(3, RoleStudent)
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	protected := Auth(jwtSvc)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
