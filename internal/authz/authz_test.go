// AngelaMos | 2026
// authz_test.go

package authz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
)

type fakeRoles map[string]int

func (f fakeRoles) RoleOf(_ context.Context, userID string) (int, error) {
	if userID == "broken" {
		return 0, errors.New("connection reset")
	}
	role, ok := f[userID]
	if !ok {
		return 0, fmt.Errorf("role of %s: %w", userID, core.ErrNotFound)
	}
	return role, nil
}

func TestEnforcerPolicy(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	tests := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{RoleAdmin, "/api/v1/category/create-category", http.MethodPost, true},
		{RoleAdmin, "/api/v1/product/delete-product/abc", http.MethodDelete, true},
		{RoleAdmin, "/api/v1/auth/order-status/66a1", http.MethodPut, true},
		{RoleAdmin, "/api/v1/admin/stats", http.MethodGet, true},
		{RoleAdmin, "/api/v1/auth/orders", http.MethodGet, true},
		{RoleAdmin, "/api/v1/admin/stats", http.MethodDelete, false},
		{RoleCustomer, "/api/v1/auth/orders", http.MethodGet, true},
		{RoleCustomer, "/api/v1/category/create-category", http.MethodPost, false},
		{RoleCustomer, "/api/v1/auth/all-orders", http.MethodGet, false},
		{RoleCustomer, "/api/v1/admin/payments", http.MethodGet, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.path, tt.method)
			if err != nil {
				t.Fatalf("Enforce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Enforce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleName(t *testing.T) {
	if RoleName(1) != RoleAdmin || RoleName(0) != RoleCustomer || RoleName(7) != RoleCustomer {
		t.Error("unexpected role mapping")
	}
}

func TestRequireAdmin(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	guard := NewGuard(e, fakeRoles{"boss": 1, "shopper": 0})

	handler := guard.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		userID      string
		wantStatus  int
		wantMessage string
	}{
		{"admin", "boss", http.StatusOK, ""},
		{"customer", "shopper", http.StatusUnauthorized, "UnAuthorized Access"},
		{"unknown user", "ghost", http.StatusUnauthorized, "UnAuthorized Access"},
		{"no user", "", http.StatusUnauthorized, "UnAuthorized Access"},
		{"lookup failure", "broken", http.StatusUnauthorized, "Error in admin middleware"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/category/create-category", nil)
			if tt.userID != "" {
				r = r.WithContext(middleware.WithClaims(
					r.Context(),
					&middleware.AccessTokenClaims{UserID: tt.userID},
				))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantMessage == "" {
				return
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["success"] != false || body["message"] != tt.wantMessage {
				t.Errorf("body = %v", body)
			}
		})
	}
}
