// AngelaMos | 2026
// service_test.go

package user

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/auth"
	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
)

type memRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[primitive.ObjectID]*User)}
}

func (m *memRepo) EnsureIndexes(context.Context) error { return nil }

func (m *memRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) find(match func(*User) bool) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	return m.find(func(u *User) bool { return u.Email == email })
}

func (m *memRepo) GetByEmailAndAnswer(_ context.Context, email, answer string) (*User, error) {
	return m.find(func(u *User) bool { return u.Email == email && u.Answer == answer })
}

func (m *memRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	return nil
}

func (m *memRepo) UpdateProfile(
	_ context.Context,
	id primitive.ObjectID,
	c ProfileChanges,
) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if c.Name != "" {
		u.Name = c.Name
	}
	if c.Phone != "" {
		u.Phone = c.Phone
	}
	if c.Address != "" {
		u.Address = c.Address
	}
	if c.PasswordHash != "" {
		u.PasswordHash = c.PasswordHash
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) SetRoleByEmail(_ context.Context, email string, role int) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u.Role = role
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("set role: %w", core.ErrNotFound)
}

func (m *memRepo) ListByIDs(_ context.Context, ids []primitive.ObjectID) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, User{ID: u.ID, Name: u.Name})
		}
	}
	return out, nil
}

func seedUser(t *testing.T, svc *Service) *auth.UserInfo {
	t.Helper()
	hash, err := core.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	info, err := svc.Create(context.Background(), auth.NewUser{
		Name:         "Ada",
		Email:        "  Ada@Example.com ",
		PasswordHash: hash,
		Phone:        "555-0100",
		Address:      "1 Analytical Way",
		Answer:       "football",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return info
}

func TestCreateNormalizesEmailAndDefaultsRole(t *testing.T) {
	svc := NewService(newMemRepo())
	info := seedUser(t, svc)

	if info.Email != "ada@example.com" {
		t.Errorf("email = %q, want ada@example.com", info.Email)
	}
	if info.Role != RoleCustomer {
		t.Errorf("role = %d, want %d", info.Role, RoleCustomer)
	}

	got, err := svc.GetByEmail(context.Background(), "ADA@example.com")
	if err != nil || got.ID != info.ID {
		t.Fatalf("GetByEmail() = %v, %v", got, err)
	}

	_, err = svc.Create(context.Background(), auth.NewUser{Email: "ada@example.com"})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateKey", err)
	}
}

func TestGetByEmailAndAnswer(t *testing.T) {
	svc := NewService(newMemRepo())
	seedUser(t, svc)

	if _, err := svc.GetByEmailAndAnswer(context.Background(), "ada@example.com", "football"); err != nil {
		t.Errorf("matching answer error = %v", err)
	}
	_, err := svc.GetByEmailAndAnswer(context.Background(), "ada@example.com", "Football")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("answer comparison must be exact, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("merges supplied fields", func(t *testing.T) {
		svc := NewService(newMemRepo())
		info := seedUser(t, svc)

		updated, err := svc.UpdateProfile(ctx, info.ID, UpdateProfileRequest{
			Name:  "Ada Lovelace",
			Email: "other@example.com",
		})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if updated.Name != "Ada Lovelace" {
			t.Errorf("name = %q", updated.Name)
		}
		if updated.Phone != "555-0100" || updated.Address != "1 Analytical Way" {
			t.Errorf("unsupplied fields changed: %+v", updated)
		}
		if updated.Email != "ada@example.com" {
			t.Errorf("email changed to %q", updated.Email)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc := NewService(newMemRepo())
		info := seedUser(t, svc)

		_, err := svc.UpdateProfile(ctx, info.ID, UpdateProfileRequest{Password: "12345"})
		if !errors.Is(err, ErrPasswordTooShort) {
			t.Errorf("error = %v, want ErrPasswordTooShort", err)
		}
	})

	t.Run("rehashes new password", func(t *testing.T) {
		svc := NewService(newMemRepo())
		info := seedUser(t, svc)

		updated, err := svc.UpdateProfile(ctx, info.ID, UpdateProfileRequest{Password: "brand-new"})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		ok, err := core.VerifyPassword("brand-new", updated.PasswordHash)
		if err != nil || !ok {
			t.Errorf("new password does not verify: %v %v", ok, err)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.UpdateProfile(ctx, "", UpdateProfileRequest{Name: "x"})
		if !errors.Is(err, core.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})
}

func TestPromoteAndRoleOf(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())
	info := seedUser(t, svc)

	role, err := svc.RoleOf(ctx, info.ID)
	if err != nil || role != RoleCustomer {
		t.Fatalf("RoleOf() = %d, %v", role, err)
	}

	if _, err := svc.Promote(ctx, "ADA@example.com"); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}

	role, err = svc.RoleOf(ctx, info.ID)
	if err != nil || role != RoleAdmin {
		t.Errorf("RoleOf() after promote = %d, %v", role, err)
	}

	if _, err := svc.RoleOf(ctx, "not-an-id"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("RoleOf(bad id) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	svc := NewService(newMemRepo())
	info := seedUser(t, svc)

	router := chi.NewRouter()
	fakeAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{UserID: info.ID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	NewHandler(svc).RegisterRoutes(router, fakeAuth)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"ok", `{"address":"2 Difference Engine Rd"}`, http.StatusOK, "Profile Updated Successfully"},
		{"short password", `{"password":"abc"}`, http.StatusBadRequest, "Password is required and 6 character long"},
		{"bad json", `{`, http.StatusBadRequest, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %q", body["message"], tt.wantMessage)
			}
			if tt.wantStatus == http.StatusOK {
				updated, ok := body["updatedUser"].(map[string]any)
				if !ok || updated["address"] != "2 Difference Engine Rd" {
					t.Errorf("updatedUser = %v", body["updatedUser"])
				}
				if _, leaked := updated["password"]; leaked {
					t.Error("password hash leaked into response")
				}
			}
		})
	}
}

func TestNames(t *testing.T) {
	svc := NewService(newMemRepo())
	info := seedUser(t, svc)
	id, _ := primitive.ObjectIDFromHex(info.ID)

	names, err := svc.Names(context.Background(), []primitive.ObjectID{id, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) != 1 || names[id] != "Ada" {
		t.Errorf("Names() = %v", names)
	}
}
