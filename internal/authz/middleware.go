// AngelaMos | 2026
// middleware.go

package authz

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
)

// RoleLookup reads the caller's current role from the user store.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (int, error)
}

type Guard struct {
	enforcer *Enforcer
	roles    RoleLookup
}

func NewGuard(enforcer *Enforcer, roles RoleLookup) *Guard {
	return &Guard{enforcer: enforcer, roles: roles}
}

// RequireAdmin must run after middleware.Authenticator. The role is looked
// up on every request so a demotion takes effect immediately.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.GetUserID(r.Context())
		if userID == "" {
			core.Unauthorized(w, "UnAuthorized Access")
			return
		}

		role, err := g.roles.RoleOf(r.Context(), userID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.Unauthorized(w, "UnAuthorized Access")
				return
			}
			slog.Error("admin role lookup failed",
				"user_id", userID,
				"error", err,
			)
			core.Fail(w, http.StatusUnauthorized, "Error in admin middleware", err)
			return
		}

		allowed, err := g.enforcer.Enforce(RoleName(role), r.URL.Path, r.Method)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}

		if !allowed || role != 1 {
			core.Unauthorized(w, "UnAuthorized Access")
			return
		}

		next.ServeHTTP(w, r)
	})
}
