// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/storefront/internal/core"
)

const claimsKey contextKey = "jwt_claims"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	UserID    string
	ExpiresAt time.Time
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims attaches verified claims to ctx.
func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ExtractToken reads the Authorization header. The storefront client sends
// the bare token; "Bearer <token>" is accepted too.
func ExtractToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return ""
	}

	scheme, rest, found := strings.Cut(authHeader, " ")
	if !found {
		return authHeader
	}
	if !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(rest)
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	if errors.Is(err, core.ErrTokenExpired) {
		core.JSONError(w, core.TokenExpiredError())
		return
	}
	core.JSONError(w, core.TokenInvalidError())
}

// GetUserID returns "" on routes mounted without the Authenticator.
func GetUserID(ctx context.Context) string {
	if claims, ok := ctx.Value(claimsKey).(*AccessTokenClaims); ok && claims != nil {
		return claims.UserID
	}
	return ""
}
