// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/storefront/internal/config"
	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/middleware"
)

const tokenTypeSession = "session"

type JWTManager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	publicJWKS jwk.Set
	keyID      string
	config     config.JWTConfig
	now        func() time.Time
}

// NewJWTManager loads the signing key. When the public key file exists it
// must be the other half of the private key.
func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	m, err := NewJWTManagerFromPEM(privateKeyPEM, cfg)
	if err != nil {
		return nil, err
	}

	publicKeyPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}

	configured, err := jwk.ParseKey(publicKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	kid, err := thumbprintID(configured)
	if err != nil {
		return nil, err
	}
	if kid != m.keyID {
		return nil, fmt.Errorf("public key %s does not match the private key", cfg.PublicKeyPath)
	}
	return m, nil
}

func NewJWTManagerFromPEM(
	privateKeyPEM []byte,
	cfg config.JWTConfig,
) (*JWTManager, error) {
	privateKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	keyID, err := thumbprintID(privateKey)
	if err != nil {
		return nil, err
	}

	for k, v := range map[string]any{
		jwk.AlgorithmKey: jwa.ES256(),
		jwk.KeyIDKey:     keyID,
	} {
		if setErr := privateKey.Set(k, v); setErr != nil {
			return nil, fmt.Errorf("set %s: %w", k, setErr)
		}
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	if setErr := publicKey.Set(jwk.KeyUsageKey, "sig"); setErr != nil {
		return nil, fmt.Errorf("set key usage: %w", setErr)
	}

	publicJWKS := jwk.NewSet()
	if addErr := publicJWKS.AddKey(publicKey); addErr != nil {
		return nil, fmt.Errorf("add key to set: %w", addErr)
	}

	return &JWTManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		publicJWKS: publicJWKS,
		keyID:      keyID,
		config:     cfg,
		now:        time.Now,
	}, nil
}

// thumbprintID derives the key id from the RFC 7638 thumbprint, which only
// covers public members, so it is stable across restarts and identical for
// both halves of a pair.
func thumbprintID(k jwk.Key) (string, error) {
	tp, err := k.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("key thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(tp)[:16], nil
}

// GenerateKeyPairPEM creates a fresh P-256 signing key and returns the
// private and public halves PEM-encoded.
func GenerateKeyPairPEM() ([]byte, []byte, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate key: %w", err)
	}

	jwkPrivate, err := jwk.Import(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("import private key: %w", err)
	}

	privatePEM, err := jwk.Pem(jwkPrivate)
	if err != nil {
		return nil, nil, fmt.Errorf("encode private key: %w", err)
	}

	jwkPublic, err := jwkPrivate.PublicKey()
	if err != nil {
		return nil, nil, fmt.Errorf("derive public key: %w", err)
	}

	publicPEM, err := jwk.Pem(jwkPublic)
	if err != nil {
		return nil, nil, fmt.Errorf("encode public key: %w", err)
	}

	return privatePEM, publicPEM, nil
}

func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privatePEM, publicPEM, err := GenerateKeyPairPEM()
	if err != nil {
		return err
	}

	for _, path := range []string{privateKeyPath, publicKeyPath} {
		if dirErr := os.MkdirAll(filepath.Dir(path), 0o750); dirErr != nil {
			return fmt.Errorf("create key directory: %w", dirErr)
		}
	}

	if writeErr := os.WriteFile(privateKeyPath, privatePEM, 0o600); writeErr != nil {
		return fmt.Errorf("write private key: %w", writeErr)
	}

	//nolint:gosec // G306: public key is intentionally world-readable
	if writeErr := os.WriteFile(publicKeyPath, publicPEM, 0o644); writeErr != nil {
		return fmt.Errorf("write public key: %w", writeErr)
	}

	return nil
}

// CreateToken signs a session token for userID. The subject and the legacy
// "_id" claim both carry the user id.
func (m *JWTManager) CreateToken(userID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.TokenExpire)

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(userID).
		IssuedAt(now).
		Expiration(expiresAt).
		NotBefore(now).
		Claim("_id", userID).
		Claim("type", tokenTypeSession).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (m *JWTManager) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != tokenTypeSession {
		return nil, fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	expiresAt, _ := token.Expiration()

	return &middleware.AccessTokenClaims{
		UserID:    subject,
		ExpiresAt: expiresAt,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

func (m *JWTManager) GetJWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		core.JSON(w, http.StatusOK, m.publicJWKS)
	}
}

func (m *JWTManager) GetKeyID() string {
	return m.keyID
}
