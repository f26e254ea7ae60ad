// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/templates/storefront/internal/core"
	"github.com/carterperez-dev/templates/storefront/internal/metrics"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWrongEmailOrAnswer = errors.New("wrong email or answer")
)

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
}

func NewService(jwt *JWTManager, userProvider UserProvider) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
	}
}

// Register stores a new customer. An email that is already taken yields
// ErrEmailExists whether the pre-check or the unique index catches it.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserInfo, error) {
	_, err := s.userProvider.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		metrics.RecordAuthAttempt("register", "duplicate")
		return nil, ErrEmailExists
	case !errors.Is(err, core.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, NewUser{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Address:      req.Address,
		Answer:       req.Answer,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			metrics.RecordAuthAttempt("register", "duplicate")
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordAuthAttempt("register", "success")
	return user, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			metrics.RecordAuthAttempt("login", "unknown_email")
			return nil, ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		metrics.RecordAuthAttempt("login", "bad_password")
		return nil, ErrInvalidPassword
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.Warn("password rehash failed", "user_id", user.ID, "error", err)
		}
	}

	token, expiresAt, err := s.jwt.CreateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	metrics.RecordAuthAttempt("login", "success")
	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) ForgotPassword(
	ctx context.Context,
	req ForgotPasswordRequest,
) error {
	user, err := s.userProvider.GetByEmailAndAnswer(ctx, req.Email, req.Answer)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrWrongEmailOrAnswer
		}
		return fmt.Errorf("get user: %w", err)
	}

	passwordHash, err := core.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
