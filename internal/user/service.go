// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carterperez-dev/templates/storefront/internal/auth"
	"github.com/carterperez-dev/templates/storefront/internal/core"
)

const minPasswordLength = 6

var ErrPasswordTooShort = errors.New("password too short")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmailAndAnswer(
	ctx context.Context,
	email, answer string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmailAndAnswer(ctx, normalizeEmail(email), answer)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		Name:         nu.Name,
		Email:        normalizeEmail(nu.Email),
		PasswordHash: nu.PasswordHash,
		Phone:        nu.Phone,
		Address:      nu.Address,
		Answer:       nu.Answer,
		Role:         RoleCustomer,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	id, err := core.ParseObjectID(userID)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	id, err := core.ParseObjectID(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// RoleOf reports the stored role so admin checks see promotions and
// demotions without a fresh login.
func (s *Service) RoleOf(ctx context.Context, userID string) (int, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Role, nil
}

// UpdateProfile merges the supplied fields over the stored record. Email
// cannot be changed here.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update profile: %w", core.ErrUnauthorized)
	}

	id, err := core.ParseObjectID(userID)
	if err != nil {
		return nil, err
	}

	if req.Password != "" && len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	changes := ProfileChanges{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}

	if req.Password != "" {
		hash, hashErr := core.HashPassword(req.Password)
		if hashErr != nil {
			return nil, fmt.Errorf("hash password: %w", hashErr)
		}
		changes.PasswordHash = hash
	}

	if changes.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}

	return s.repo.UpdateProfile(ctx, id, changes)
}

func (s *Service) Promote(ctx context.Context, email string) (*User, error) {
	return s.repo.SetRoleByEmail(ctx, normalizeEmail(email), RoleAdmin)
}

// Names maps each known user id to its display name.
func (s *Service) Names(
	ctx context.Context,
	ids []primitive.ObjectID,
) (map[primitive.ObjectID]string, error) {
	users, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Address:      u.Address,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
