// AngelaMos | 2026
// entity.go

package auth

import (
	"context"
	"time"
)

// UserInfo is the view of a stored user that authentication needs.
type UserInfo struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Role         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Answer       string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByEmailAndAnswer(ctx context.Context, email, answer string) (*UserInfo, error)
	Create(ctx context.Context, user NewUser) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
