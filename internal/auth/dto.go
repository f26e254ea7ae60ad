// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type RegisterRequest struct {
	Name     string `json:"name"     label:"Name"     validate:"required,max=100"`
	Email    string `json:"email"    label:"Email"    validate:"required,max=255"`
	Password string `json:"password" label:"Password" validate:"required,max=128"`
	Phone    string `json:"phone"    label:"Phone no" validate:"required,max=32"`
	Address  string `json:"address"  label:"Address"  validate:"required,max=500"`
	Answer   string `json:"answer"   label:"Answer"   validate:"required,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email       string `json:"email"       label:"Email"        validate:"required"`
	Answer      string `json:"answer"      label:"Answer"       validate:"required"`
	NewPassword string `json:"newPassword" label:"New Password" validate:"required,max=128"`
}

type UserResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    int    `json:"role"`
}

type RegisteredUserResponse struct {
	UserResponse
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginResult struct {
	User      *UserInfo
	Token     string
	ExpiresAt time.Time
}

func ToUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    u.Role,
	}
}

func ToRegisteredUserResponse(u *UserInfo) RegisteredUserResponse {
	return RegisteredUserResponse{
		UserResponse: ToUserResponse(u),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
