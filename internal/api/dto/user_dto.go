package dto

import (
	"time"

	"github.com/spec-kit/menu-service/internal/domain"
)

// UserResponse is a user with the password hash stripped.
type UserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Image         string     `json:"image"`
	EmailVerified *time.Time `json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewUserResponse strips the password hash from a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Image:         user.Image,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// UpdateUserRequest payload for profile updates.
type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

// UpdatePasswordRequest payload for authenticated password changes.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
