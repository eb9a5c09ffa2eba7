package models

import (
	"time"

	"keepsake-be/internal/entities"
)

// UserResponse is the sanitized user shape returned by the API. The
// password hash is never part of it.
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      entities.Role `json:"role"`
	Image     string        `json:"image,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewUserResponse builds a sanitized response from a user entity
func NewUserResponse(user *entities.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"` // JWT token
}
