package models

import (
	"time"

	"taskly-be/internal/entities"
)

// UserResponse is the outward-facing view of a user. The password hash never
// appears here.
type UserResponse struct {
	ID        string    `json:"id"` // UUID
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse converts a user entity to its response form.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse represents the response after successful registration or login
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"` // JWT token
}
