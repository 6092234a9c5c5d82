package dto

import (
	"time"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateUserRequest is a sparse account update.
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UserResponse omits the password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

// AgentResponse is the minimal shape assignment pickers need.
type AgentResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
