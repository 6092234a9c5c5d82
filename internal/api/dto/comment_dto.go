package dto

import (
	"time"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

// CreateCommentRequest payload. is_internal is honored for staff only.
type CreateCommentRequest struct {
	TicketID   string `json:"ticket_id"`
	Comment    string `json:"comment"`
	IsInternal bool   `json:"is_internal"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID         string      `json:"id"`
	TicketID   string      `json:"ticket_id"`
	UserID     string      `json:"user_id"`
	UserName   string      `json:"user_name"`
	UserRole   domain.Role `json:"user_role"`
	Comment    string      `json:"comment"`
	IsInternal bool        `json:"is_internal"`
	CreatedAt  time.Time   `json:"created_at"`
}
