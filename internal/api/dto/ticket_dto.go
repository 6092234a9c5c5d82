package dto

import (
	"time"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	ProductID   *string `json:"product_id"`
}

// UpdateTicketRequest is a sparse ticket update. Absent fields are left
// untouched; an empty assigned_to/product_id clears the reference.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
	ProductID   *string `json:"product_id"`
}

// TicketResponse mirrors the ticket aggregate.
type TicketResponse struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	CustomerID   string                `json:"customer_id"`
	AssignedTo   *string               `json:"assigned_to"`
	ProductID    *string               `json:"product_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	ResolvedAt   *time.Time            `json:"resolved_at"`
	ClosedAt     *time.Time            `json:"closed_at"`
}
