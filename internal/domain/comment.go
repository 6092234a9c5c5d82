package domain

import "time"

// Comment is a thread entry on a ticket. Internal comments are staff-only
// notes; customers never author or see them. Comments are immutable once
// created.
type Comment struct {
	ID         string
	TicketID   string
	UserID     string
	Body       string
	IsInternal bool
	CreatedAt  time.Time

	// Denormalized author info carried for presentation.
	UserName string
	UserRole Role
}
