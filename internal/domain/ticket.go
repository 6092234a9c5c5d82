package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ParseTicketStatus validates an incoming status string.
func ParseTicketStatus(value string) (TicketStatus, bool) {
	switch TicketStatus(value) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return TicketStatus(value), true
	}
	return "", false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ParseTicketPriority validates an incoming priority string.
func ParseTicketPriority(value string) (TicketPriority, bool) {
	switch TicketPriority(value) {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return TicketPriority(value), true
	}
	return "", false
}

// Ticket is the aggregate for support requests. TicketNumber and CustomerID
// are immutable after creation. ResolvedAt and ClosedAt record the first
// transition into their respective states and are never cleared.
type Ticket struct {
	ID           string
	TicketNumber string
	Title        string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	CustomerID   string
	AssignedTo   *string
	ProductID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
}
