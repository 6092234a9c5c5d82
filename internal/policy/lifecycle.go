package policy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

// ApplyStatus moves a ticket to newStatus and derives timestamp side
// effects. There is no transition graph: any status is reachable from any
// other by an authorized actor. Transitioning into resolved stamps
// ResolvedAt, into closed stamps ClosedAt, both at now. A timestamp records
// the first time the state was reached and is never cleared or moved by
// later transitions.
func ApplyStatus(ticket *domain.Ticket, newStatus domain.TicketStatus, now time.Time) {
	if ticket.Status == newStatus {
		return
	}
	ticket.Status = newStatus
	switch newStatus {
	case domain.TicketStatusResolved:
		if ticket.ResolvedAt == nil {
			stamped := now
			ticket.ResolvedAt = &stamped
		}
	case domain.TicketStatusClosed:
		if ticket.ClosedAt == nil {
			stamped := now
			ticket.ClosedAt = &stamped
		}
	}
}

// NewTicketNumber synthesizes a ticket number of the form TKT-YYYYMM-####.
// The random suffix does not guarantee uniqueness; the unique index on
// tickets.ticket_number is the actual guarantee and a collision surfaces as
// a conflict at insert time.
func NewTicketNumber(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("TKT-%d%02d-%04d", now.Year(), int(now.Month()), rng.Intn(10000))
}
