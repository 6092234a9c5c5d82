package policy

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

func TestApplyStatus_StampsResolvedAt(t *testing.T) {
	ticket := &domain.Ticket{Status: domain.TicketStatusOpen}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	ApplyStatus(ticket, domain.TicketStatusResolved, now)

	if ticket.Status != domain.TicketStatusResolved {
		t.Fatalf("status = %s, want resolved", ticket.Status)
	}
	if ticket.ResolvedAt == nil || !ticket.ResolvedAt.Equal(now) {
		t.Errorf("ResolvedAt = %v, want %v", ticket.ResolvedAt, now)
	}
	if ticket.ClosedAt != nil {
		t.Errorf("ClosedAt must stay nil on resolve")
	}
}

func TestApplyStatus_StampsClosedAt(t *testing.T) {
	ticket := &domain.Ticket{Status: domain.TicketStatusInProgress}
	now := time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)

	ApplyStatus(ticket, domain.TicketStatusClosed, now)

	if ticket.ClosedAt == nil || !ticket.ClosedAt.Equal(now) {
		t.Errorf("ClosedAt = %v, want %v", ticket.ClosedAt, now)
	}
}

func TestApplyStatus_TimestampSurvivesLaterTransitions(t *testing.T) {
	ticket := &domain.Ticket{Status: domain.TicketStatusOpen}
	first := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	ApplyStatus(ticket, domain.TicketStatusResolved, first)
	ApplyStatus(ticket, domain.TicketStatusInProgress, later)

	if ticket.Status != domain.TicketStatusInProgress {
		t.Fatalf("status = %s, want in_progress", ticket.Status)
	}
	if ticket.ResolvedAt == nil || !ticket.ResolvedAt.Equal(first) {
		t.Errorf("ResolvedAt must keep the first stamp, got %v", ticket.ResolvedAt)
	}
}

func TestApplyStatus_FirstResolveWins(t *testing.T) {
	ticket := &domain.Ticket{Status: domain.TicketStatusOpen}
	first := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	ApplyStatus(ticket, domain.TicketStatusResolved, first)
	ApplyStatus(ticket, domain.TicketStatusInProgress, first.Add(30*time.Minute))
	ApplyStatus(ticket, domain.TicketStatusResolved, second)

	if !ticket.ResolvedAt.Equal(first) {
		t.Errorf("ResolvedAt moved to %v, want first stamp %v", ticket.ResolvedAt, first)
	}
}

func TestApplyStatus_SameStatusNoop(t *testing.T) {
	stamp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticket := &domain.Ticket{Status: domain.TicketStatusResolved, ResolvedAt: &stamp}

	ApplyStatus(ticket, domain.TicketStatusResolved, stamp.Add(time.Hour))

	if !ticket.ResolvedAt.Equal(stamp) {
		t.Errorf("repeating the current status must not move ResolvedAt")
	}
}

func TestNewTicketNumber_Format(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	pattern := regexp.MustCompile(`^TKT-202608-\d{4}$`)
	for i := 0; i < 50; i++ {
		number := NewTicketNumber(now, rng)
		if !pattern.MatchString(number) {
			t.Fatalf("ticket number %q does not match TKT-YYYYMM-####", number)
		}
	}
}
