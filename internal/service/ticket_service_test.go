package service

import (
	"context"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
)

var fixedNow = time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

func newTicketService(repo *fakeTicketRepo) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Clock:      func() time.Time { return fixedNow },
		Rand:       rand.New(rand.NewSource(1)),
	})
}

func seedTicket(t *testing.T, repo *fakeTicketRepo, svc *TicketService, owner domain.Actor) *domain.Ticket {
	t.Helper()
	ticket, err := svc.CreateTicket(context.Background(), owner, TicketCreateInput{
		Title:       "Printer on fire",
		Description: "Smoke coming out of the tray",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return ticket
}

func TestCreateTicket_Defaults(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}

	ticket := seedTicket(t, repo, svc, owner)

	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("status = %s, want open", ticket.Status)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Errorf("priority = %s, want medium", ticket.Priority)
	}
	if ticket.CustomerID != owner.ID {
		t.Errorf("customer_id = %s, want %s", ticket.CustomerID, owner.ID)
	}
	pattern := regexp.MustCompile(`^TKT-202608-\d{4}$`)
	if !pattern.MatchString(ticket.TicketNumber) {
		t.Errorf("ticket number %q does not match %s", ticket.TicketNumber, pattern)
	}
	if ticket.ResolvedAt != nil || ticket.ClosedAt != nil {
		t.Error("fresh ticket must not carry resolution timestamps")
	}
}

func TestCreateTicket_RequiresTitleAndDescription(t *testing.T) {
	svc := newTicketService(newFakeTicketRepo())
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}

	_, err := svc.CreateTicket(context.Background(), owner, TicketCreateInput{
		Title:       "   ",
		Description: "something broke",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.CreateTicket(context.Background(), owner, TicketCreateInput{
		Title:       "broken",
		Description: "",
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateTicket_NumberCollisionIsConflict(t *testing.T) {
	repo := newFakeTicketRepo()
	// Same seed and same clock produce the same ticket number twice.
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}

	seedTicket(t, repo, svc, owner)
	svc.rng = rand.New(rand.NewSource(1))
	_, err := svc.CreateTicket(context.Background(), owner, TicketCreateInput{
		Title:       "Another one",
		Description: "Same number expected",
	})
	assertDomainCode(t, err, "CONFLICT")
}

func TestGetTicket_NotFoundVsForbidden(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	stranger := domain.Actor{ID: "u-2", Role: domain.RoleCustomer}
	ticket := seedTicket(t, repo, svc, owner)

	_, err := svc.GetTicket(context.Background(), owner, "missing")
	assertDomainCode(t, err, "NOT_FOUND")

	_, err = svc.GetTicket(context.Background(), stranger, ticket.ID)
	assertDomainCode(t, err, "FORBIDDEN")

	if _, err := svc.GetTicket(context.Background(), owner, ticket.ID); err != nil {
		t.Fatalf("owner GetTicket: %v", err)
	}
	agent := domain.Actor{ID: "u-9", Role: domain.RoleAgent}
	if _, err := svc.GetTicket(context.Background(), agent, ticket.ID); err != nil {
		t.Fatalf("agent GetTicket: %v", err)
	}
}

func TestUpdateTicket_CustomerStatusDroppedSilently(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	ticket := seedTicket(t, repo, svc, owner)

	closed := domain.TicketStatusClosed
	title := "x"
	updated, err := svc.UpdateTicket(context.Background(), owner, ticket.ID, policy.TicketPatch{
		Status: &closed,
		Title:  &title,
	})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if updated.Status != domain.TicketStatusOpen {
		t.Errorf("status = %s, want open (customer cannot set status)", updated.Status)
	}
	if updated.Title != "x" {
		t.Errorf("title = %q, want %q", updated.Title, "x")
	}
	if updated.ClosedAt != nil {
		t.Error("closed_at must stay nil when the status change was dropped")
	}
}

func TestUpdateTicket_ResolveStampsAndSurvivesReopen(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	admin := domain.Actor{ID: "u-99", Role: domain.RoleAdmin}
	ticket := seedTicket(t, repo, svc, owner)

	resolved := domain.TicketStatusResolved
	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, policy.TicketPatch{Status: &resolved})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if updated.ResolvedAt == nil || !updated.ResolvedAt.Equal(fixedNow) {
		t.Fatalf("resolved_at = %v, want %v", updated.ResolvedAt, fixedNow)
	}

	inProgress := domain.TicketStatusInProgress
	updated, err = svc.UpdateTicket(context.Background(), admin, ticket.ID, policy.TicketPatch{Status: &inProgress})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if updated.Status != domain.TicketStatusInProgress {
		t.Errorf("status = %s, want in_progress", updated.Status)
	}
	if updated.ResolvedAt == nil || !updated.ResolvedAt.Equal(fixedNow) {
		t.Errorf("resolved_at lost after reopen: %v", updated.ResolvedAt)
	}
}

func TestUpdateTicket_FirstResolveTimestampWins(t *testing.T) {
	repo := newFakeTicketRepo()
	admin := domain.Actor{ID: "u-99", Role: domain.RoleAdmin}
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}

	now := fixedNow
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Clock:      func() time.Time { return now },
		Rand:       rand.New(rand.NewSource(1)),
	})
	ticket := seedTicket(t, repo, svc, owner)

	resolved := domain.TicketStatusResolved
	inProgress := domain.TicketStatusInProgress
	if _, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, policy.TicketPatch{Status: &resolved}); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	now = fixedNow.Add(2 * time.Hour)
	if _, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, policy.TicketPatch{Status: &inProgress}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	updated, err := svc.UpdateTicket(context.Background(), admin, ticket.ID, policy.TicketPatch{Status: &resolved})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if !updated.ResolvedAt.Equal(fixedNow) {
		t.Errorf("resolved_at = %v, want first stamp %v", updated.ResolvedAt, fixedNow)
	}
}

func TestUpdateTicket_AssignAndClear(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	agent := domain.Actor{ID: "u-9", Role: domain.RoleAgent}
	ticket := seedTicket(t, repo, svc, owner)

	assignee := "u-9"
	ref := &assignee
	updated, err := svc.UpdateTicket(context.Background(), agent, ticket.ID, policy.TicketPatch{AssignedTo: &ref})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != "u-9" {
		t.Fatalf("assigned_to = %v, want u-9", updated.AssignedTo)
	}

	var cleared *string
	updated, err = svc.UpdateTicket(context.Background(), agent, ticket.ID, policy.TicketPatch{AssignedTo: &cleared})
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if updated.AssignedTo != nil {
		t.Errorf("assigned_to = %v, want nil", updated.AssignedTo)
	}
}

func TestUpdateTicket_EmptyPatchIsNoop(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	ticket := seedTicket(t, repo, svc, owner)

	// A customer sending only staff fields ends up with an empty sanctioned
	// patch; nothing changes and no error surfaces.
	urgent := domain.TicketPriorityUrgent
	updated, err := svc.UpdateTicket(context.Background(), owner, ticket.ID, policy.TicketPatch{Priority: &urgent})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if updated.Priority != domain.TicketPriorityMedium {
		t.Errorf("priority = %s, want medium", updated.Priority)
	}
}

func TestListTickets_CustomerScopedToOwn(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	other := domain.Actor{ID: "u-2", Role: domain.RoleCustomer}
	seedTicket(t, repo, svc, owner)
	if _, err := svc.CreateTicket(context.Background(), other, TicketCreateInput{
		Title:       "Keyboard sticky",
		Description: "Coffee incident",
	}); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	// Even an explicit filter for someone else's tickets is overridden.
	otherID := other.ID
	tickets, err := svc.ListTickets(context.Background(), owner, repository.TicketFilter{CustomerID: &otherID})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	for _, ticket := range tickets {
		if ticket.CustomerID != owner.ID {
			t.Errorf("customer list leaked ticket owned by %s", ticket.CustomerID)
		}
	}
	if len(tickets) != 1 {
		t.Errorf("len = %d, want 1", len(tickets))
	}

	agent := domain.Actor{ID: "u-9", Role: domain.RoleAgent}
	tickets, err = svc.ListTickets(context.Background(), agent, repository.TicketFilter{})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(tickets) != 2 {
		t.Errorf("agent sees %d tickets, want 2", len(tickets))
	}
}

func TestDeleteTicket_AdminOnly(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	agent := domain.Actor{ID: "u-9", Role: domain.RoleAgent}
	admin := domain.Actor{ID: "u-99", Role: domain.RoleAdmin}
	ticket := seedTicket(t, repo, svc, owner)

	assertDomainCode(t, svc.DeleteTicket(context.Background(), owner, ticket.ID), "FORBIDDEN")
	assertDomainCode(t, svc.DeleteTicket(context.Background(), agent, ticket.ID), "FORBIDDEN")

	if err := svc.DeleteTicket(context.Background(), admin, ticket.ID); err != nil {
		t.Fatalf("admin DeleteTicket: %v", err)
	}
	assertDomainCode(t, svc.DeleteTicket(context.Background(), admin, ticket.ID), "NOT_FOUND")
}
