package service

import (
	"context"
	"testing"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

func newCommentFixture(t *testing.T) (*CommentService, *domain.Ticket, domain.Actor) {
	t.Helper()
	ticketRepo := newFakeTicketRepo()
	ticketSvc := newTicketService(ticketRepo)
	owner := domain.Actor{ID: "u-1", Role: domain.RoleCustomer}
	ticket := seedTicket(t, ticketRepo, ticketSvc, owner)

	svc := NewCommentService(CommentDependencies{
		CommentRepo: &fakeCommentRepo{},
		TicketRepo:  ticketRepo,
	})
	return svc, ticket, owner
}

func TestAddComment_CustomerCannotGoInternal(t *testing.T) {
	svc, ticket, owner := newCommentFixture(t)

	comment, err := svc.AddComment(context.Background(), owner, ticket.ID, "still broken", true)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.IsInternal {
		t.Error("customer comment stored as internal")
	}
}

func TestAddComment_StaffInternalHonored(t *testing.T) {
	svc, ticket, _ := newCommentFixture(t)
	agent := domain.Actor{ID: "u-9", Role: domain.RoleAgent}

	comment, err := svc.AddComment(context.Background(), agent, ticket.ID, "checked the logs", true)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if !comment.IsInternal {
		t.Error("agent internal note stored as public")
	}

	comment, err = svc.AddComment(context.Background(), agent, ticket.ID, "we are on it", false)
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.IsInternal {
		t.Error("agent public reply stored as internal")
	}
}

func TestAddComment_Validation(t *testing.T) {
	svc, ticket, owner := newCommentFixture(t)

	_, err := svc.AddComment(context.Background(), owner, ticket.ID, "   ", false)
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, err = svc.AddComment(context.Background(), owner, "missing", "hello", false)
	assertDomainCode(t, err, "NOT_FOUND")

	stranger := domain.Actor{ID: "u-2", Role: domain.RoleCustomer}
	_, err = svc.AddComment(context.Background(), stranger, ticket.ID, "hello", false)
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestListForTicket_InternalFilteredForCustomer(t *testing.T) {
	svc, ticket, owner := newCommentFixture(t)
	agent := domain.Actor{ID: "u-9", Role: domain.RoleAgent}

	if _, err := svc.AddComment(context.Background(), owner, ticket.ID, "it broke", false); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := svc.AddComment(context.Background(), agent, ticket.ID, "internal triage note", true); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if _, err := svc.AddComment(context.Background(), agent, ticket.ID, "working on it", false); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	visible, err := svc.ListForTicket(context.Background(), owner, ticket.ID)
	if err != nil {
		t.Fatalf("ListForTicket: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("customer sees %d comments, want 2", len(visible))
	}
	for _, comment := range visible {
		if comment.IsInternal {
			t.Error("internal note leaked to customer")
		}
	}
	if visible[0].Body != "it broke" || visible[1].Body != "working on it" {
		t.Errorf("order not preserved: %q, %q", visible[0].Body, visible[1].Body)
	}

	all, err := svc.ListForTicket(context.Background(), agent, ticket.ID)
	if err != nil {
		t.Fatalf("ListForTicket: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("agent sees %d comments, want 3", len(all))
	}
}

func TestListForTicket_AccessChecks(t *testing.T) {
	svc, ticket, _ := newCommentFixture(t)
	stranger := domain.Actor{ID: "u-2", Role: domain.RoleCustomer}

	_, err := svc.ListForTicket(context.Background(), stranger, ticket.ID)
	assertDomainCode(t, err, "FORBIDDEN")

	_, err = svc.ListForTicket(context.Background(), stranger, "missing")
	assertDomainCode(t, err, "NOT_FOUND")
}
