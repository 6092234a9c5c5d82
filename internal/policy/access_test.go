package policy

import (
	"testing"

	"github.com/deskhub/helpdesk-service/internal/domain"
)

var (
	owner    = domain.Actor{ID: "u-owner", Role: domain.RoleCustomer}
	stranger = domain.Actor{ID: "u-other", Role: domain.RoleCustomer}
	agent    = domain.Actor{ID: "u-agent", Role: domain.RoleAgent}
	admin    = domain.Actor{ID: "u-admin", Role: domain.RoleAdmin}
)

func ownedTicket() *domain.Ticket {
	return &domain.Ticket{ID: "t-1", CustomerID: "u-owner", Status: domain.TicketStatusOpen}
}

func TestCanView(t *testing.T) {
	access := NewAccessPolicy()
	ticket := ownedTicket()

	cases := []struct {
		name  string
		actor domain.Actor
		want  bool
	}{
		{"owning customer", owner, true},
		{"non-owning customer", stranger, false},
		{"agent regardless of ownership", agent, true},
		{"admin regardless of ownership", admin, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := access.CanView(tc.actor, ticket); got != tc.want {
				t.Errorf("CanView(%s) = %v, want %v", tc.actor.ID, got, tc.want)
			}
			if got := access.CanMutate(tc.actor, ticket); got != tc.want {
				t.Errorf("CanMutate(%s) = %v, want %v", tc.actor.ID, got, tc.want)
			}
		})
	}
}

func TestSanctionTicketPatch_CustomerFieldsDropped(t *testing.T) {
	access := NewAccessPolicy()

	title := "new title"
	description := "new description"
	status := domain.TicketStatusClosed
	priority := domain.TicketPriorityUrgent
	assignee := "u-agent"
	assigneeRef := &assignee
	productID := "p-1"
	productRef := &productID

	patch := TicketPatch{
		Title:       &title,
		Description: &description,
		Status:      &status,
		Priority:    &priority,
		AssignedTo:  &assigneeRef,
		ProductID:   &productRef,
	}

	sanctioned := access.SanctionTicketPatch(owner, patch)
	if sanctioned.Title == nil || *sanctioned.Title != title {
		t.Errorf("customer title should be kept")
	}
	if sanctioned.Description == nil || *sanctioned.Description != description {
		t.Errorf("customer description should be kept")
	}
	if sanctioned.ProductID == nil {
		t.Errorf("customer product_id should be kept")
	}
	if sanctioned.Status != nil {
		t.Errorf("customer status must be dropped, got %v", *sanctioned.Status)
	}
	if sanctioned.Priority != nil {
		t.Errorf("customer priority must be dropped")
	}
	if sanctioned.AssignedTo != nil {
		t.Errorf("customer assigned_to must be dropped")
	}
}

func TestSanctionTicketPatch_StaffKeepsAll(t *testing.T) {
	access := NewAccessPolicy()
	status := domain.TicketStatusResolved
	priority := domain.TicketPriorityHigh
	patch := TicketPatch{Status: &status, Priority: &priority}

	for _, actor := range []domain.Actor{agent, admin} {
		sanctioned := access.SanctionTicketPatch(actor, patch)
		if sanctioned.Status == nil || *sanctioned.Status != status {
			t.Errorf("staff status must be kept for %s", actor.Role)
		}
		if sanctioned.Priority == nil || *sanctioned.Priority != priority {
			t.Errorf("staff priority must be kept for %s", actor.Role)
		}
	}
}

func TestEffectiveInternal(t *testing.T) {
	access := NewAccessPolicy()

	if access.EffectiveInternal(owner, true) {
		t.Error("customer requesting internal must get false")
	}
	if access.EffectiveInternal(owner, false) {
		t.Error("customer requesting public must get false")
	}
	if !access.EffectiveInternal(agent, true) {
		t.Error("agent requesting internal must get true")
	}
	if access.EffectiveInternal(admin, false) {
		t.Error("admin requesting public must get false")
	}
}

func TestVisibleComments(t *testing.T) {
	access := NewAccessPolicy()
	thread := []domain.Comment{
		{ID: "c-1", IsInternal: false},
		{ID: "c-2", IsInternal: true},
		{ID: "c-3", IsInternal: false},
		{ID: "c-4", IsInternal: true},
	}

	visible := access.VisibleComments(owner, thread)
	if len(visible) != 2 {
		t.Fatalf("customer sees %d comments, want 2", len(visible))
	}
	if visible[0].ID != "c-1" || visible[1].ID != "c-3" {
		t.Errorf("customer view must preserve order, got %s then %s", visible[0].ID, visible[1].ID)
	}
	for _, comment := range visible {
		if comment.IsInternal {
			t.Errorf("internal comment %s leaked to customer", comment.ID)
		}
	}

	all := access.VisibleComments(agent, thread)
	if len(all) != len(thread) {
		t.Errorf("staff sees %d comments, want %d", len(all), len(thread))
	}
}

func TestRoleGate(t *testing.T) {
	cases := []struct {
		op      Operation
		actor   domain.Actor
		allowed bool
	}{
		{OpManageUsers, admin, true},
		{OpManageUsers, agent, false},
		{OpManageUsers, owner, false},
		{OpListAgents, admin, true},
		{OpListAgents, agent, true},
		{OpListAgents, owner, false},
		{OpManageProducts, admin, true},
		{OpManageProducts, agent, false},
		{OpDeleteTicket, admin, true},
		{OpDeleteTicket, agent, false},
		{OpDeleteTicket, owner, false},
	}
	for _, tc := range cases {
		if got := RoleGate(tc.actor, tc.op); got != tc.allowed {
			t.Errorf("RoleGate(%s, %s) = %v, want %v", tc.actor.Role, tc.op, got, tc.allowed)
		}
	}
}
