// Package policy is the single authority for visibility and mutability of
// tickets and comments. Handlers and services never duplicate role checks;
// they pass an explicit domain.Actor here and act on the decision.
package policy

import "github.com/deskhub/helpdesk-service/internal/domain"

// AccessPolicy decides what an actor may see or change.
type AccessPolicy struct{}

// NewAccessPolicy returns the policy. It is stateless; decisions depend only
// on the arguments.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanView reports whether the actor may read the ticket and its comment
// thread. Staff see everything; customers see only tickets they own.
func (p *AccessPolicy) CanView(actor domain.Actor, ticket *domain.Ticket) bool {
	if actor.Role.IsStaff() {
		return true
	}
	return actor.Owns(ticket)
}

// CanMutate reports whether the actor may change the ticket. The rule is
// identical to CanView: a non-owning customer gets a permission-denied
// outcome, never a not-found one. The 403/404 distinction is load-bearing
// and callers must preserve it.
func (p *AccessPolicy) CanMutate(actor domain.Actor, ticket *domain.Ticket) bool {
	return p.CanView(actor, ticket)
}

// TicketPatch is a sparse ticket update. Nil fields are untouched.
type TicketPatch struct {
	Title       *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	AssignedTo  **string
	ProductID   **string
}

// IsEmpty reports whether the patch changes nothing.
func (p TicketPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.AssignedTo == nil && p.ProductID == nil
}

// SanctionTicketPatch strips the fields the actor's role is not sanctioned to
// change. For customers that set is {title, description, product_id};
// everything else is silently dropped, never rejected — a customer submitting
// a status change sees the call succeed with the field ignored. Staff keep
// the full set.
func (p *AccessPolicy) SanctionTicketPatch(actor domain.Actor, patch TicketPatch) TicketPatch {
	if actor.Role.IsStaff() {
		return patch
	}
	return TicketPatch{
		Title:       patch.Title,
		Description: patch.Description,
		ProductID:   patch.ProductID,
	}
}

// EffectiveInternal resolves the is_internal flag for a new comment. The
// client-supplied value is untrusted input: customers always get false,
// staff get the requested value.
func (p *AccessPolicy) EffectiveInternal(actor domain.Actor, requested bool) bool {
	if actor.Role == domain.RoleCustomer {
		return false
	}
	return requested
}

// VisibleComments filters a comment thread for the actor. Customers see the
// non-internal subsequence with order preserved; staff see the whole thread.
func (p *AccessPolicy) VisibleComments(actor domain.Actor, comments []domain.Comment) []domain.Comment {
	if actor.Role.IsStaff() {
		return comments
	}
	visible := make([]domain.Comment, 0, len(comments))
	for _, comment := range comments {
		if comment.IsInternal {
			continue
		}
		visible = append(visible, comment)
	}
	return visible
}

// Operation names a role-gated endpoint group.
type Operation string

const (
	OpManageUsers    Operation = "manage_users"
	OpListAgents     Operation = "list_agents"
	OpManageProducts Operation = "manage_products"
	OpDeleteTicket   Operation = "delete_ticket"
)

// roleMatrix enumerates the allowed role set per gated operation so the rule
// set is auditable in one place.
var roleMatrix = map[Operation][]domain.Role{
	OpManageUsers:    {domain.RoleAdmin},
	OpListAgents:     {domain.RoleAdmin, domain.RoleAgent},
	OpManageProducts: {domain.RoleAdmin},
	OpDeleteTicket:   {domain.RoleAdmin},
}

// RoleGate reports whether the actor's role may perform the operation.
// Callers check the gate before any write; a violation means no partial
// execution.
func RoleGate(actor domain.Actor, op Operation) bool {
	for _, role := range roleMatrix[op] {
		if actor.Role == role {
			return true
		}
	}
	return false
}
