package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/events"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Every operation takes an
// explicit actor; access decisions are delegated to the policy package.
type TicketService struct {
	tickets    repository.TicketRepository
	access     *policy.AccessPolicy
	dispatcher events.Dispatcher
	clock      func() time.Time
	rng        *rand.Rand
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Access     *policy.AccessPolicy
	Dispatcher events.Dispatcher

	// Clock and Rand are overridable for tests; nil means real time and a
	// time-seeded source.
	Clock func() time.Time
	Rand  *rand.Rand
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	ProductID   *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	access := deps.Access
	if access == nil {
		access = policy.NewAccessPolicy()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		access:     access,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		rng:        rng,
	}
}

// CreateTicket files a ticket owned by the actor. Status starts open and
// priority defaults to medium. A ticket-number collision is surfaced as a
// conflict rather than retried.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}

	ticket := &domain.Ticket{
		TicketNumber: policy.NewTicketNumber(s.clock(), s.rng),
		Title:        title,
		Description:  description,
		Status:       domain.TicketStatusOpen,
		Priority:     input.Priority,
		CustomerID:   actor.ID,
		ProductID:    input.ProductID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("ticket number collision, please retry", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
			ProductID:    ticket.ProductID,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket the actor may view. A missing row is
// not-found; an ownership failure is forbidden. The two are never conflated.
func (s *TicketService) GetTicket(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !s.access.CanView(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// ListTickets returns tickets matching the filter. Customers are always
// scoped to their own tickets regardless of the requested filter.
func (s *TicketService) ListTickets(ctx context.Context, actor domain.Actor, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if actor.Role == domain.RoleCustomer {
		ownerID := actor.ID
		filter.CustomerID = &ownerID
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateTicket applies a sparse update. The patch is sanctioned per the
// actor's role before anything is applied: fields a customer may not change
// are dropped silently. Status transitions derive resolved_at/closed_at
// stamps. All accepted fields go to the store in a single update call.
func (s *TicketService) UpdateTicket(ctx context.Context, actor domain.Actor, ticketID string, patch policy.TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !s.access.CanMutate(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	patch = s.access.SanctionTicketPatch(actor, patch)
	if patch.IsEmpty() {
		return ticket, nil
	}

	oldStatus := ticket.Status
	oldAssignee := ticket.AssignedTo

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		ticket.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperrors.NewValidationError("description cannot be empty", nil)
		}
		ticket.Description = description
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		ticket.AssignedTo = *patch.AssignedTo
	}
	if patch.ProductID != nil {
		ticket.ProductID = *patch.ProductID
	}
	if patch.Status != nil {
		policy.ApplyStatus(ticket, *patch.Status, s.clock())
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    actor,
	})
	if ticket.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Actor:    actor,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	if !equalAssignee(oldAssignee, ticket.AssignedTo) {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			Actor:    actor,
			Payload: events.TicketAssignedPayload{
				AssignedTo: ticket.AssignedTo,
			},
		})
	}
	return ticket, nil
}

// DeleteTicket hard-deletes a ticket. Admin only; the gate runs before any
// write.
func (s *TicketService) DeleteTicket(ctx context.Context, actor domain.Actor, ticketID string) error {
	if !policy.RoleGate(actor, policy.OpDeleteTicket) {
		return apperrors.NewForbidden("access denied")
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func equalAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
