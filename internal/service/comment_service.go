package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/events"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// CommentService manages ticket comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	access     *policy.AccessPolicy
	dispatcher events.Dispatcher
}

// CommentDependencies bundles collaborators for comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TicketRepo  repository.TicketRepository
	Access      *policy.AccessPolicy
	Dispatcher  events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	access := deps.Access
	if access == nil {
		access = policy.NewAccessPolicy()
	}
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		access:     access,
		dispatcher: deps.Dispatcher,
	}
}

// ListForTicket returns the comment thread visible to the actor, ordered by
// creation time. Internal notes are filtered out for customers.
func (s *CommentService) ListForTicket(ctx context.Context, actor domain.Actor, ticketID string) ([]domain.Comment, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.access.CanView(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.access.VisibleComments(actor, comments), nil
}

// AddComment appends a comment to a ticket the actor may view. The
// is_internal flag from the client is untrusted: customers always produce
// public comments regardless of what they send.
func (s *CommentService) AddComment(ctx context.Context, actor domain.Actor, ticketID, body string, requestedInternal bool) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("comment text is required", nil)
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.access.CanView(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	comment := &domain.Comment{
		TicketID:   ticket.ID,
		UserID:     actor.ID,
		Body:       strings.TrimSpace(body),
		IsInternal: s.access.EffectiveInternal(actor, requestedInternal),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:       uuid.NewString(),
			Type:     events.EventCommentAdded,
			TicketID: ticket.ID,
			Actor:    actor,
			Payload: events.CommentAddedPayload{
				CommentID:   comment.ID,
				AuthorID:    actor.ID,
				IsInternal:  comment.IsInternal,
				BodyPreview: preview(comment.Body, 120),
			},
		})
	}
	return comment, nil
}

func (s *CommentService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func preview(body string, max int) string {
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
