package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/deskhub/helpdesk-service/internal/api/dto"
	"github.com/deskhub/helpdesk-service/internal/auth"
	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
	"github.com/deskhub/helpdesk-service/internal/service"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints for all roles; the policy layer
// does the per-role work.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		ProductID:   normalizeRef(req.ProductID),
	}
	if req.Priority != "" {
		priority, ok := domain.ParseTicketPriority(req.Priority)
		if !ok {
			return apperrors.NewValidationError("unknown priority", map[string]any{"priority": req.Priority})
		}
		input.Priority = priority
	}

	ticket, err := h.tickets.CreateTicket(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	filter, err := parseTicketFilter(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListTickets(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	patch, err := buildTicketPatch(req)
	if err != nil {
		return err
	}
	ticket, err := h.tickets.UpdateTicket(c.Context(), actor, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.tickets.DeleteTicket(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ticket deleted"})
}

func parseTicketFilter(c *fiber.Ctx) (repository.TicketFilter, error) {
	var filter repository.TicketFilter
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseTicketStatus(raw)
		if !ok {
			return filter, apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, ok := domain.ParseTicketPriority(raw)
		if !ok {
			return filter, apperrors.NewValidationError("unknown priority", map[string]any{"priority": raw})
		}
		filter.Priority = &priority
	}
	if raw := c.Query("assigned_to"); raw != "" {
		filter.AssignedTo = &raw
	}
	if raw := c.Query("search"); raw != "" {
		filter.Search = &raw
	}
	return filter, nil
}

func buildTicketPatch(req dto.UpdateTicketRequest) (policy.TicketPatch, error) {
	var patch policy.TicketPatch
	patch.Title = req.Title
	patch.Description = req.Description
	if req.Status != nil {
		status, ok := domain.ParseTicketStatus(*req.Status)
		if !ok {
			return patch, apperrors.NewValidationError("unknown status", map[string]any{"status": *req.Status})
		}
		patch.Status = &status
	}
	if req.Priority != nil {
		priority, ok := domain.ParseTicketPriority(*req.Priority)
		if !ok {
			return patch, apperrors.NewValidationError("unknown priority", map[string]any{"priority": *req.Priority})
		}
		patch.Priority = &priority
	}
	if req.AssignedTo != nil {
		ref := normalizeRef(req.AssignedTo)
		patch.AssignedTo = &ref
	}
	if req.ProductID != nil {
		ref := normalizeRef(req.ProductID)
		patch.ProductID = &ref
	}
	return patch, nil
}

// normalizeRef maps an empty reference to nil so clients can clear
// assigned_to/product_id by sending "".
func normalizeRef(ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	return ref
}

func actorFromContext(c *fiber.Ctx) (domain.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return domain.Actor{}, apperrors.NewUnauthorized("authentication required")
	}
	return principal.Actor(), nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		CustomerID:   ticket.CustomerID,
		AssignedTo:   ticket.AssignedTo,
		ProductID:    ticket.ProductID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		ResolvedAt:   ticket.ResolvedAt,
		ClosedAt:     ticket.ClosedAt,
	}
}
