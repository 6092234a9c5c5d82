package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deskhub/helpdesk-service/internal/api/dto"
	"github.com/deskhub/helpdesk-service/internal/service"
)

// DashboardHandler serves aggregate statistics.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	stats, err := h.dashboard.Stats(c.Context(), actor)
	if err != nil {
		return err
	}

	resp := dto.DashboardStatsResponse{
		TotalTickets:      stats.Tickets.Total,
		OpenTickets:       stats.Tickets.Open,
		InProgressTickets: stats.Tickets.InProgress,
		ResolvedTickets:   stats.Tickets.Resolved,
		ClosedTickets:     stats.Tickets.Closed,
		UrgentTickets:     stats.Tickets.Urgent,
		HighTickets:       stats.Tickets.High,
	}
	for _, customer := range stats.TopCustomers {
		resp.TopCustomers = append(resp.TopCustomers, dto.TopCustomerEntry{
			ID:          customer.UserID,
			FullName:    customer.FullName,
			Email:       customer.Email,
			TicketCount: customer.TicketCount,
		})
	}
	resp.TopProducts = make([]dto.TopProductEntry, 0, len(stats.TopProducts))
	for _, product := range stats.TopProducts {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductEntry{
			ID:         product.ProductID,
			Name:       product.Name,
			IssueCount: product.IssueCount,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}
