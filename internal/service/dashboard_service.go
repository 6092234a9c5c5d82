package service

import (
	"context"

	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/repository"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

const topListLimit = 10

// DashboardStats is the role-scoped aggregate view.
type DashboardStats struct {
	Tickets      repository.TicketStats
	TopCustomers []repository.CustomerCount
	TopProducts  []repository.ProductCount
}

// DashboardService aggregates ticket counts scoped to the actor: customers
// see only their own tickets and no customer ranking.
type DashboardService struct {
	dashboard repository.DashboardRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(dashboard repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

// Stats returns the dashboard aggregates for the actor.
func (s *DashboardService) Stats(ctx context.Context, actor domain.Actor) (*DashboardStats, error) {
	var scope *string
	if actor.Role == domain.RoleCustomer {
		ownerID := actor.ID
		scope = &ownerID
	}

	tickets, err := s.dashboard.TicketStats(ctx, scope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &DashboardStats{Tickets: *tickets}

	if actor.Role.IsStaff() {
		topCustomers, err := s.dashboard.TopCustomers(ctx, topListLimit)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		stats.TopCustomers = topCustomers
	}

	topProducts, err := s.dashboard.TopProducts(ctx, scope, topListLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stats.TopProducts = topProducts

	return stats, nil
}
