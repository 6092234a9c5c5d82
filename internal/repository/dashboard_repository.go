package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketStats aggregates ticket counts by status and urgency.
type TicketStats struct {
	Total      int64
	Open       int64
	InProgress int64
	Resolved   int64
	Closed     int64
	Urgent     int64
	High       int64
}

// CustomerCount ranks a customer by ticket volume.
type CustomerCount struct {
	UserID      string
	FullName    string
	Email       string
	TicketCount int64
}

// ProductCount ranks a product by issue volume.
type ProductCount struct {
	ProductID  string
	Name       string
	IssueCount int64
}

// DashboardRepository serves aggregate queries for the dashboard.
type DashboardRepository interface {
	TicketStats(ctx context.Context, customerID *string) (*TicketStats, error)
	TopCustomers(ctx context.Context, limit int) ([]CustomerCount, error)
	TopProducts(ctx context.Context, customerID *string, limit int) ([]ProductCount, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository builds repository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) TicketStats(ctx context.Context, customerID *string) (*TicketStats, error) {
	query := `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'open'),
            COUNT(*) FILTER (WHERE status = 'in_progress'),
            COUNT(*) FILTER (WHERE status = 'resolved'),
            COUNT(*) FILTER (WHERE status = 'closed'),
            COUNT(*) FILTER (WHERE priority = 'urgent'),
            COUNT(*) FILTER (WHERE priority = 'high')
        FROM tickets`
	args := []any{}
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}

	var stats TicketStats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.Resolved,
		&stats.Closed,
		&stats.Urgent,
		&stats.High,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *dashboardRepository) TopCustomers(ctx context.Context, limit int) ([]CustomerCount, error) {
	const query = `
        SELECT u.id, u.full_name, u.email, COUNT(t.id)
        FROM users u
        LEFT JOIN tickets t ON u.id = t.customer_id
        WHERE u.role = 'customer'
        GROUP BY u.id, u.full_name, u.email
        ORDER BY COUNT(t.id) DESC
        LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CustomerCount
	for rows.Next() {
		var entry CustomerCount
		if err := rows.Scan(&entry.UserID, &entry.FullName, &entry.Email, &entry.TicketCount); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *dashboardRepository) TopProducts(ctx context.Context, customerID *string, limit int) ([]ProductCount, error) {
	query := `
        SELECT p.id, p.name, COUNT(t.id)
        FROM products p
        LEFT JOIN tickets t ON p.id = t.product_id`
	args := []any{}
	if customerID != nil {
		query += ` AND t.customer_id = $1`
		args = append(args, *customerID)
	}
	query += `
        WHERE p.is_active = true
        GROUP BY p.id, p.name
        ORDER BY COUNT(t.id) DESC`
	if customerID != nil {
		query += ` LIMIT $2`
	} else {
		query += ` LIMIT $1`
	}
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProductCount
	for rows.Next() {
		var entry ProductCount
		if err := rows.Scan(&entry.ProductID, &entry.Name, &entry.IssueCount); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
