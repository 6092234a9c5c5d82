package dto

// DashboardStatsResponse mirrors the dashboard aggregates. top_customers is
// omitted for customers.
type DashboardStatsResponse struct {
	TotalTickets      int64              `json:"total_tickets"`
	OpenTickets       int64              `json:"open_tickets"`
	InProgressTickets int64              `json:"in_progress_tickets"`
	ResolvedTickets   int64              `json:"resolved_tickets"`
	ClosedTickets     int64              `json:"closed_tickets"`
	UrgentTickets     int64              `json:"urgent_tickets"`
	HighTickets       int64              `json:"high_tickets"`
	TopCustomers      []TopCustomerEntry `json:"top_customers,omitempty"`
	TopProducts       []TopProductEntry  `json:"top_products"`
}

// TopCustomerEntry ranks a customer by ticket count.
type TopCustomerEntry struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	TicketCount int64  `json:"ticket_count"`
}

// TopProductEntry ranks a product by issue count.
type TopProductEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IssueCount int64  `json:"issue_count"`
}
