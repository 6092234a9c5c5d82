package domain

// Actor is the authenticated identity performing an operation. Every policy
// decision receives an explicit Actor; nothing in the core reads ambient
// session state.
type Actor struct {
	ID   string
	Role Role
}

// Owns reports whether the actor is the customer that filed the ticket.
func (a Actor) Owns(ticket *Ticket) bool {
	return ticket != nil && a.ID == ticket.CustomerID
}
