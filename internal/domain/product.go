package domain

import "time"

// Product is a catalog entry tickets can reference.
type Product struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}
