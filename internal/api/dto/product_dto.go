package dto

import "time"

// CreateProductRequest payload.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProductRequest is a sparse product update.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// ProductResponse mirrors a catalog entry.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
