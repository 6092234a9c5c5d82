package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/policy"
	"github.com/deskhub/helpdesk-service/internal/repository"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// ProductService manages the product catalog. Reads are open to any
// authenticated actor; writes are admin-gated.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService constructs the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ProductPatch is a sparse product update.
type ProductPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// ListActive returns active products ordered by name.
func (s *ProductService) ListActive(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// GetProduct fetches a single product.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// CreateProduct adds a catalog entry. Duplicate names are a conflict.
func (s *ProductService) CreateProduct(ctx context.Context, actor domain.Actor, name, description string) (*domain.Product, error) {
	if !policy.RoleGate(actor, policy.OpManageProducts) {
		return nil, apperrors.NewForbidden("access denied")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("product name is required", nil)
	}

	product := &domain.Product{
		Name:        name,
		Description: description,
		IsActive:    true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("product name already exists", map[string]any{"name": name})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// UpdateProduct applies a sparse update to a catalog entry.
func (s *ProductService) UpdateProduct(ctx context.Context, actor domain.Actor, id string, patch ProductPatch) (*domain.Product, error) {
	if !policy.RoleGate(actor, policy.OpManageProducts) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if patch.Name == nil && patch.Description == nil && patch.IsActive == nil {
		return nil, apperrors.NewValidationError("no fields to update", nil)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("product name cannot be empty", nil)
		}
		product.Name = name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("product name already exists", map[string]any{"name": product.Name})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// DeleteProduct removes a catalog entry.
func (s *ProductService) DeleteProduct(ctx context.Context, actor domain.Actor, id string) error {
	if !policy.RoleGate(actor, policy.OpManageProducts) {
		return apperrors.NewForbidden("access denied")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
