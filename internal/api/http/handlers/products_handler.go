package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/deskhub/helpdesk-service/internal/api/dto"
	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/service"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// ProductsHandler manages catalog endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// ListProducts GET /products.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.products.ListActive(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProduct GET /products/:id.
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.products.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// CreateProduct POST /products.
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product, err := h.products.CreateProduct(c.Context(), actor, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productResponse(product)})
}

// UpdateProduct PUT /products/:id.
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	patch := service.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	product, err := h.products.UpdateProduct(c.Context(), actor, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// DeleteProduct DELETE /products/:id.
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if err := h.products.DeleteProduct(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

func productResponse(product *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
	}
}
