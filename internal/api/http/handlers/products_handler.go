package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/dto"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/service"
)

// ProductsHandler exposes menu product endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// Create handles POST /api/v1/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product := &domain.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		IsActive:    req.IsActive,
		Categories:  req.Categories,
	}
	if err := h.products.Create(c.UserContext(), product); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(product)
}

// List handles GET /api/v1/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// Get handles GET /api/v1/products/:slug.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Update handles PUT /api/v1/products/:slug.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product := &domain.Product{
		Name:        req.Name,
		Slug:        c.Params("slug"),
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		IsActive:    req.IsActive,
		Categories:  req.Categories,
	}
	if err := h.products.Update(c.UserContext(), product); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Product updated successfully"})
}

// ToggleActive handles PATCH /api/v1/products/:slug/is-active.
func (h *ProductsHandler) ToggleActive(c *fiber.Ctx) error {
	active, err := h.products.ToggleActive(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"isActive": active})
}

// Delete handles DELETE /api/v1/products/:slug.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("slug")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Product deleted successfully"})
}
