package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/dto"
	"github.com/spec-kit/menu-service/internal/service"
)

// CategoriesHandler exposes menu category endpoints.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// Create handles POST /api/v1/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	category, err := h.categories.Create(c.UserContext(), req.Name, req.Slug, req.IsActive)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(category)
}

// List handles GET /api/v1/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// Get handles GET /api/v1/categories/:slug.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.categories.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// Update handles PUT /api/v1/categories/:slug.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.categories.Update(c.UserContext(), c.Params("slug"), req.Name, req.IsActive); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Category updated successfully"})
}

// Delete handles DELETE /api/v1/categories/:slug.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("slug")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted successfully"})
}
