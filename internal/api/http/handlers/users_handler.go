package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/menu-service/internal/api/dto"
	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/service"
	apperrors "github.com/spec-kit/menu-service/pkg/util"
)

// UsersHandler exposes bearer-protected account management endpoints.
type UsersHandler struct {
	creds *service.CredentialService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(creds *service.CredentialService) *UsersHandler {
	return &UsersHandler{creds: creds}
}

// List handles GET /api/v1/auth.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.creds.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(out)
}

// Get handles GET /api/v1/auth/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.creds.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Profile handles GET /api/v1/auth/profile/me.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated user")
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// Update handles PUT /api/v1/auth/:id/update.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.creds.UpdateProfile(c.UserContext(), c.Params("id"), req.Name, req.Image); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User updated successfully"})
}

// UpdatePassword handles PUT /api/v1/auth/:id/password/update.
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.creds.ChangePassword(c.UserContext(), c.Params("id"), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Password updated successfully"})
}

// Delete handles DELETE /api/v1/auth/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.creds.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}
