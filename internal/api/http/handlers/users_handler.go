package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/deskhub/helpdesk-service/internal/api/dto"
	"github.com/deskhub/helpdesk-service/internal/domain"
	"github.com/deskhub/helpdesk-service/internal/service"
	apperrors "github.com/deskhub/helpdesk-service/pkg/util/errorutil"
)

// UsersHandler manages account administration endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	users, err := h.users.ListUsers(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAgents GET /users/agents.
func (h *UsersHandler) ListAgents(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	agents, err := h.users.ListAgents(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.AgentResponse, 0, len(agents))
	for _, agent := range agents {
		items = append(items, dto.AgentResponse{
			ID:       agent.ID,
			Username: agent.Username,
			FullName: agent.FullName,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateUser POST /users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
	}
	user, err := h.users.CreateUser(c.Context(), actor, service.UserCreateInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateUser PUT /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	patch := service.UserPatch{
		FullName: req.FullName,
		Email:    req.Email,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": *req.Role})
		}
		patch.Role = &role
	}
	user, err := h.users.UpdateUser(c.Context(), actor, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// ResetPassword POST /users/:id/reset-password.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ResetPassword(c.Context(), actor, c.Params("id"), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password reset successful"})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
