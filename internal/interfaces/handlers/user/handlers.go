package user

import (
	usersvc "minutebook-backend/internal/application/user"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles user handlers with dependencies.
type Handlers struct {
	Service *usersvc.Service
}

// CreateUser POST /api/v1/users/create-user (public registration).
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var in usersvc.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	u, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		switch err {
		case usersvc.ErrFullnameRequired, usersvc.ErrInvalidFullname, usersvc.ErrInvalidEmail, usersvc.ErrInvalidPassword:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case usersvc.ErrEmailRegistered:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "User created successfully", u, nil)
}

// ViewUser GET /api/v1/users/view-user — the authenticated account.
func (h *Handlers) ViewUser(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	u, err := h.Service.GetUser(c.Context(), actorID)
	if err != nil {
		if err == usersvc.ErrUserNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "User fetched successfully", u, nil)
}
