package people

import (
	peoplesvc "minutebook-backend/internal/application/people"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles people handlers with dependencies.
type Handlers struct {
	Service *peoplesvc.Service
}

// AddPersonRequest bundles the person payload with the initial roles.
type AddPersonRequest struct {
	Person peoplesvc.PersonInput `json:"person"`
	Roles  []peoplesvc.RoleInput `json:"roles"`
}

// AddPerson POST /api/v1/orgs/:org_id/people
func (h *Handlers) AddPerson(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, peoplesvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}

	var req AddPersonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, peoplesvc.ErrNameRequired.Error(), fiber.StatusBadRequest, nil)
	}

	out, err := h.Service.AddPerson(c.Context(), orgID, req.Person, req.Roles, actorID)
	if err != nil {
		return mapPeopleError(c, err)
	}
	return response.SuccessCreated(c, "Person added successfully", out, nil)
}

// ListPeople GET /api/v1/orgs/:org_id/people
func (h *Handlers) ListPeople(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, peoplesvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.ListPeopleWithRoles(c.Context(), orgID)
	if err != nil {
		return mapPeopleError(c, err)
	}
	return response.Success(c, "People fetched successfully", out, nil)
}

// UpdatePerson PATCH /api/v1/orgs/:org_id/people/:person_id
func (h *Handlers) UpdatePerson(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, peoplesvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	personID, err := uuid.Parse(c.Params("person_id"))
	if err != nil {
		return response.Error(c, peoplesvc.ErrPersonNotFound.Error(), fiber.StatusBadRequest, nil)
	}

	var in peoplesvc.UpdatePersonInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, peoplesvc.ErrNoUpdateFields.Error(), fiber.StatusBadRequest, nil)
	}

	person, err := h.Service.UpdatePerson(c.Context(), orgID, personID, in, actorID)
	if err != nil {
		return mapPeopleError(c, err)
	}
	return response.Success(c, "Person updated successfully", person, nil)
}

// RemoveRole DELETE /api/v1/orgs/:org_id/roles/:role_id
func (h *Handlers) RemoveRole(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, peoplesvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	roleID, err := uuid.Parse(c.Params("role_id"))
	if err != nil {
		return response.Error(c, peoplesvc.ErrRoleNotFound.Error(), fiber.StatusBadRequest, nil)
	}

	if err := h.Service.RemoveRole(c.Context(), orgID, roleID, actorID); err != nil {
		return mapPeopleError(c, err)
	}
	return response.Success(c, "Role assignment removed successfully", nil, nil)
}

func mapPeopleError(c *fiber.Ctx, err error) error {
	switch err {
	case peoplesvc.ErrNameRequired, peoplesvc.ErrRolesRequired, peoplesvc.ErrInvalidRole,
		peoplesvc.ErrInvalidEmail, peoplesvc.ErrNoUpdateFields, peoplesvc.ErrMissingOrgID:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case peoplesvc.ErrOrgNotFound, peoplesvc.ErrPersonNotFound, peoplesvc.ErrRoleNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
