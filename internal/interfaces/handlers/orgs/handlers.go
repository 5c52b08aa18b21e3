package orgs

import (
	orgsvc "minutebook-backend/internal/application/orgs"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles org handlers with dependencies.
type Handlers struct {
	Service *orgsvc.Service
}

// CreateOrg POST /api/v1/orgs
func (h *Handlers) CreateOrg(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var in orgsvc.CreateOrgInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, orgsvc.ErrNameJurisdictionRequired.Error(), fiber.StatusBadRequest, nil)
	}

	org, err := h.Service.CreateOrg(c.Context(), in, actorID)
	if err != nil {
		return mapOrgError(c, err)
	}
	return response.SuccessCreated(c, "Organization created successfully", org, nil)
}

// GetOrg GET /api/v1/orgs/:org_id
func (h *Handlers) GetOrg(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, orgsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	org, err := h.Service.GetOrg(c.Context(), orgID)
	if err != nil {
		return mapOrgError(c, err)
	}
	return response.Success(c, "Organization fetched successfully", org, nil)
}

// GetOrgAddresses GET /api/v1/orgs/:org_id/addresses
func (h *Handlers) GetOrgAddresses(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, orgsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	addrs, err := h.Service.GetOrgAddresses(c.Context(), orgID)
	if err != nil {
		return mapOrgError(c, err)
	}
	return response.Success(c, "Addresses fetched successfully", addrs, nil)
}

// UpdateOrg PATCH /api/v1/orgs/:org_id
func (h *Handlers) UpdateOrg(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, orgsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}

	var in orgsvc.UpdateOrgInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, orgsvc.ErrNoUpdateFields.Error(), fiber.StatusBadRequest, nil)
	}

	org, err := h.Service.UpdateOrg(c.Context(), orgID, in, actorID)
	if err != nil {
		return mapOrgError(c, err)
	}
	return response.Success(c, "Organization updated successfully", org, nil)
}

// ListOrgs GET /api/v1/orgs — organizations created by the actor.
func (h *Handlers) ListOrgs(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgs, err := h.Service.ListOrgs(c.Context(), actorID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Organizations fetched successfully", orgs, nil)
}

func mapOrgError(c *fiber.Ctx, err error) error {
	switch err {
	case orgsvc.ErrNameJurisdictionRequired, orgsvc.ErrMissingOrgID, orgsvc.ErrNoUpdateFields:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case orgsvc.ErrOrgNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		// Address validation failures carry their own messages
		if isAddressError(err) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
