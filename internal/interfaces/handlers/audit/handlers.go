package audit

import (
	auditsvc "minutebook-backend/internal/application/audit"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers exposes the read-only audit trail.
type Handlers struct {
	Service *auditsvc.Service
}

// ListForOrg GET /api/v1/orgs/:org_id/audit
func (h *Handlers) ListForOrg(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, "Missing org_id", fiber.StatusBadRequest, nil)
	}
	entries, err := h.Service.ListForOrg(c.Context(), orgID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Audit entries fetched successfully", entries, nil)
}

// ListAll GET /api/v1/audit
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	entries, err := h.Service.ListAll(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Audit entries fetched successfully", entries, nil)
}
