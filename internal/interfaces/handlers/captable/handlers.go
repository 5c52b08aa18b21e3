package captable

import (
	capsvc "minutebook-backend/internal/application/captable"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles cap table handlers with dependencies.
type Handlers struct {
	Service *capsvc.Service
}

// CreateShareClass POST /api/v1/orgs/:org_id/share-classes
func (h *Handlers) CreateShareClass(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, capsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}

	var in capsvc.ShareClassInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, capsvc.ErrNameShortCodeRequired.Error(), fiber.StatusBadRequest, nil)
	}

	class, err := h.Service.CreateShareClass(c.Context(), orgID, in, actorID)
	if err != nil {
		return mapCapTableError(c, err)
	}
	return response.SuccessCreated(c, "Share class created successfully", class, nil)
}

// ListShareClasses GET /api/v1/orgs/:org_id/share-classes
func (h *Handlers) ListShareClasses(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, capsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	classes, err := h.Service.ListShareClasses(c.Context(), orgID)
	if err != nil {
		return mapCapTableError(c, err)
	}
	return response.Success(c, "Share classes fetched successfully", classes, nil)
}

// IssueShares POST /api/v1/orgs/:org_id/issuances
func (h *Handlers) IssueShares(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, capsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}

	var in capsvc.IssueSharesInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, capsvc.ErrShareholderExclusive.Error(), fiber.StatusBadRequest, nil)
	}

	issuance, err := h.Service.IssueShares(c.Context(), orgID, in, actorID)
	if err != nil {
		return mapCapTableError(c, err)
	}
	return response.SuccessCreated(c, "Shares issued successfully", issuance, nil)
}

// TransferShares POST /api/v1/orgs/:org_id/transfers
func (h *Handlers) TransferShares(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, capsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}

	var in capsvc.TransferSharesInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, capsvc.ErrToPersonRequired.Error(), fiber.StatusBadRequest, nil)
	}

	transfer, err := h.Service.TransferShares(c.Context(), orgID, in, actorID)
	if err != nil {
		return mapCapTableError(c, err)
	}
	return response.SuccessCreated(c, "Shares transferred successfully", transfer, nil)
}

// GetCapTable GET /api/v1/orgs/:org_id/cap-table
func (h *Handlers) GetCapTable(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, capsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	table, err := h.Service.ComputeCapTable(c.Context(), orgID)
	if err != nil {
		return mapCapTableError(c, err)
	}
	return response.Success(c, "Cap table computed successfully", table, nil)
}

func mapCapTableError(c *fiber.Ctx, err error) error {
	switch err {
	case capsvc.ErrMissingOrgID, capsvc.ErrNameShortCodeRequired, capsvc.ErrQuantityPositive,
		capsvc.ErrShareholderExclusive, capsvc.ErrToPersonRequired, capsvc.ErrCertNumberRequired,
		capsvc.ErrNegativeIssuePrice:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case capsvc.ErrOrgNotFound, capsvc.ErrClassNotFound, capsvc.ErrHolderNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case capsvc.ErrDuplicateShortCode, capsvc.ErrDuplicateCertNumber, capsvc.ErrInsufficientShares:
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	case capsvc.ErrSelfShareholding, capsvc.ErrClassWrongOrg:
		return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
