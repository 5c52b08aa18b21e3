package documents

import (
	docsvc "minutebook-backend/internal/application/documents"
	"minutebook-backend/internal/middleware"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles template/document handlers with dependencies.
type Handlers struct {
	Service *docsvc.Service
}

// CreateTemplate POST /api/v1/templates
func (h *Handlers) CreateTemplate(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var in docsvc.CreateTemplateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, docsvc.ErrNameFileKeyRequired.Error(), fiber.StatusBadRequest, nil)
	}

	tmpl, err := h.Service.CreateTemplate(c.Context(), in, actorID)
	if err != nil {
		return mapDocumentsError(c, err)
	}
	return response.SuccessCreated(c, "Template created successfully", tmpl, nil)
}

// ListTemplates GET /api/v1/templates?category=...
func (h *Handlers) ListTemplates(c *fiber.Ctx) error {
	var category *string
	if q := c.Query("category"); q != "" {
		category = &q
	}
	templates, err := h.Service.ListTemplates(c.Context(), category)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Templates fetched successfully", templates, nil)
}

// GetSnapshot GET /api/v1/orgs/:org_id/snapshot — the payload handed to
// the external renderer.
func (h *Handlers) GetSnapshot(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, docsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	snap, err := h.Service.BuildSnapshot(c.Context(), orgID)
	if err != nil {
		return mapDocumentsError(c, err)
	}
	return response.Success(c, "Snapshot assembled successfully", snap, nil)
}

// GenerateDocumentRequest records the renderer's output pointer.
type GenerateDocumentRequest struct {
	TemplateID uuid.UUID `json:"template_id"`
	FileKey    string    `json:"file_key"`
}

// RecordGenerated POST /api/v1/orgs/:org_id/documents — snapshot the org
// and persist the generated-document pointer.
func (h *Handlers) RecordGenerated(c *fiber.Ctx) error {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, docsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}

	var req GenerateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, docsvc.ErrFileKeyRequired.Error(), fiber.StatusBadRequest, nil)
	}

	snap, err := h.Service.BuildSnapshot(c.Context(), orgID)
	if err != nil {
		return mapDocumentsError(c, err)
	}
	doc, err := h.Service.RecordGenerated(c.Context(), orgID, req.TemplateID, req.FileKey, snap, actorID)
	if err != nil {
		return mapDocumentsError(c, err)
	}
	return response.SuccessCreated(c, "Document recorded successfully", doc, nil)
}

// ListGenerated GET /api/v1/orgs/:org_id/documents
func (h *Handlers) ListGenerated(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return response.Error(c, docsvc.ErrMissingOrgID.Error(), fiber.StatusBadRequest, nil)
	}
	docs, err := h.Service.ListGenerated(c.Context(), orgID)
	if err != nil {
		return mapDocumentsError(c, err)
	}
	return response.Success(c, "Documents fetched successfully", docs, nil)
}

func mapDocumentsError(c *fiber.Ctx, err error) error {
	switch err {
	case docsvc.ErrNameFileKeyRequired, docsvc.ErrFileKeyRequired, docsvc.ErrMissingOrgID:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case docsvc.ErrOrgNotFound, docsvc.ErrTemplateNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
