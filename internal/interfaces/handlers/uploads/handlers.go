package uploads

import (
	uploadsvc "minutebook-backend/internal/application/uploads"
	"minutebook-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles upload handlers with dependencies.
type Handlers struct {
	Service        *uploadsvc.Service
	TemplateBucket string
}

type signRequest struct {
	FileName string `json:"file_name"`
}

// SignTemplateUpload POST /api/v1/uploads/template — returns a signed URL
// the client uploads the template file to.
func (h *Handlers) SignTemplateUpload(c *fiber.Ctx) error {
	var req signRequest
	if err := c.BodyParser(&req); err != nil || req.FileName == "" {
		return response.Error(c, "file_name is required", fiber.StatusBadRequest, nil)
	}

	result, err := h.Service.GetSignedUploadURL(c.Context(), h.TemplateBucket, req.FileName)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Signed upload URL created", result, nil)
}
