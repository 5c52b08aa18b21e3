package documents

import "errors"

var (
	ErrNameFileKeyRequired = errors.New("name and file_key are required")
	ErrMissingOrgID        = errors.New("Missing org_id")
	ErrOrgNotFound         = errors.New("Organization not found")
	ErrTemplateNotFound    = errors.New("Template not found")
	ErrFileKeyRequired     = errors.New("file_key is required")
)
