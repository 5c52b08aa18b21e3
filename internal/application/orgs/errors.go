package orgs

import "errors"

var (
	ErrNameJurisdictionRequired = errors.New("name and jurisdiction are required")
	ErrMissingOrgID             = errors.New("Missing org_id")
	ErrNoUpdateFields           = errors.New("No update fields provided")
	ErrOrgNotFound              = errors.New("Organization not found")
)
