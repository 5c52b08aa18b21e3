package people

import "errors"

var (
	ErrNameRequired   = errors.New("first_name and last_name are required")
	ErrRolesRequired  = errors.New("at least one role is required")
	ErrInvalidRole    = errors.New("role must be one of Director, Officer, Shareholder")
	ErrInvalidEmail   = errors.New("Invalid email format")
	ErrOrgNotFound    = errors.New("Organization not found")
	ErrPersonNotFound = errors.New("Person not found")
	ErrRoleNotFound   = errors.New("Role assignment not found")
	ErrNoUpdateFields = errors.New("No update fields provided")
	ErrMissingOrgID   = errors.New("Missing org_id")
)
