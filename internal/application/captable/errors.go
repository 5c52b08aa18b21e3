package captable

import "errors"

var (
	ErrMissingOrgID          = errors.New("Missing org_id")
	ErrOrgNotFound           = errors.New("Organization not found")
	ErrClassNotFound         = errors.New("Share class not found")
	ErrClassWrongOrg         = errors.New("Share class does not belong to this organization")
	ErrNameShortCodeRequired = errors.New("name and short_code are required")
	ErrDuplicateShortCode    = errors.New("short_code already exists for this organization")
	ErrDuplicateCertNumber   = errors.New("cert_number already exists for this share class")
	ErrQuantityPositive      = errors.New("quantity must be a positive integer")
	ErrNegativeIssuePrice    = errors.New("issue_price must not be negative")
	ErrShareholderExclusive  = errors.New("exactly one of shareholder_id and entity_shareholder_id must match shareholder_type")
	ErrSelfShareholding      = errors.New("an organization cannot be its own shareholder")
	ErrHolderNotFound        = errors.New("Shareholder not found")
	ErrToPersonRequired      = errors.New("to_person_id is required")
	ErrInsufficientShares    = errors.New("insufficient shares for transfer")
	ErrCertNumberRequired    = errors.New("cert_number is required")
)
