package constants

// Audit log action vocabulary. Closed set: every audit row uses one of
// these, never a free-form string.
const (
	ActionCreateOrg        = "CREATE_ORG"
	ActionUpdateOrg        = "UPDATE_ORG"
	ActionAddPerson        = "ADD_PERSON"
	ActionUpdatePerson     = "UPDATE_PERSON"
	ActionRemoveRole       = "REMOVE_ROLE"
	ActionCreateShareClass = "CREATE_SHARE_CLASS"
	ActionIssueShares      = "ISSUE_SHARES"
	ActionTransferShares   = "TRANSFER_SHARES"
	ActionUploadTemplate   = "UPLOAD_TEMPLATE"
	ActionGenerateDocument = "GENERATE_DOCUMENT"
)
