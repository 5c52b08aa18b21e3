package constants

// Corporate roles a person (or entity shareholder) can hold in an org.
// Must stay a closed set; role strings outside it are rejected.
const (
	RoleDirector    = "Director"
	RoleOfficer     = "Officer"
	RoleShareholder = "Shareholder"
)

var ValidRoles = []string{RoleDirector, RoleOfficer, RoleShareholder}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Account roles for authenticated users.
const (
	Admin  = "admin"
	Member = "member"
)
