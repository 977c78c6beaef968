package entity

// Role names for the static staff accounts
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// IsKnownRole checks a configured role name
func IsKnownRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
