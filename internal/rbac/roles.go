package rbac

// Role names. Keep these stable; they are part of auth contracts and are
// stored on user rows.
const (
	RoleAdmin   = "admin"
	RoleHR      = "hr"
	RoleManager = "manager"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

// ValidRole reports whether role belongs to the closed set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleManager:
		return true
	default:
		return false
	}
}
