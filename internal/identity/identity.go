package identity

// Role is the coarse authorization level attached to every authenticated request.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleInstructor Role = "INSTRUCTOR"
	RoleStudent    Role = "STUDENT"
)

// Identity is the verified principal for the current request. Authentication happens
// upstream; the core only ever authorizes against this value, passed explicitly into
// every service operation.
type Identity struct {
	UserID uint
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsOwnerOrAdmin is the shared authorization predicate for resource mutation:
// admins may touch anything, everyone else only what they own.
func (i Identity) IsOwnerOrAdmin(resourceOwnerID uint) bool {
	return i.Role == RoleAdmin || i.UserID == resourceOwnerID
}

// ParseRole maps the upstream role header onto a known Role, defaulting to student.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleInstructor:
		return RoleInstructor
	default:
		return RoleStudent
	}
}
