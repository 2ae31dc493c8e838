// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

// Role names carried in tokens.
const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller.
type Principal struct {
	UserID   string
	Email    string
	Username string
	Role     string
}

// IsAdmin reports whether the caller has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanModerate reports whether the caller may act on content owned by others.
func (p Principal) CanModerate() bool {
	return p.Role == RoleAdmin || p.Role == RoleModerator
}

// Owns reports whether the caller is ownerID or an admin.
func (p Principal) Owns(ownerID string) bool {
	return p.UserID == ownerID || p.IsAdmin()
}
