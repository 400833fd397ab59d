package auth

import "time"

// RoleAdmin is the role carried by administrator tokens.
const RoleAdmin = "admin"

// Identity is the verified content of an access token.
type Identity struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
