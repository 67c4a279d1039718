package domain

import "fmt"

// Role is the closed set of access levels a token may carry.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole converts a stored role string into a Role. Unknown strings are
// rejected rather than defaulting to either role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
