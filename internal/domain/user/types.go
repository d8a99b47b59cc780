package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the actor's authorization level. The lifecycle core consumes
// identity from the calling layer; roles exist only to gate the
// privileged surfaces (command log, snapshot restore).
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
