package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleOwner Role = "OWNER"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleOwner
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
