// Package user holds the staff account used by the owner dashboard.
// Customers never log in; they identify themselves by phone on cancel.
package user

import (
	"time"
)

type User struct {
	id           int64
	username     string
	passwordHash string
	role         Role
	createdAt    time.Time
}

func NewUser(username, passwordHash string, role Role) *User {
	return &User{
		username:     username,
		passwordHash: passwordHash,
		role:         role,
	}
}

func Reconstruct(id int64, username, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) IsOwner() bool { return u.role == RoleOwner }

func (u *User) ID() int64            { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
