//go:build unit || e2e

package builder

import (
	"time"

	"petbooking/internal/domain/user"
	"petbooking/internal/pkg/password"
)

type UserBuilder struct {
	ID       int64
	Username string
	Password string
	Role     user.Role
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       1,
		Username: "OreoPetBath",
		Password: "123456",
		Role:     user.RoleOwner,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) Build() (*user.User, error) {
	hash, err := password.Hash(b.Password)
	if err != nil {
		return nil, err
	}
	return user.Reconstruct(b.ID, b.Username, hash, b.Role, time.Now()), nil
}
