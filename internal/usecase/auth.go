package usecase

import (
	"context"
	"errors"

	"petbooking/internal/domain/user"
	"petbooking/internal/pkg/jwt"
	"petbooking/internal/pkg/password"
)

//go:generate mockgen -source=auth.go -destination=../../tests/mock/usecase/auth.go -package=usecasemock

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrOwnerRequired      = errors.New("owner account required")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

type LoginResult struct {
	Token    string
	Username string
	Role     user.Role
}

type AuthUseCase interface {
	// Login authenticates the shop owner. Customers have no accounts, so any
	// non-owner credential is rejected outright.
	Login(ctx context.Context, username, plainPassword string) (*LoginResult, error)
	ValidateToken(tokenString string) (int64, user.Role, error)
}

type authUseCaseImpl struct {
	users      UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(users UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, username, plainPassword string) (*LoginResult, error) {
	u, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(u.PasswordHash(), plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsOwner() {
		return nil, ErrOwnerRequired
	}

	token, err := a.jwtService.GenerateToken(u)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	return &LoginResult{
		Token:    token,
		Username: u.Username(),
		Role:     u.Role(),
	}, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (int64, user.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return 0, "", ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return 0, "", ErrTokenValidation
	}

	return claims.UserID, role, nil
}
