//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"petbooking/internal/domain/user"
	"petbooking/internal/pkg/jwt"
	"petbooking/internal/usecase"
	"petbooking/tests/common/builder"
	usecasemock "petbooking/tests/mock/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthFixture(t *testing.T) (*usecasemock.MockUserRepository, usecase.AuthUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := usecasemock.NewMockUserRepository(ctrl)
	jwtService := jwt.NewService("test-secret", time.Hour)
	return users, usecase.NewAuthUseCase(users, jwtService)
}

func TestLogin(t *testing.T) {
	t.Run("owner logs in and the token round-trips", func(t *testing.T) {
		users, uc := newAuthFixture(t)
		owner, err := builder.NewUserBuilder().Build()
		require.NoError(t, err)

		users.EXPECT().FindByUsername(gomock.Any(), "OreoPetBath").Return(owner, nil)

		result, err := uc.Login(context.Background(), "OreoPetBath", "123456")
		require.NoError(t, err)
		assert.Equal(t, "OreoPetBath", result.Username)
		assert.Equal(t, user.RoleOwner, result.Role)
		require.NotEmpty(t, result.Token)

		id, role, err := uc.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, owner.ID(), id)
		assert.Equal(t, user.RoleOwner, role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users, uc := newAuthFixture(t)
		owner, err := builder.NewUserBuilder().Build()
		require.NoError(t, err)

		users.EXPECT().FindByUsername(gomock.Any(), "OreoPetBath").Return(owner, nil)

		_, err = uc.Login(context.Background(), "OreoPetBath", "wrong")
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		users, uc := newAuthFixture(t)

		users.EXPECT().FindByUsername(gomock.Any(), "nobody").Return(nil, assert.AnError)

		_, err := uc.Login(context.Background(), "nobody", "123456")
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		_, uc := newAuthFixture(t)

		_, _, err := uc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, usecase.ErrTokenValidation)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		_, uc := newAuthFixture(t)
		owner, err := builder.NewUserBuilder().Build()
		require.NoError(t, err)

		otherService := jwt.NewService("other-secret", time.Hour)
		token, err := otherService.GenerateToken(owner)
		require.NoError(t, err)

		_, _, err = uc.ValidateToken(token)
		assert.ErrorIs(t, err, usecase.ErrTokenValidation)
	})
}
