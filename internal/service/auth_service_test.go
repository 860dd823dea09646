package service

import (
	"context"
	"testing"

	"studytrack-be/internal/dto"
	"studytrack-be/internal/pkg/serverutils"
	"studytrack-be/internal/repository/inmemory"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() IAuthService {
	return NewAuthService(inmemory.NewFactory(inmemory.NewStore()), "test-secret", 72)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "maya@example.com",
		Password: "correct horse battery",
		FullName: "Maya Lin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "maya@example.com", registered.User.Email)
	assert.Equal(t, "Maya Lin", registered.User.FullName)

	loggedIn, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "maya@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, loggedIn.User.Id)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "maya@example.com",
		Password: "pw-one-two-three",
		FullName: "Maya Lin",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "maya@example.com",
		Password: "another-password",
		FullName: "Someone Else",
	})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusConflict, appErr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "maya@example.com",
		Password: "pw-one-two-three",
		FullName: "Maya Lin",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "maya@example.com", Password: "nope"}},
		{"unknown email", dto.LoginRequest{Email: "ghost@example.com", Password: "pw-one-two-three"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			var appErr *serverutils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, fiber.StatusUnauthorized, appErr.Code)
		})
	}
}

func TestIssuedTokenCarriesClaims(t *testing.T) {
	svc := newAuthService()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "maya@example.com",
		Password: "pw-one-two-three",
		FullName: "Maya Lin",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])
	assert.Equal(t, "maya@example.com", claims["email"])
	assert.NotNil(t, claims["exp"])
}
