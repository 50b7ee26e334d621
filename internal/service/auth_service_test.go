package service

import (
	"context"
	"testing"

	"campus_market/internal/model"
	"campus_market/internal/repository"
	"campus_market/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) AuthService {
	storage := repository.NewMemStorage()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	return NewAuthService(storage, jwtUtil, "dashboard-secret")
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, model.InsertUser{Username: "asha", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	loggedIn, loginToken, err := svc.Login(ctx, "asha", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, model.InsertUser{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, model.InsertUser{Username: "asha", Password: "other456"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, model.InsertUser{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "asha", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AdminLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	token, err := svc.AdminLogin(ctx, "dashboard-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// The issued token carries the admin role
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	claims, err := jwtUtil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuthService_AdminLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.AdminLogin(context.Background(), "guess")
	assert.ErrorIs(t, err, ErrInvalidAdminSecret)
}
