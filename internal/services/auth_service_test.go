package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mittirang/mittirang-backend/internal/models"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	utils.SetJWTSecret("test-secret")
	return NewAuthService(newTestDB(t), newTestConfig(t))
}

func TestAuthService_DefaultAdminLogin(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	require.NoError(t, s.EnsureDefaultAdmin(ctx))
	require.NoError(t, s.EnsureDefaultAdmin(ctx), "seeding twice is a no-op")

	var count int64
	s.db.Model(&models.AdminUser{}).Count(&count)
	assert.Equal(t, int64(1), count)

	resp, err := s.Login(ctx, &LoginRequest{Email: "Admin@Mittirang.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	require.NotNil(t, resp.Admin.LastLoginAt)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.ID, claims.AdminID)

	admin, err := s.GetAdmin(ctx, claims.AdminID)
	require.NoError(t, err)
	assert.NotNil(t, admin.LastLoginAt)
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)
	require.NoError(t, s.EnsureDefaultAdmin(ctx))

	_, err := s.Login(ctx, &LoginRequest{Email: "admin@mittirang.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &LoginRequest{Email: "nobody@mittirang.com", Password: "admin123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, &LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)
	assert.NotEmpty(t, utils.GetValidationErrors(err))
}

func TestAuthService_CreateAdmin(t *testing.T) {
	ctx := context.Background()
	s := newAuthService(t)

	_, err := s.CreateAdmin(ctx, &CreateAdminRequest{Email: "ops@mittirang.com", Password: "weak"})
	assert.Error(t, err)

	admin, err := s.CreateAdmin(ctx, &CreateAdminRequest{Email: "Ops@Mittirang.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	assert.Equal(t, "ops@mittirang.com", admin.Email)

	_, err = s.CreateAdmin(ctx, &CreateAdminRequest{Email: "ops@mittirang.com", Password: "Str0ng!pass"})
	assert.ErrorIs(t, err, ErrAdminExists)

	_, err = s.GetAdmin(ctx, 12345)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestAuthService_SeedDisabled(t *testing.T) {
	s := newAuthService(t)
	s.cfg.Admin.SeedDefault = false

	require.NoError(t, s.EnsureDefaultAdmin(context.Background()))

	var count int64
	s.db.Model(&models.AdminUser{}).Count(&count)
	assert.Zero(t, count)
}
