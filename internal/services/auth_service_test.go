package services

import (
	"context"
	"testing"
	"time"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/config"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceForTest(t *testing.T) (AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	t.Helper()
	if config.AppConfig == nil {
		cfg := &config.Config{}
		cfg.JWT.Secret = "test-secret"
		cfg.JWT.TTL = 60
		config.AppConfig = cfg
	}

	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo), userRepo, tokenRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRolePharmacist,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.UserRolePharmacist, resp.Role)
	assert.Len(t, tokenRepo.tokens, 1)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)

	_, err = svc.Login(ctx, &dto.LoginRequest{
		Email:    "asel@pharm.kz",
		Password: "wrong",
	})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)
}

func TestRegisterRejectsDuplicateEmailAndBadInput(t *testing.T) {
	svc, userRepo, _ := newAuthServiceForTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRolePharmacist,
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRoleStoreOwner,
	})
	assert.Equal(t, apperrors.ErrEmailAlreadyExists, err)
	assert.Len(t, userRepo.users, 1)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "dana@pharm.kz",
		Password: "short",
		Role:     models.UserRolePharmacist,
	})
	assert.Equal(t, apperrors.ErrWeakPassword, err)

	// Admin cannot be self-registered.
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email:    "dana@pharm.kz",
		Password: "secret123",
		Role:     models.UserRoleAdmin,
	})
	assert.Equal(t, apperrors.ErrInvalidUserRole, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRolePharmacist,
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The spent token is gone.
	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Len(t, tokenRepo.tokens, 1)
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRolePharmacist,
	})
	require.NoError(t, err)

	tokenRepo.tokens[resp.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.Equal(t, apperrors.ErrInvalidToken, err)
	assert.Empty(t, tokenRepo.tokens)
}

func TestLogoutRemovesToken(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRolePharmacist,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	assert.Empty(t, tokenRepo.tokens)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "asel@pharm.kz",
		Password: "secret123",
		Role:     models.UserRolePharmacist,
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, resp.UserID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)

	err = svc.ChangePassword(ctx, resp.UserID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)
	assert.Empty(t, tokenRepo.tokens)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "asel@pharm.kz", Password: "secret123"})
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "asel@pharm.kz", Password: "newsecret"})
	assert.NoError(t, err)
}
