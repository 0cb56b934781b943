package services

import (
	"context"
	"time"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/auth"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/services/dto"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// Register creates an account with the role chosen exactly once; the
// role is immutable afterwards.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if !models.ValidRole(req.Role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.Find(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(ctx, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the old token is spent the moment a new pair is issued.
	if err := s.refreshTokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokenRepo.Delete(ctx, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	// Old sessions cannot survive a password change.
	_ = s.refreshTokenRepo.DeleteForUser(ctx, userID)
	return nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := uuid.NewString()
	rt := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(auth.RefreshTokenExpiry),
	}
	if err := s.refreshTokenRepo.Create(ctx, rt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}
