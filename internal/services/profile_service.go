package services

import (
	"context"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/services/dto"
)

type ProfileService interface {
	SavePharmacistProfile(ctx context.Context, userID string, req *dto.SavePharmacistProfileRequest) (*dto.PharmacistProfileResponse, error)
	GetPharmacistProfile(ctx context.Context, userID string) (*dto.PharmacistProfileResponse, error)
	SaveStoreProfile(ctx context.Context, userID string, req *dto.SaveStoreProfileRequest) (*dto.StoreProfileResponse, error)
	GetStoreProfile(ctx context.Context, userID string) (*dto.StoreProfileResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// SavePharmacistProfile creates the profile on first save and updates
// personal fields afterwards. Verification fields are never touched
// here; a license edit does not reset an admin decision.
func (s *ProfileServiceImpl) SavePharmacistProfile(ctx context.Context, userID string, req *dto.SavePharmacistProfileRequest) (*dto.PharmacistProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role != models.UserRolePharmacist {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile, err := s.profileRepo.FindPharmacistByUserID(ctx, userID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}

		profile = &models.PharmacistProfile{
			UserID:             userID,
			Name:               req.Name,
			Phone:              req.Phone,
			ExperienceYears:    req.ExperienceYears,
			LicenseNumber:      req.LicenseNumber,
			VerificationStatus: models.VerificationPending,
		}
		profile.SetSoftware(req.Software)

		if err := s.profileRepo.CreatePharmacistProfile(ctx, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return buildPharmacistResponse(profile), nil
	}

	profile.Name = req.Name
	profile.Phone = req.Phone
	profile.ExperienceYears = req.ExperienceYears
	profile.LicenseNumber = req.LicenseNumber
	profile.SetSoftware(req.Software)

	if err := s.profileRepo.UpdatePharmacistProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildPharmacistResponse(profile), nil
}

func (s *ProfileServiceImpl) GetPharmacistProfile(ctx context.Context, userID string) (*dto.PharmacistProfileResponse, error) {
	profile, err := s.profileRepo.FindPharmacistByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildPharmacistResponse(profile), nil
}

func (s *ProfileServiceImpl) SaveStoreProfile(ctx context.Context, userID string, req *dto.SaveStoreProfileRequest) (*dto.StoreProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if user.Role != models.UserRoleStoreOwner {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile, err := s.profileRepo.FindStoreByUserID(ctx, userID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}

		profile = &models.StoreProfile{
			UserID:             userID,
			StoreName:          req.StoreName,
			Phone:              req.Phone,
			Address:            req.Address,
			City:               req.City,
			Timings:            req.Timings,
			VerificationStatus: models.VerificationPending,
		}
		if err := s.profileRepo.CreateStoreProfile(ctx, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return buildStoreResponse(profile), nil
	}

	profile.StoreName = req.StoreName
	profile.Phone = req.Phone
	profile.Address = req.Address
	profile.City = req.City
	profile.Timings = req.Timings

	if err := s.profileRepo.UpdateStoreProfile(ctx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildStoreResponse(profile), nil
}

func (s *ProfileServiceImpl) GetStoreProfile(ctx context.Context, userID string) (*dto.StoreProfileResponse, error) {
	profile, err := s.profileRepo.FindStoreByUserID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildStoreResponse(profile), nil
}

func buildPharmacistResponse(p *models.PharmacistProfile) *dto.PharmacistProfileResponse {
	return &dto.PharmacistProfileResponse{
		UserID:             p.UserID,
		Name:               p.Name,
		Phone:              p.Phone,
		ExperienceYears:    p.ExperienceYears,
		Software:           p.GetSoftware(),
		LicenseNumber:      p.LicenseNumber,
		IsVerified:         p.IsVerified,
		VerificationStatus: p.VerificationStatus,
		VerificationRemark: p.VerificationRemark,
		CreatedAt:          p.CreatedAt,
	}
}

func buildStoreResponse(p *models.StoreProfile) *dto.StoreProfileResponse {
	return &dto.StoreProfileResponse{
		UserID:             p.UserID,
		StoreName:          p.StoreName,
		Phone:              p.Phone,
		Address:            p.Address,
		City:               p.City,
		Timings:            p.Timings,
		IsTrainingEligible: p.IsTrainingEligible,
		IsVerified:         p.IsVerified,
		VerificationStatus: p.VerificationStatus,
		VerificationRemark: p.VerificationRemark,
		CreatedAt:          p.CreatedAt,
	}
}
