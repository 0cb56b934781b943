package services

import (
	"context"
	"fmt"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/services/dto"
)

// VerificationService is the admin-only capability for the verification
// triad. Nothing else in the system writes those fields.
type VerificationService interface {
	ReviewPharmacist(ctx context.Context, pharmacistUserID string, req *dto.ReviewVerificationRequest) error
	ReviewStore(ctx context.Context, storeUserID string, req *dto.ReviewVerificationRequest) error
	SetStoreTrainingEligible(ctx context.Context, storeUserID string, eligible bool) error
	ListPendingPharmacists(ctx context.Context) ([]dto.PharmacistProfileResponse, error)
	ListPendingStores(ctx context.Context) ([]dto.StoreProfileResponse, error)
}

type VerificationServiceImpl struct {
	profileRepo   repositories.ProfileRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewVerificationService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) VerificationService {
	return &VerificationServiceImpl{
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

func (s *VerificationServiceImpl) ReviewPharmacist(ctx context.Context, pharmacistUserID string, req *dto.ReviewVerificationRequest) error {
	err := s.profileRepo.SetPharmacistVerification(ctx, pharmacistUserID, req.Decision, req.Remark)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.InternalError(err)
	}

	s.notifyDecision(ctx, pharmacistUserID, req.Decision, req.Remark)
	return nil
}

func (s *VerificationServiceImpl) ReviewStore(ctx context.Context, storeUserID string, req *dto.ReviewVerificationRequest) error {
	err := s.profileRepo.SetStoreVerification(ctx, storeUserID, req.Decision, req.Remark)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.InternalError(err)
	}

	s.notifyDecision(ctx, storeUserID, req.Decision, req.Remark)
	return nil
}

func (s *VerificationServiceImpl) SetStoreTrainingEligible(ctx context.Context, storeUserID string, eligible bool) error {
	err := s.profileRepo.SetStoreTrainingEligible(ctx, storeUserID, eligible)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *VerificationServiceImpl) ListPendingPharmacists(ctx context.Context) ([]dto.PharmacistProfileResponse, error) {
	profiles, err := s.profileRepo.ListPendingPharmacists(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.PharmacistProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *buildPharmacistResponse(&profiles[i]))
	}
	return responses, nil
}

func (s *VerificationServiceImpl) ListPendingStores(ctx context.Context) ([]dto.StoreProfileResponse, error) {
	profiles, err := s.profileRepo.ListPendingStores(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.StoreProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *buildStoreResponse(&profiles[i]))
	}
	return responses, nil
}

// notifyDecision emails the reviewed user. Delivery failures are logged
// only; the review itself has already committed.
func (s *VerificationServiceImpl) notifyDecision(ctx context.Context, userID string, decision models.VerificationStatus, remark string) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.CtxWarn(ctx, "verification decision made but user lookup failed", "user_id", userID)
		return
	}

	body := fmt.Sprintf("Your license verification has been %s.", decision)
	if remark != "" {
		body = fmt.Sprintf("%s Remark: %s", body, remark)
	}

	err = s.emailProvider.Send(&email.Email{
		To:      []string{user.Email},
		Subject: "MediConnect verification update",
		Body:    body,
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to send verification email", err, "user_id", userID)
	}
}
