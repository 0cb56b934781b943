package services

import (
	"context"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/services/dto"
)

type TrainingService interface {
	CreateSlots(ctx context.Context, ownerID string, req *dto.CreateSlotsRequest) ([]dto.TrainingSlotResponse, error)
	ListSlots(ctx context.Context, ownerID, month string) ([]dto.TrainingSlotResponse, error)

	RequestTraining(ctx context.Context, pharmacistID, storeOwnerID string) (*dto.TrainingRequestResponse, error)
	ScheduleAppointment(ctx context.Context, requestID, ownerID string, req *dto.ScheduleAppointmentRequest) (*dto.TrainingRequestResponse, error)
	RespondToAppointment(ctx context.Context, requestID, pharmacistID string, response models.PharmacistResponse) (*dto.TrainingRequestResponse, error)
	ListStoreRequests(ctx context.Context, ownerID string) ([]dto.TrainingRequestResponse, error)
	ListMyRequests(ctx context.Context, pharmacistID string) ([]dto.TrainingRequestResponse, error)
}

type TrainingServiceImpl struct {
	trainingRepo  repositories.TrainingRepository
	profileRepo   repositories.ProfileRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewTrainingService(
	trainingRepo repositories.TrainingRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) TrainingService {
	return &TrainingServiceImpl{
		trainingRepo:  trainingRepo,
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

func (s *TrainingServiceImpl) CreateSlots(ctx context.Context, ownerID string, req *dto.CreateSlotsRequest) ([]dto.TrainingSlotResponse, error) {
	store, err := s.profileRepo.FindStoreByUserID(ctx, ownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotEligible
		}
		return nil, apperrors.InternalError(err)
	}
	if !store.IsVerified || !store.IsTrainingEligible {
		return nil, apperrors.ErrNotEligible
	}

	existing, err := s.trainingRepo.ListSlotsByOwner(ctx, ownerID, req.Month)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Continue numbering after the last slot already defined for the month.
	next := 0
	for i := range existing {
		if existing[i].SlotNumber > next {
			next = existing[i].SlotNumber
		}
	}

	slots := make([]models.TrainingSlot, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		slots = append(slots, models.TrainingSlot{
			StoreOwnerID: ownerID,
			Month:        req.Month,
			SlotNumber:   next + i,
			Status:       models.TrainingSlotOpen,
		})
	}

	if err := s.trainingRepo.CreateSlots(ctx, slots); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "training slots created", "owner_id", ownerID, "month", req.Month, "count", req.Count)
	return buildSlotResponses(slots), nil
}

func (s *TrainingServiceImpl) ListSlots(ctx context.Context, ownerID, month string) ([]dto.TrainingSlotResponse, error) {
	slots, err := s.trainingRepo.ListSlotsByOwner(ctx, ownerID, month)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildSlotResponses(slots), nil
}

// RequestTraining opens the handshake. Store eligibility is checked once
// here; a store later losing eligibility does not cancel in-flight
// requests.
func (s *TrainingServiceImpl) RequestTraining(ctx context.Context, pharmacistID, storeOwnerID string) (*dto.TrainingRequestResponse, error) {
	pharmacist, err := s.profileRepo.FindPharmacistByUserID(ctx, pharmacistID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotEligible
		}
		return nil, apperrors.InternalError(err)
	}
	if !pharmacist.IsVerified {
		return nil, apperrors.ErrNotEligible
	}

	store, err := s.profileRepo.FindStoreByUserID(ctx, storeOwnerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !store.IsVerified || !store.IsTrainingEligible {
		return nil, apperrors.ErrNotEligible
	}

	open, err := s.trainingRepo.HasOpenRequest(ctx, pharmacistID, storeOwnerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if open {
		return nil, apperrors.NewBadRequestError("An open training request already exists for this store")
	}

	request := &models.TrainingRequest{
		PharmacistID:       pharmacistID,
		StoreOwnerID:       storeOwnerID,
		StoreStatus:        models.TrainingStatusPending,
		PharmacistResponse: models.PharmacistResponsePending,
	}
	if err := s.trainingRepo.CreateRequest(ctx, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "training requested", "pharmacist_id", pharmacistID, "store_owner_id", storeOwnerID)
	return dto.BuildTrainingRequestResponse(request), nil
}

// ScheduleAppointment sets (or re-issues after a postpone) the
// appointment time. The pharmacist response is reset to pending: a new
// time always needs fresh agreement.
func (s *TrainingServiceImpl) ScheduleAppointment(ctx context.Context, requestID, ownerID string, req *dto.ScheduleAppointmentRequest) (*dto.TrainingRequestResponse, error) {
	request, err := s.trainingRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTrainingRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if request.StoreOwnerID != ownerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.SlotID != nil {
		slot, err := s.trainingRepo.FindSlotByID(ctx, *req.SlotID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrTrainingSlotNotFound) {
				return nil, apperrors.ErrSlotNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		if slot.StoreOwnerID != ownerID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	if err := s.trainingRepo.ScheduleRequest(ctx, requestID, req.SlotID, req.AppointmentAt); err != nil {
		if apperrors.Is(err, repositories.ErrTrainingSlotNotFound) {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	request.SlotID = req.SlotID
	request.AppointmentAt = &req.AppointmentAt
	request.StoreStatus = models.TrainingStatusScheduled
	request.PharmacistResponse = models.PharmacistResponsePending

	s.notifyPharmacist(ctx, request)
	return dto.BuildTrainingRequestResponse(request), nil
}

// RespondToAppointment records the pharmacist side of the handshake.
// Confirmed completes it; postpone keeps the store side at scheduled
// until the store re-issues a new time.
func (s *TrainingServiceImpl) RespondToAppointment(ctx context.Context, requestID, pharmacistID string, response models.PharmacistResponse) (*dto.TrainingRequestResponse, error) {
	request, err := s.trainingRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTrainingRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if request.PharmacistID != pharmacistID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if request.StoreStatus != models.TrainingStatusScheduled {
		return nil, apperrors.NewBadRequestError("No appointment is awaiting a response")
	}

	storeStatus := request.StoreStatus
	if response == models.PharmacistResponseConfirmed {
		storeStatus = models.TrainingStatusConfirmed
	}

	if err := s.trainingRepo.SetHandshake(ctx, requestID, storeStatus, response); err != nil {
		return nil, apperrors.InternalError(err)
	}

	request.StoreStatus = storeStatus
	request.PharmacistResponse = response
	logger.CtxInfo(ctx, "appointment response recorded",
		"request_id", requestID, "response", response)
	return dto.BuildTrainingRequestResponse(request), nil
}

func (s *TrainingServiceImpl) ListStoreRequests(ctx context.Context, ownerID string) ([]dto.TrainingRequestResponse, error) {
	requests, err := s.trainingRepo.ListRequestsByStore(ctx, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestResponses(requests), nil
}

func (s *TrainingServiceImpl) ListMyRequests(ctx context.Context, pharmacistID string) ([]dto.TrainingRequestResponse, error) {
	requests, err := s.trainingRepo.ListRequestsByPharmacist(ctx, pharmacistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRequestResponses(requests), nil
}

func (s *TrainingServiceImpl) notifyPharmacist(ctx context.Context, request *models.TrainingRequest) {
	user, err := s.userRepo.FindByID(ctx, request.PharmacistID)
	if err != nil {
		logger.CtxWarn(ctx, "appointment scheduled but pharmacist lookup failed", "pharmacist_id", request.PharmacistID)
		return
	}

	err = s.emailProvider.Send(&email.Email{
		To:      []string{user.Email},
		Subject: "Training appointment proposed",
		Body:    "A training appointment has been proposed. Please confirm or request a new time.",
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to send appointment email", err, "request_id", request.ID)
	}
}

func buildSlotResponses(slots []models.TrainingSlot) []dto.TrainingSlotResponse {
	responses := make([]dto.TrainingSlotResponse, 0, len(slots))
	for i := range slots {
		responses = append(responses, dto.TrainingSlotResponse{
			ID:         slots[i].ID,
			Month:      slots[i].Month,
			SlotNumber: slots[i].SlotNumber,
			Status:     slots[i].Status,
		})
	}
	return responses
}

func buildRequestResponses(requests []models.TrainingRequest) []dto.TrainingRequestResponse {
	responses := make([]dto.TrainingRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *dto.BuildTrainingRequestResponse(&requests[i]))
	}
	return responses
}
