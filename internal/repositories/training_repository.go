package repositories

import (
	"context"
	"errors"
	"time"

	"mediconnect_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTrainingRequestNotFound = errors.New("training request not found")
	ErrTrainingSlotNotFound    = errors.New("training slot not found")
	ErrOpenRequestExists       = errors.New("open training request already exists for this pair")
)

type TrainingRepository interface {
	// Slot operations
	CreateSlots(ctx context.Context, slots []models.TrainingSlot) error
	FindSlotByID(ctx context.Context, id string) (*models.TrainingSlot, error)
	ListSlotsByOwner(ctx context.Context, ownerID, month string) ([]models.TrainingSlot, error)
	SetSlotStatus(ctx context.Context, slotID string, status models.TrainingSlotStatus) error

	// Request operations
	CreateRequest(ctx context.Context, request *models.TrainingRequest) error
	FindRequestByID(ctx context.Context, id string) (*models.TrainingRequest, error)
	ScheduleRequest(ctx context.Context, requestID string, slotID *string, appointmentAt time.Time) error
	SetHandshake(ctx context.Context, requestID string, storeStatus models.TrainingRequestStatus, response models.PharmacistResponse) error
	ListRequestsByStore(ctx context.Context, storeOwnerID string) ([]models.TrainingRequest, error)
	ListRequestsByPharmacist(ctx context.Context, pharmacistID string) ([]models.TrainingRequest, error)
	HasOpenRequest(ctx context.Context, pharmacistID, storeOwnerID string) (bool, error)
	HasConfirmedRequest(ctx context.Context, pharmacistID, storeOwnerID string) (bool, error)
}

type TrainingRepositoryImpl struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) TrainingRepository {
	return &TrainingRepositoryImpl{db: db}
}

func (r *TrainingRepositoryImpl) CreateSlots(ctx context.Context, slots []models.TrainingSlot) error {
	if len(slots) == 0 {
		return nil
	}
	// One insert for the whole batch; either every slot lands or none.
	return r.db.WithContext(ctx).Create(&slots).Error
}

func (r *TrainingRepositoryImpl) FindSlotByID(ctx context.Context, id string) (*models.TrainingSlot, error) {
	var slot models.TrainingSlot
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *TrainingRepositoryImpl) ListSlotsByOwner(ctx context.Context, ownerID, month string) ([]models.TrainingSlot, error) {
	var slots []models.TrainingSlot
	q := r.db.WithContext(ctx).Where("store_owner_id = ?", ownerID)
	if month != "" {
		q = q.Where("month = ?", month)
	}
	err := q.Order("month ASC, slot_number ASC").Find(&slots).Error
	return slots, err
}

func (r *TrainingRepositoryImpl) SetSlotStatus(ctx context.Context, slotID string, status models.TrainingSlotStatus) error {
	result := r.db.WithContext(ctx).Model(&models.TrainingSlot{}).
		Where("id = ?", slotID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainingSlotNotFound
	}
	return nil
}

func (r *TrainingRepositoryImpl) CreateRequest(ctx context.Context, request *models.TrainingRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *TrainingRepositoryImpl) FindRequestByID(ctx context.Context, id string) (*models.TrainingRequest, error) {
	var request models.TrainingRequest
	err := r.db.WithContext(ctx).Preload("Slot").First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ScheduleRequest assigns the appointment and optionally a slot. Slot
// assignment and request update happen in one transaction so a failed
// write leaves no half-scheduled state.
func (r *TrainingRepositoryImpl) ScheduleRequest(ctx context.Context, requestID string, slotID *string, appointmentAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		patch := map[string]interface{}{
			"appointment_at":      appointmentAt,
			"store_status":        models.TrainingStatusScheduled,
			"pharmacist_response": models.PharmacistResponsePending,
		}
		if slotID != nil {
			patch["slot_id"] = *slotID

			result := tx.Model(&models.TrainingSlot{}).
				Where("id = ? AND status = ?", *slotID, models.TrainingSlotOpen).
				Update("status", models.TrainingSlotAssigned)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrTrainingSlotNotFound
			}
		}

		result := tx.Model(&models.TrainingRequest{}).
			Where("id = ?", requestID).
			Updates(patch)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTrainingRequestNotFound
		}
		return nil
	})
}

func (r *TrainingRepositoryImpl) SetHandshake(ctx context.Context, requestID string, storeStatus models.TrainingRequestStatus, response models.PharmacistResponse) error {
	result := r.db.WithContext(ctx).Model(&models.TrainingRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"store_status":        storeStatus,
			"pharmacist_response": response,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTrainingRequestNotFound
	}
	return nil
}

func (r *TrainingRepositoryImpl) ListRequestsByStore(ctx context.Context, storeOwnerID string) ([]models.TrainingRequest, error) {
	var requests []models.TrainingRequest
	err := r.db.WithContext(ctx).
		Preload("Pharmacist").Preload("Slot").
		Where("store_owner_id = ?", storeOwnerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *TrainingRepositoryImpl) ListRequestsByPharmacist(ctx context.Context, pharmacistID string) ([]models.TrainingRequest, error) {
	var requests []models.TrainingRequest
	err := r.db.WithContext(ctx).
		Preload("Store").Preload("Slot").
		Where("pharmacist_id = ?", pharmacistID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// HasOpenRequest reports whether an unconfirmed request already exists
// for the pair.
func (r *TrainingRepositoryImpl) HasOpenRequest(ctx context.Context, pharmacistID, storeOwnerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TrainingRequest{}).
		Where("pharmacist_id = ? AND store_owner_id = ?", pharmacistID, storeOwnerID).
		Where("pharmacist_response <> ?", models.PharmacistResponseConfirmed).
		Count(&count).Error
	return count > 0, err
}

// HasConfirmedRequest backs the applicant-contact privacy rule: contact
// detail is exposed only after a handshake completed for the pair.
func (r *TrainingRepositoryImpl) HasConfirmedRequest(ctx context.Context, pharmacistID, storeOwnerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TrainingRequest{}).
		Where("pharmacist_id = ? AND store_owner_id = ?", pharmacistID, storeOwnerID).
		Where("store_status IN ?", []models.TrainingRequestStatus{models.TrainingStatusScheduled, models.TrainingStatusConfirmed}).
		Where("pharmacist_response = ?", models.PharmacistResponseConfirmed).
		Count(&count).Error
	return count > 0, err
}
