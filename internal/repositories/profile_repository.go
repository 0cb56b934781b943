package repositories

import (
	"context"
	"errors"

	"mediconnect_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	// PharmacistProfile operations
	CreatePharmacistProfile(ctx context.Context, profile *models.PharmacistProfile) error
	FindPharmacistByUserID(ctx context.Context, userID string) (*models.PharmacistProfile, error)
	UpdatePharmacistProfile(ctx context.Context, profile *models.PharmacistProfile) error
	SetPharmacistVerification(ctx context.Context, userID string, status models.VerificationStatus, remark string) error
	ListPendingPharmacists(ctx context.Context) ([]models.PharmacistProfile, error)

	// StoreProfile operations
	CreateStoreProfile(ctx context.Context, profile *models.StoreProfile) error
	FindStoreByUserID(ctx context.Context, userID string) (*models.StoreProfile, error)
	UpdateStoreProfile(ctx context.Context, profile *models.StoreProfile) error
	SetStoreVerification(ctx context.Context, userID string, status models.VerificationStatus, remark string) error
	SetStoreTrainingEligible(ctx context.Context, userID string, eligible bool) error
	ListPendingStores(ctx context.Context) ([]models.StoreProfile, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) CreatePharmacistProfile(ctx context.Context, profile *models.PharmacistProfile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrProfileAlreadyExists
	}
	return err
}

func (r *ProfileRepositoryImpl) FindPharmacistByUserID(ctx context.Context, userID string) (*models.PharmacistProfile, error) {
	var profile models.PharmacistProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdatePharmacistProfile(ctx context.Context, profile *models.PharmacistProfile) error {
	// Personal fields only. The verification triad is written exclusively
	// through SetPharmacistVerification.
	result := r.db.WithContext(ctx).Model(profile).Updates(map[string]interface{}{
		"name":             profile.Name,
		"phone":            profile.Phone,
		"experience_years": profile.ExperienceYears,
		"software":         profile.Software,
		"license_number":   profile.LicenseNumber,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SetPharmacistVerification writes the verification triad in one update
// so is_verified always equals (status == approved).
func (r *ProfileRepositoryImpl) SetPharmacistVerification(ctx context.Context, userID string, status models.VerificationStatus, remark string) error {
	result := r.db.WithContext(ctx).Model(&models.PharmacistProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_verified":         status == models.VerificationApproved,
			"verification_status": status,
			"verification_remark": remark,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) ListPendingPharmacists(ctx context.Context) ([]models.PharmacistProfile, error) {
	var profiles []models.PharmacistProfile
	err := r.db.WithContext(ctx).
		Where("verification_status = ?", models.VerificationPending).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) CreateStoreProfile(ctx context.Context, profile *models.StoreProfile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrProfileAlreadyExists
	}
	return err
}

func (r *ProfileRepositoryImpl) FindStoreByUserID(ctx context.Context, userID string) (*models.StoreProfile, error) {
	var profile models.StoreProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateStoreProfile(ctx context.Context, profile *models.StoreProfile) error {
	result := r.db.WithContext(ctx).Model(profile).Updates(map[string]interface{}{
		"store_name": profile.StoreName,
		"phone":      profile.Phone,
		"address":    profile.Address,
		"city":       profile.City,
		"timings":    profile.Timings,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// SetStoreVerification mirrors SetPharmacistVerification for stores.
func (r *ProfileRepositoryImpl) SetStoreVerification(ctx context.Context, userID string, status models.VerificationStatus, remark string) error {
	result := r.db.WithContext(ctx).Model(&models.StoreProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_verified":         status == models.VerificationApproved,
			"verification_status": status,
			"verification_remark": remark,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) SetStoreTrainingEligible(ctx context.Context, userID string, eligible bool) error {
	result := r.db.WithContext(ctx).Model(&models.StoreProfile{}).
		Where("user_id = ?", userID).
		Update("is_training_eligible", eligible)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) ListPendingStores(ctx context.Context) ([]models.StoreProfile, error) {
	var profiles []models.StoreProfile
	err := r.db.WithContext(ctx).
		Where("verification_status = ?", models.VerificationPending).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}
