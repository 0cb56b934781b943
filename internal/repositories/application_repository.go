package repositories

import (
	"context"
	"errors"

	"mediconnect_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationExists   = errors.New("application already exists for this pair")
	ErrApplicationNotFound = errors.New("application not found")
)

type ApplicationRepository interface {
	// Create inserts an application row. The unique (job_id,
	// pharmacist_id) index is the backstop against concurrent duplicates.
	Create(ctx context.Context, application *models.JobApplication) error
	ExistsForPair(ctx context.Context, jobID, pharmacistID string) (bool, error)
	ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error)
	ListByPharmacist(ctx context.Context, pharmacistID string) ([]models.JobApplication, error)
	CountByJob(ctx context.Context, jobID string) (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, application *models.JobApplication) error {
	err := r.db.WithContext(ctx).Create(application).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrApplicationExists
	}
	return err
}

func (r *ApplicationRepositoryImpl) ExistsForPair(ctx context.Context, jobID, pharmacistID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("job_id = ? AND pharmacist_id = ?", jobID, pharmacistID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) ListByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Pharmacist").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ListByPharmacist(ctx context.Context, pharmacistID string) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("pharmacist_id = ?", pharmacistID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) CountByJob(ctx context.Context, jobID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	return count, err
}
