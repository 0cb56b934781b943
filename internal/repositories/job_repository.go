package repositories

import (
	"context"
	"errors"
	"time"

	"mediconnect_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrJobLimitReached = errors.New("active job limit reached")
)

type JobRepository interface {
	// CreateActiveJob inserts a job after re-counting the owner's active
	// postings inside one serialized transaction. Returns
	// ErrJobLimitReached without writing anything when the cap is hit.
	CreateActiveJob(ctx context.Context, job *models.Job) error
	// Reactivate flips held -> active under the same serialized cap
	// check as creation.
	Reactivate(ctx context.Context, jobID, ownerID string) error

	FindByID(ctx context.Context, id string) (*models.Job, error)
	SetStatus(ctx context.Context, jobID string, status models.JobStatus, closedAt *time.Time) error
	SetDisabledByAdmin(ctx context.Context, jobID string, disabled bool) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Job, error)
	ListVisible(ctx context.Context) ([]models.Job, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

// lockOwner serializes cap-checked writes for one owner. A per-owner
// advisory lock is used because row locks cannot stop two concurrent
// inserts from both passing the count.
func lockOwner(tx *gorm.DB, ownerID string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", ownerID).Error
}

func countActive(tx *gorm.DB, ownerID string, excludeJobID string, now time.Time) (int64, error) {
	var count int64
	q := tx.Model(&models.Job{}).
		Where("owner_id = ?", ownerID).
		Where("status = ?", models.JobStatusActive).
		Where("disabled_by_admin = false").
		Where("expires_at > ?", now)
	if excludeJobID != "" {
		q = q.Where("id <> ?", excludeJobID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CreateActiveJob(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, job.OwnerID); err != nil {
			return err
		}

		count, err := countActive(tx, job.OwnerID, "", time.Now())
		if err != nil {
			return err
		}
		if count >= models.MaxActiveJobs {
			return ErrJobLimitReached
		}

		return tx.Create(job).Error
	})
}

func (r *JobRepositoryImpl) Reactivate(ctx context.Context, jobID, ownerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		count, err := countActive(tx, ownerID, jobID, time.Now())
		if err != nil {
			return err
		}
		if count >= models.MaxActiveJobs {
			return ErrJobLimitReached
		}

		result := tx.Model(&models.Job{}).
			Where("id = ? AND owner_id = ?", jobID, ownerID).
			Update("status", models.JobStatusActive)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) SetStatus(ctx context.Context, jobID string, status models.JobStatus, closedAt *time.Time) error {
	patch := map[string]interface{}{"status": status}
	if closedAt != nil {
		patch["closed_at"] = closedAt
	}

	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", jobID).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) SetDisabledByAdmin(ctx context.Context, jobID string, disabled bool) error {
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", jobID).
		Update("disabled_by_admin", disabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Delete hard-removes the posting and its applications. No soft delete.
func (r *JobRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.JobApplication{}, "job_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Job{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// ListVisible returns the public board: active, not admin-disabled, not
// past expiry at query time.
func (r *JobRepositoryImpl) ListVisible(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", models.JobStatusActive).
		Where("disabled_by_admin = false").
		Where("expires_at > ?", time.Now()).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountActiveByOwner(ctx context.Context, ownerID string) (int64, error) {
	return countActive(r.db.WithContext(ctx), ownerID, "", time.Now())
}
