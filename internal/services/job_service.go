package services

import (
	"context"
	"encoding/json"
	"time"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/cache"
	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/services/dto"
)

const (
	jobBoardCacheKey = "jobs:board"
	jobBoardCacheTTL = 2 * time.Minute
)

type JobService interface {
	CreateJob(ctx context.Context, ownerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	SetJobStatus(ctx context.Context, jobID, ownerID string, status models.JobStatus) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, jobID, ownerID string) error
	GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error)
	ListMyJobs(ctx context.Context, ownerID string) ([]dto.JobResponse, error)
	ListOpenJobs(ctx context.Context) ([]dto.JobResponse, error)

	// Admin capability, orthogonal to the owner-driven status machine.
	SetJobDisabled(ctx context.Context, jobID string, disabled bool) error
}

type JobServiceImpl struct {
	jobRepo     repositories.JobRepository
	profileRepo repositories.ProfileRepository
	cache       *cache.Client
}

func NewJobService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	cacheClient *cache.Client,
) JobService {
	return &JobServiceImpl{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		cache:       cacheClient,
	}
}

// CreateJob inserts a new active posting. The owner must hold a verified
// store profile, and the repository enforces the active-job cap inside a
// serialized transaction, so two concurrent creates cannot both pass the
// count.
func (s *JobServiceImpl) CreateJob(ctx context.Context, ownerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	store, err := s.profileRepo.FindStoreByUserID(ctx, ownerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotEligible
		}
		return nil, apperrors.InternalError(err)
	}
	if !store.IsVerified {
		return nil, apperrors.ErrNotEligible
	}

	now := time.Now()
	job := &models.Job{
		OwnerID:            ownerID,
		Title:              req.Title,
		Shift:              req.Shift,
		Openings:           req.Openings,
		RequiredExperience: req.RequiredExperience,
		Software:           req.Software,
		Description:        req.Description,
		Location:           req.Location,
		Status:             models.JobStatusActive,
		ExpiresAt:          now.Add(models.JobLifetime),
	}

	if err := s.jobRepo.CreateActiveJob(ctx, job); err != nil {
		if apperrors.Is(err, repositories.ErrJobLimitReached) {
			return nil, apperrors.ErrCapacityExceeded
		}
		return nil, apperrors.InternalError(err)
	}

	s.invalidateBoard(ctx)
	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "owner_id", ownerID)
	return dto.BuildJobResponse(job, now), nil
}

// SetJobStatus drives the owner-side transitions:
// active -> held, held -> active, active|held -> closed.
func (s *JobServiceImpl) SetJobStatus(ctx context.Context, jobID, ownerID string, status models.JobStatus) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(ctx, jobID, ownerID)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.JobStatusHeld:
		if job.Status != models.JobStatusActive {
			return nil, apperrors.ErrInvalidTransition
		}
		if err := s.jobRepo.SetStatus(ctx, jobID, models.JobStatusHeld, nil); err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Status = models.JobStatusHeld

	case models.JobStatusActive:
		if job.Status != models.JobStatusHeld {
			return nil, apperrors.ErrInvalidTransition
		}
		// Reactivation re-checks the cap: holding a job frees a slot, so
		// coming back must not push the owner past the limit.
		if err := s.jobRepo.Reactivate(ctx, jobID, ownerID); err != nil {
			if apperrors.Is(err, repositories.ErrJobLimitReached) {
				return nil, apperrors.ErrCapacityExceeded
			}
			return nil, apperrors.InternalError(err)
		}
		job.Status = models.JobStatusActive

	case models.JobStatusClosed:
		if job.Status == models.JobStatusClosed {
			return nil, apperrors.ErrInvalidTransition
		}
		closedAt := time.Now()
		if err := s.jobRepo.SetStatus(ctx, jobID, models.JobStatusClosed, &closedAt); err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.Status = models.JobStatusClosed
		job.ClosedAt = &closedAt

	default:
		return nil, apperrors.ErrInvalidTransition
	}

	s.invalidateBoard(ctx)
	return dto.BuildJobResponse(job, time.Now()), nil
}

// DeleteJob hard-removes the posting from any state. Irreversible.
func (s *JobServiceImpl) DeleteJob(ctx context.Context, jobID, ownerID string) error {
	if _, err := s.findOwnedJob(ctx, jobID, ownerID); err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, jobID); err != nil {
		return apperrors.InternalError(err)
	}

	s.invalidateBoard(ctx)
	logger.CtxInfo(ctx, "job deleted", "job_id", jobID, "owner_id", ownerID)
	return nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.BuildJobResponse(job, time.Now()), nil
}

func (s *JobServiceImpl) ListMyJobs(ctx context.Context, ownerID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.BuildJobResponse(&jobs[i], now))
	}
	return responses, nil
}

// ListOpenJobs serves the public board from cache when possible. Expiry
// is part of the query, so a short TTL bounds how long a just-expired
// posting can linger.
func (s *JobServiceImpl) ListOpenJobs(ctx context.Context) ([]dto.JobResponse, error) {
	if data, _ := s.cache.Get(ctx, jobBoardCacheKey); data != nil {
		var cached []dto.JobResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	jobs, err := s.jobRepo.ListVisible(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, *dto.BuildJobResponse(&jobs[i], now))
	}

	if data, err := json.Marshal(responses); err == nil {
		_ = s.cache.Set(ctx, jobBoardCacheKey, data, jobBoardCacheTTL)
	}
	return responses, nil
}

func (s *JobServiceImpl) SetJobDisabled(ctx context.Context, jobID string, disabled bool) error {
	if err := s.jobRepo.SetDisabledByAdmin(ctx, jobID, disabled); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}

	s.invalidateBoard(ctx)
	logger.CtxInfo(ctx, "job admin flag changed", "job_id", jobID, "disabled", disabled)
	return nil
}

func (s *JobServiceImpl) findOwnedJob(ctx context.Context, jobID, ownerID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.OwnerID != ownerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return job, nil
}

func (s *JobServiceImpl) invalidateBoard(ctx context.Context) {
	_ = s.cache.Delete(ctx, jobBoardCacheKey)
}
