package services

import (
	"context"
	"time"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
	"mediconnect_backend/internal/services/dto"
)

type ApplicationService interface {
	Apply(ctx context.Context, jobID, pharmacistID string) error
	ListApplicants(ctx context.Context, jobID, ownerID string) ([]dto.ApplicantSummary, error)
	ListMyApplications(ctx context.Context, pharmacistID string) ([]dto.MyApplication, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	profileRepo     repositories.ProfileRepository
	trainingRepo    repositories.TrainingRepository
	userRepo        repositories.UserRepository
	emailProvider   email.Provider
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	trainingRepo repositories.TrainingRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		profileRepo:     profileRepo,
		trainingRepo:    trainingRepo,
		userRepo:        userRepo,
		emailProvider:   emailProvider,
	}
}

// Apply creates the immutable application row. Preconditions: the
// pharmacist is verified and the job is visible (active, not disabled,
// not expired). A failed precondition writes nothing.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, jobID, pharmacistID string) error {
	profile, err := s.profileRepo.FindPharmacistByUserID(ctx, pharmacistID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotEligible
		}
		return apperrors.InternalError(err)
	}
	if !profile.IsVerified {
		return apperrors.ErrNotEligible
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	if !job.CountsAsActive(time.Now()) {
		return apperrors.ErrJobNotActive
	}

	application := &models.JobApplication{
		JobID:        jobID,
		PharmacistID: pharmacistID,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationExists) {
			return apperrors.ErrAlreadyApplied
		}
		return apperrors.InternalError(err)
	}

	s.notifyOwner(ctx, job, profile)
	logger.CtxInfo(ctx, "application created", "job_id", jobID, "pharmacist_id", pharmacistID)
	return nil
}

// ListApplicants returns the review projection for a job the requester
// owns. Contact detail is withheld unless a confirmed training
// appointment exists between the pharmacist and this store owner.
func (s *ApplicationServiceImpl) ListApplicants(ctx context.Context, jobID, ownerID string) ([]dto.ApplicantSummary, error) {
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

	applications, err := s.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.ApplicantSummary, 0, len(applications))
	for i := range applications {
		app := &applications[i]
		summary := dto.ApplicantSummary{
			ApplicationID: app.ID,
			PharmacistID:  app.PharmacistID,
			AppliedAt:     app.CreatedAt,
		}
		if app.Pharmacist != nil {
			summary.Name = app.Pharmacist.Name
			summary.ExperienceYears = app.Pharmacist.ExperienceYears
			summary.Software = app.Pharmacist.GetSoftware()
			summary.LicenseNumber = app.Pharmacist.LicenseNumber
			summary.IsVerified = app.Pharmacist.IsVerified

			confirmed, err := s.trainingRepo.HasConfirmedRequest(ctx, app.PharmacistID, ownerID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if confirmed {
				summary.Phone = app.Pharmacist.Phone
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ApplicationServiceImpl) ListMyApplications(ctx context.Context, pharmacistID string) ([]dto.MyApplication, error) {
	applications, err := s.applicationRepo.ListByPharmacist(ctx, pharmacistID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	result := make([]dto.MyApplication, 0, len(applications))
	for i := range applications {
		app := &applications[i]
		entry := dto.MyApplication{
			ApplicationID: app.ID,
			AppliedAt:     app.CreatedAt,
		}
		if app.Job != nil {
			entry.Job = dto.BuildJobResponse(app.Job, now)
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *ApplicationServiceImpl) notifyOwner(ctx context.Context, job *models.Job, applicant *models.PharmacistProfile) {
	owner, err := s.userRepo.FindByID(ctx, job.OwnerID)
	if err != nil {
		logger.CtxWarn(ctx, "application created but owner lookup failed", "owner_id", job.OwnerID)
		return
	}

	err = s.emailProvider.Send(&email.Email{
		To:      []string{owner.Email},
		Subject: "New application for " + job.Title,
		Body:    applicant.Name + " has applied to your posting \"" + job.Title + "\".",
	})
	if err != nil {
		logger.CtxWithError(ctx, "failed to send application email", err, "job_id", job.ID)
	}
}
