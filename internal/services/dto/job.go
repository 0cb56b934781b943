package dto

import (
	"time"

	"mediconnect_backend/internal/models"
)

type CreateJobRequest struct {
	Title              string `json:"title" validate:"required"`
	Shift              string `json:"shift" validate:"required"`
	Openings           int    `json:"openings" validate:"required,min=1"`
	RequiredExperience string `json:"required_experience"`
	Software           string `json:"software"`
	Description        string `json:"description"`
	Location           string `json:"location"`
}

type UpdateJobStatusRequest struct {
	Status models.JobStatus `json:"status" validate:"required,oneof=active held closed"`
}

type SetJobDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

type JobResponse struct {
	ID                 string           `json:"id"`
	OwnerID            string           `json:"owner_id"`
	Title              string           `json:"title"`
	Shift              string           `json:"shift"`
	Openings           int              `json:"openings"`
	RequiredExperience string           `json:"required_experience,omitempty"`
	Software           string           `json:"software,omitempty"`
	Description        string           `json:"description,omitempty"`
	Location           string           `json:"location,omitempty"`
	Status             models.JobStatus `json:"status"`
	ExpiresAt          time.Time        `json:"expires_at"`
	Expired            bool             `json:"expired"`
	DisabledByAdmin    bool             `json:"disabled_by_admin"`
	ClosedAt           *time.Time       `json:"closed_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// BuildJobResponse projects a job with its derived expiry recomputed at
// read time.
func BuildJobResponse(job *models.Job, now time.Time) *JobResponse {
	return &JobResponse{
		ID:                 job.ID,
		OwnerID:            job.OwnerID,
		Title:              job.Title,
		Shift:              job.Shift,
		Openings:           job.Openings,
		RequiredExperience: job.RequiredExperience,
		Software:           job.Software,
		Description:        job.Description,
		Location:           job.Location,
		Status:             job.Status,
		ExpiresAt:          job.ExpiresAt,
		Expired:            job.IsExpired(now),
		DisabledByAdmin:    job.DisabledByAdmin,
		ClosedAt:           job.ClosedAt,
		CreatedAt:          job.CreatedAt,
	}
}
