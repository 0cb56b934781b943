package models

import "time"

// JobLifetime is how long a posting stays open after creation.
// Expiry is derived from ExpiresAt at read time, never stored back.
const JobLifetime = 30 * 24 * time.Hour

// MaxActiveJobs is the per-owner cap on simultaneously active postings.
const MaxActiveJobs = 2

type Job struct {
	BaseModel
	OwnerID            string    `gorm:"not null;index"`
	Title              string    `gorm:"not null"`
	Shift              string    `gorm:"not null"`
	Openings           int       `gorm:"not null"`
	RequiredExperience string    // tier, e.g. "0-2", "2-5", "5+"
	Software           string
	Description        string
	Location           string
	Status             JobStatus `gorm:"type:varchar(20);default:'active'"`
	ExpiresAt          time.Time `gorm:"not null"`
	DisabledByAdmin    bool      `gorm:"default:false"`
	ClosedAt           *time.Time

	// Relations
	Applications []JobApplication `gorm:"foreignKey:JobID"`
}

// IsExpired reports whether the posting is past its expiry at the given
// instant.
func (j *Job) IsExpired(now time.Time) bool {
	return now.After(j.ExpiresAt)
}

// CountsAsActive reports whether the job counts against the owner's
// active-job cap and is visible to applicants.
func (j *Job) CountsAsActive(now time.Time) bool {
	return j.Status == JobStatusActive && !j.DisabledByAdmin && !j.IsExpired(now)
}

type JobApplication struct {
	BaseModel
	JobID        string `gorm:"not null;index;uniqueIndex:idx_job_pharmacist"`
	PharmacistID string `gorm:"not null;index;uniqueIndex:idx_job_pharmacist"`

	// Relations
	Job        *Job               `gorm:"foreignKey:JobID"`
	Pharmacist *PharmacistProfile `gorm:"foreignKey:PharmacistID;references:UserID"`
}
