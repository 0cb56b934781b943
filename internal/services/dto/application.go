package dto

import "time"

// ApplicantSummary is the projection a store owner sees when reviewing
// applications. Phone is present only when a confirmed training
// appointment exists for the pair; the privacy rule lives in the
// projection, not in the stored rows.
type ApplicantSummary struct {
	ApplicationID   string    `json:"application_id"`
	PharmacistID    string    `json:"pharmacist_id"`
	Name            string    `json:"name"`
	ExperienceYears int       `json:"experience_years"`
	Software        []string  `json:"software,omitempty"`
	LicenseNumber   string    `json:"license_number"`
	IsVerified      bool      `json:"is_verified"`
	Phone           string    `json:"phone,omitempty"`
	AppliedAt       time.Time `json:"applied_at"`
}

// MyApplication is the pharmacist's own view of an application.
type MyApplication struct {
	ApplicationID string       `json:"application_id"`
	Job           *JobResponse `json:"job"`
	AppliedAt     time.Time    `json:"applied_at"`
}
