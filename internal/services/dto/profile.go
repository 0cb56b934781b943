package dto

import (
	"time"

	"mediconnect_backend/internal/models"
)

type SavePharmacistProfileRequest struct {
	Name            string   `json:"name" validate:"required"`
	Phone           string   `json:"phone"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0"`
	Software        []string `json:"software"`
	LicenseNumber   string   `json:"license_number" validate:"required"`
}

type SaveStoreProfileRequest struct {
	StoreName string `json:"store_name" validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Timings   string `json:"timings"`
}

type PharmacistProfileResponse struct {
	UserID             string                    `json:"user_id"`
	Name               string                    `json:"name"`
	Phone              string                    `json:"phone,omitempty"`
	ExperienceYears    int                       `json:"experience_years"`
	Software           []string                  `json:"software"`
	LicenseNumber      string                    `json:"license_number"`
	IsVerified         bool                      `json:"is_verified"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	VerificationRemark string                    `json:"verification_remark,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

type StoreProfileResponse struct {
	UserID             string                    `json:"user_id"`
	StoreName          string                    `json:"store_name"`
	Phone              string                    `json:"phone,omitempty"`
	Address            string                    `json:"address,omitempty"`
	City               string                    `json:"city,omitempty"`
	Timings            string                    `json:"timings,omitempty"`
	IsTrainingEligible bool                      `json:"is_training_eligible"`
	IsVerified         bool                      `json:"is_verified"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	VerificationRemark string                    `json:"verification_remark,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

type ReviewVerificationRequest struct {
	Decision models.VerificationStatus `json:"decision" validate:"required,oneof=approved rejected"`
	Remark   string                    `json:"remark"`
}
