package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// PharmacistProfile holds the pharmacist's personal fields plus the
// verification triad that only an admin may mutate.
type PharmacistProfile struct {
	BaseModel
	UserID             string `gorm:"uniqueIndex;not null"`
	Name               string `gorm:"not null"`
	Phone              string
	ExperienceYears    int
	Software           datatypes.JSON `gorm:"type:jsonb"` // ["WinPharm", "Marg"]
	LicenseNumber      string         `gorm:"not null"`
	IsVerified         bool           `gorm:"default:false"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending'"`
	VerificationRemark string
}

// GetSoftware returns the software list as a slice of strings.
func (p *PharmacistProfile) GetSoftware() []string {
	var software []string
	if len(p.Software) > 0 {
		_ = json.Unmarshal(p.Software, &software)
	}
	return software
}

// SetSoftware stores the software list.
func (p *PharmacistProfile) SetSoftware(software []string) {
	data, _ := json.Marshal(software)
	p.Software = datatypes.JSON(data)
}

type StoreProfile struct {
	BaseModel
	UserID             string `gorm:"uniqueIndex;not null"`
	StoreName          string `gorm:"not null"`
	Phone              string
	Address            string
	City               string
	Timings            string
	IsTrainingEligible bool `gorm:"default:false"`
	IsVerified         bool `gorm:"default:false"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'pending'"`
	VerificationRemark string
}
