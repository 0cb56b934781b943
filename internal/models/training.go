package models

import "time"

type TrainingSlot struct {
	BaseModel
	StoreOwnerID string `gorm:"not null;index"`
	Month        string `gorm:"not null"` // "2026-09"
	SlotNumber   int    `gorm:"not null"`
	Status       TrainingSlotStatus `gorm:"type:varchar(20);default:'open'"`
}

// TrainingRequest carries two independent status fields because
// confirmation requires agreement from both parties. StoreStatus is the
// store side of the handshake, PharmacistResponse the pharmacist side;
// neither alone is authoritative.
type TrainingRequest struct {
	BaseModel
	PharmacistID       string  `gorm:"not null;index"`
	StoreOwnerID       string  `gorm:"not null;index"`
	SlotID             *string `gorm:"index"`
	AppointmentAt      *time.Time
	StoreStatus        TrainingRequestStatus `gorm:"type:varchar(20);default:'pending'"`
	PharmacistResponse PharmacistResponse    `gorm:"type:varchar(20);default:'pending'"`

	// Relations
	Slot       *TrainingSlot      `gorm:"foreignKey:SlotID"`
	Pharmacist *PharmacistProfile `gorm:"foreignKey:PharmacistID;references:UserID"`
	Store      *StoreProfile      `gorm:"foreignKey:StoreOwnerID;references:UserID"`
}

// IsConfirmed is the single derived predicate for a completed handshake:
// both sub-states must indicate agreement.
func (r *TrainingRequest) IsConfirmed() bool {
	return (r.StoreStatus == TrainingStatusScheduled || r.StoreStatus == TrainingStatusConfirmed) &&
		r.PharmacistResponse == PharmacistResponseConfirmed
}
