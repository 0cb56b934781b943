package dto

import (
	"time"

	"mediconnect_backend/internal/models"
)

type CreateSlotsRequest struct {
	Month string `json:"month" validate:"required,yyyymm"`
	Count int    `json:"count" validate:"required,min=1,max=50"`
}

type RequestTrainingRequest struct {
	StoreOwnerID string `json:"store_owner_id" validate:"required"`
}

type ScheduleAppointmentRequest struct {
	SlotID        *string   `json:"slot_id"`
	AppointmentAt time.Time `json:"appointment_at" validate:"required"`
}

type RespondToAppointmentRequest struct {
	Response models.PharmacistResponse `json:"response" validate:"required,oneof=confirmed postpone_requested"`
}

type TrainingSlotResponse struct {
	ID         string                    `json:"id"`
	Month      string                    `json:"month"`
	SlotNumber int                       `json:"slot_number"`
	Status     models.TrainingSlotStatus `json:"status"`
}

type TrainingRequestResponse struct {
	ID                 string                       `json:"id"`
	PharmacistID       string                       `json:"pharmacist_id"`
	StoreOwnerID       string                       `json:"store_owner_id"`
	SlotID             *string                      `json:"slot_id,omitempty"`
	AppointmentAt      *time.Time                   `json:"appointment_at,omitempty"`
	StoreStatus        models.TrainingRequestStatus `json:"store_status"`
	PharmacistResponse models.PharmacistResponse    `json:"pharmacist_response"`
	Confirmed          bool                         `json:"confirmed"`
	PharmacistName     string                       `json:"pharmacist_name,omitempty"`
	StoreName          string                       `json:"store_name,omitempty"`
	CreatedAt          time.Time                    `json:"created_at"`
}

// BuildTrainingRequestResponse projects a request with the derived
// both-sides confirmation predicate.
func BuildTrainingRequestResponse(r *models.TrainingRequest) *TrainingRequestResponse {
	resp := &TrainingRequestResponse{
		ID:                 r.ID,
		PharmacistID:       r.PharmacistID,
		StoreOwnerID:       r.StoreOwnerID,
		SlotID:             r.SlotID,
		AppointmentAt:      r.AppointmentAt,
		StoreStatus:        r.StoreStatus,
		PharmacistResponse: r.PharmacistResponse,
		Confirmed:          r.IsConfirmed(),
		CreatedAt:          r.CreatedAt,
	}
	if r.Pharmacist != nil {
		resp.PharmacistName = r.Pharmacist.Name
	}
	if r.Store != nil {
		resp.StoreName = r.Store.StoreName
	}
	return resp
}
