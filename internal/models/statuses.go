package models

type UserRole string
type VerificationStatus string
type JobStatus string
type TrainingRequestStatus string
type PharmacistResponse string
type TrainingSlotStatus string

const (
	UserRolePharmacist UserRole = "pharmacist"
	UserRoleStoreOwner UserRole = "store_owner"
	UserRoleAdmin      UserRole = "admin"

	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"

	JobStatusActive JobStatus = "active"
	JobStatusHeld   JobStatus = "held"
	JobStatusClosed JobStatus = "closed"

	TrainingStatusPending   TrainingRequestStatus = "pending"
	TrainingStatusScheduled TrainingRequestStatus = "scheduled"
	TrainingStatusConfirmed TrainingRequestStatus = "confirmed"

	PharmacistResponsePending   PharmacistResponse = "pending"
	PharmacistResponseConfirmed PharmacistResponse = "confirmed"
	PharmacistResponsePostpone  PharmacistResponse = "postpone_requested"

	TrainingSlotOpen     TrainingSlotStatus = "open"
	TrainingSlotAssigned TrainingSlotStatus = "assigned"
)

// ValidRole reports whether a role can be chosen at registration.
// Admin accounts are seeded, never self-registered.
func ValidRole(role UserRole) bool {
	return role == UserRolePharmacist || role == UserRoleStoreOwner
}
