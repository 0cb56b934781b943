package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound  ErrorCode = "PROFILE_NOT_FOUND"
	CodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	CodeRequestNotFound  ErrorCode = "REQUEST_NOT_FOUND"
	CodeSlotNotFound     ErrorCode = "SLOT_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists      ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	CodeNotEligible             ErrorCode = "NOT_ELIGIBLE"
	CodeCapacityExceeded        ErrorCode = "CAPACITY_EXCEEDED"
	CodeAlreadyApplied          ErrorCode = "ALREADY_APPLIED"
	CodeInvalidJobStatus        ErrorCode = "INVALID_JOB_STATUS"
	CodeJobNotActive            ErrorCode = "JOB_NOT_ACTIVE"
	CodeInvalidTransition       ErrorCode = "INVALID_TRANSITION"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
