package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class across the API.
type ErrorCode string

// AppError is the application error carried from the service layer to
// the HTTP boundary.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Predefined errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users and profiles
	ErrUserNotFound            = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists      = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword            = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole         = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)
	ErrInsufficientPermissions = New(CodeInsufficientPermissions, "Insufficient permissions", http.StatusForbidden)
	ErrProfileNotFound         = New(CodeProfileNotFound, "Profile not found", http.StatusNotFound)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Jobs
	ErrJobNotFound       = New(CodeJobNotFound, "Job not found", http.StatusNotFound)
	ErrCapacityExceeded  = New(CodeCapacityExceeded, "Active job limit reached", http.StatusConflict)
	ErrJobNotActive      = New(CodeJobNotActive, "Job is not open for applications", http.StatusBadRequest)
	ErrInvalidTransition = New(CodeInvalidTransition, "Job status transition is not allowed", http.StatusBadRequest)

	// Applications
	ErrNotEligible    = New(CodeNotEligible, "Verification required for this action", http.StatusForbidden)
	ErrAlreadyApplied = New(CodeAlreadyApplied, "Application already exists for this job", http.StatusConflict)

	// Training
	ErrRequestNotFound = New(CodeRequestNotFound, "Training request not found", http.StatusNotFound)
	ErrSlotNotFound    = New(CodeSlotNotFound, "Training slot not found", http.StatusNotFound)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

// InternalError hides infrastructure failure detail from the caller;
// the wrapped error stays available for logging.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}
