package apperrors

import (
	"mediconnect_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the gin context. Infrastructure
// failures are logged with full detail but reported generically.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "server error", "error", err.Error())
	}
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleServiceError maps any error returned by the service layer to an
// HTTP response. Non-AppError values are treated as internal failures.
func HandleServiceError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		HandleError(c, appErr)
		return
	}
	HandleError(c, InternalError(err))
}
