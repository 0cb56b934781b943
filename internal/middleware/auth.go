package middleware

import (
	"strings"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/auth"
	"mediconnect_backend/internal/logger"
	"mediconnect_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxKeyUserID = "userID"
	ctxKeyRole   = "role"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity on the gin context and the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyRole, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
// Must run after AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ctxKeyRole)
		if !exists {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
				c.Abort()
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or "" when the
// request is anonymous.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ctxKeyUserID)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

// GetRole returns the authenticated user's role, or "" when unknown.
func GetRole(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get(ctxKeyRole)
	if !exists {
		return ""
	}

	role, ok := roleVal.(models.UserRole)
	if !ok {
		return ""
	}
	return role
}
