package handlers

import (
	"net/http"

	"mediconnect_backend/internal/middleware"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/services"
	"mediconnect_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	pharmacist := r.Group("/profiles/pharmacist")
	pharmacist.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePharmacist))
	{
		pharmacist.PUT("", h.SavePharmacistProfile)
		pharmacist.GET("", h.GetMyPharmacistProfile)
	}

	store := r.Group("/profiles/store")
	store.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStoreOwner))
	{
		store.PUT("", h.SaveStoreProfile)
		store.GET("", h.GetMyStoreProfile)
	}
}

func (h *ProfileHandler) SavePharmacistProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SavePharmacistProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.SavePharmacistProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetMyPharmacistProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetPharmacistProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) SaveStoreProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveStoreProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.SaveStoreProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetMyStoreProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetStoreProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
