package handlers

import (
	"net/http"

	"mediconnect_backend/internal/middleware"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/services"
	"mediconnect_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	verificationService services.VerificationService
	jobService          services.JobService
}

func NewAdminHandler(base *BaseHandler, verificationService services.VerificationService, jobService services.JobService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:         base,
		verificationService: verificationService,
		jobService:          jobService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/verifications/pharmacists", h.ListPendingPharmacists)
		admin.GET("/verifications/stores", h.ListPendingStores)
		admin.PUT("/verifications/pharmacists/:userId", h.ReviewPharmacist)
		admin.PUT("/verifications/stores/:userId", h.ReviewStore)
		admin.PUT("/stores/:userId/training-eligible", h.SetTrainingEligible)
		admin.PUT("/jobs/:jobId/disabled", h.SetJobDisabled)
	}
}

func (h *AdminHandler) ListPendingPharmacists(c *gin.Context) {
	profiles, err := h.verificationService.ListPendingPharmacists(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"total":    len(profiles),
	})
}

func (h *AdminHandler) ListPendingStores(c *gin.Context) {
	profiles, err := h.verificationService.ListPendingStores(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"total":    len(profiles),
	})
}

func (h *AdminHandler) ReviewPharmacist(c *gin.Context) {
	var req dto.ReviewVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.verificationService.ReviewPharmacist(c.Request.Context(), c.Param("userId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification updated"})
}

func (h *AdminHandler) ReviewStore(c *gin.Context) {
	var req dto.ReviewVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.verificationService.ReviewStore(c.Request.Context(), c.Param("userId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification updated"})
}

type setTrainingEligibleRequest struct {
	Eligible bool `json:"eligible"`
}

func (h *AdminHandler) SetTrainingEligible(c *gin.Context) {
	var req setTrainingEligibleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.verificationService.SetStoreTrainingEligible(c.Request.Context(), c.Param("userId"), req.Eligible); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training eligibility updated"})
}

func (h *AdminHandler) SetJobDisabled(c *gin.Context) {
	var req dto.SetJobDisabledRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.jobService.SetJobDisabled(c.Request.Context(), c.Param("jobId"), req.Disabled); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job visibility updated"})
}
