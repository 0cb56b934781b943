package handlers

import (
	"net/http"

	"mediconnect_backend/internal/middleware"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/services"
	"mediconnect_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TrainingHandler struct {
	*BaseHandler
	trainingService services.TrainingService
}

func NewTrainingHandler(base *BaseHandler, trainingService services.TrainingService) *TrainingHandler {
	return &TrainingHandler{
		BaseHandler:     base,
		trainingService: trainingService,
	}
}

func (h *TrainingHandler) RegisterRoutes(r *gin.RouterGroup) {
	store := r.Group("/training")
	store.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStoreOwner))
	{
		store.POST("/slots", h.CreateSlots)
		store.GET("/slots", h.ListMySlots)
		store.GET("/requests", h.ListStoreRequests)
		store.PUT("/requests/:requestId/schedule", h.ScheduleAppointment)
	}

	pharmacist := r.Group("/training")
	pharmacist.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePharmacist))
	{
		pharmacist.POST("/requests", h.RequestTraining)
		pharmacist.GET("/requests/my", h.ListMyRequests)
		pharmacist.PUT("/requests/:requestId/response", h.RespondToAppointment)
	}
}

func (h *TrainingHandler) CreateSlots(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSlotsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	slots, err := h.trainingService.CreateSlots(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"slots": slots,
		"total": len(slots),
	})
}

func (h *TrainingHandler) ListMySlots(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	slots, err := h.trainingService.ListSlots(c.Request.Context(), ownerID, c.Query("month"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"slots": slots,
		"total": len(slots),
	})
}

func (h *TrainingHandler) RequestTraining(c *gin.Context) {
	pharmacistID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestTrainingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.trainingService.RequestTraining(c.Request.Context(), pharmacistID, req.StoreOwnerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *TrainingHandler) ScheduleAppointment(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleAppointmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.trainingService.ScheduleAppointment(c.Request.Context(), c.Param("requestId"), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *TrainingHandler) RespondToAppointment(c *gin.Context) {
	pharmacistID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondToAppointmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.trainingService.RespondToAppointment(c.Request.Context(), c.Param("requestId"), pharmacistID, req.Response)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *TrainingHandler) ListStoreRequests(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.trainingService.ListStoreRequests(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

func (h *TrainingHandler) ListMyRequests(c *gin.Context) {
	pharmacistID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	requests, err := h.trainingService.ListMyRequests(c.Request.Context(), pharmacistID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}
