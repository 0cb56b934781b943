package handlers

import (
	"net/http"

	"mediconnect_backend/internal/middleware"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/services"
	"mediconnect_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		BaseHandler:        base,
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public board
	public := r.Group("/jobs")
	{
		public.GET("", h.ListOpenJobs)
		public.GET("/:jobId", h.GetJob)
	}

	// Store owner routes
	owner := r.Group("/jobs")
	owner.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleStoreOwner))
	{
		owner.POST("", h.CreateJob)
		owner.GET("/my", h.ListMyJobs)
		owner.PUT("/:jobId/status", h.UpdateJobStatus)
		owner.DELETE("/:jobId", h.DeleteJob)
		owner.GET("/:jobId/applicants", h.ListApplicants)
	}

	// Pharmacist routes
	pharmacist := r.Group("/jobs")
	pharmacist.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePharmacist))
	{
		pharmacist.POST("/:jobId/applications", h.Apply)
	}

	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRolePharmacist))
	{
		applications.GET("/my", h.ListMyApplications)
	}
}

func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	jobs, err := h.jobService.ListOpenJobs(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMyJobs(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.SetJobStatus(c.Request.Context(), c.Param("jobId"), ownerID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), c.Param("jobId"), ownerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

func (h *JobHandler) ListApplicants(c *gin.Context) {
	ownerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applicants, err := h.applicationService.ListApplicants(c.Request.Context(), c.Param("jobId"), ownerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applicants": applicants,
		"total":      len(applicants),
	})
}

func (h *JobHandler) Apply(c *gin.Context) {
	pharmacistID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.applicationService.Apply(c.Request.Context(), c.Param("jobId"), pharmacistID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted"})
}

func (h *JobHandler) ListMyApplications(c *gin.Context) {
	pharmacistID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListMyApplications(c.Request.Context(), pharmacistID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}
