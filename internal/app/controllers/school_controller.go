package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/middleware"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
)

// SchoolController handles the recruiting side: job postings, applicant
// review and the application workflow
type SchoolController struct {
	schoolService *services.SchoolService
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService) *SchoolController {
	return &SchoolController{schoolService: schoolService}
}

// GetDashboard returns job and application counters
// @Summary School dashboard
// @Tags school
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SchoolDashboardData} "Dashboard"
// @Router /school/dashboard [get]
func (c *SchoolController) GetDashboard(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	data, err := c.schoolService.GetDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data, "Dashboard retrieved"))
}

// GetProfile returns the school profile with its categories
// @Summary School profile
// @Tags school
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.School} "Profile"
// @Router /school/profile [get]
func (c *SchoolController) GetProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	school, err := c.schoolService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(school, "Profile retrieved"))
}

// --- Jobs ---

// ListJobs lists the school's own postings, newest first
// @Summary List own jobs
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Jobs"
// @Router /school/jobs [get]
func (c *SchoolController) ListJobs(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	page, size := helpers.ParsePaginationParams(ctx)

	jobs, pagination, err := c.schoolService.ListJobs(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      jobs,
		Pagination: pagination,
	}, "Jobs retrieved"))
}

// CreateJob posts a job
// @Summary Create job
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job fields"
// @Success 201 {object} dto.APIResponse{data=models.Job} "Job created"
// @Failure 400 {object} dto.ErrorResponse "Invalid end date or salary range"
// @Router /school/jobs [post]
func (c *SchoolController) CreateJob(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	job, err := c.schoolService.CreateJob(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(job, "Job created"))
}

// GetJob returns one of the school's own postings
// @Summary Get own job
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job} "Job"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /school/jobs/{id} [get]
func (c *SchoolController) GetJob(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.schoolService.GetJob(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(job, "Job retrieved"))
}

// UpdateJob edits a posting
// @Summary Update job
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Job} "Job updated"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /school/jobs/{id} [patch]
func (c *SchoolController) UpdateJob(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	job, err := c.schoolService.UpdateJob(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(job, "Job updated"))
}

// UpdateJobStatus opens or closes a posting
// @Summary Update job status
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.JobStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /school/jobs/{id}/status [patch]
func (c *SchoolController) UpdateJobStatus(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.JobStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.schoolService.UpdateJobStatus(ctx, userID, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Job status updated"))
}

// DeleteJob removes a posting and its applications
// @Summary Delete job
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse "Job deleted"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /school/jobs/{id} [delete]
func (c *SchoolController) DeleteJob(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.schoolService.DeleteJob(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Job deleted"))
}

// --- Applicants and applications ---

// ListApplicants lists applications for one of the school's jobs
// @Summary List applicants
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Applicants"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /school/jobs/{id}/applicants [get]
func (c *SchoolController) ListApplicants(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	applicants, pagination, err := c.schoolService.ListApplicants(ctx, userID, id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      applicants,
		Pagination: pagination,
	}, "Applicants retrieved"))
}

// GetApplicantProfile returns the full candidate view for an application
// @Summary Applicant profile
// @Tags school
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicantProfileData} "Applicant profile"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /school/applicants/{id} [get]
func (c *SchoolController) GetApplicantProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.schoolService.GetApplicantProfile(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Applicant profile retrieved"))
}

// UpdateApplicationStatus moves an application through its workflow.
// Interviews are scheduled through the dedicated endpoint, not here.
// @Summary Update application status
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Transition not allowed"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /school/applications/{id}/status [patch]
func (c *SchoolController) UpdateApplicationStatus(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	app, err := c.schoolService.UpdateApplicationStatus(ctx, userID, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(app, "Application status updated"))
}

// ScheduleInterview creates or reschedules the interview for an application
// @Summary Schedule interview
// @Tags school
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ScheduleInterviewRequest true "Interview details"
// @Success 200 {object} dto.APIResponse{data=models.Interview} "Interview scheduled"
// @Failure 400 {object} dto.ErrorResponse "Application not shortlisted or invalid slot"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /school/applications/{id}/schedule [post]
func (c *SchoolController) ScheduleInterview(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScheduleInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	interview, err := c.schoolService.ScheduleInterview(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interview, "Interview scheduled"))
}
