package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/middleware"
	"github.com/campuslink/jobportal/internal/pkg/filestorage"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
)

// StudentController handles the candidate side: job discovery, applying,
// profile upkeep and assessment viewing
type StudentController struct {
	studentService *services.StudentService
	storage        filestorage.FileStorage
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, storage filestorage.FileStorage) *StudentController {
	return &StudentController{
		studentService: studentService,
		storage:        storage,
	}
}

// GetDashboard returns application counters, recent activity and assessments
// @Summary Student dashboard
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardData} "Dashboard"
// @Router /student/dashboard [get]
func (c *StudentController) GetDashboard(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	data, err := c.studentService.GetDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(data, "Dashboard retrieved"))
}

// --- Jobs ---

// ListJobs lists open jobs whose application window has not passed
// @Summary Browse jobs
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param categoryId query int false "Filter by category"
// @Param location query string false "Filter by location substring"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Jobs"
// @Router /student/jobs [get]
func (c *StudentController) ListJobs(ctx *gin.Context) {
	filter := dto.JobFilter{
		Location: ctx.Query("location"),
		Search:   ctx.Query("search"),
	}
	if raw := ctx.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "categoryId must be an integer").
				WithField("categoryId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.CategoryID = &id
	}

	page, size := helpers.ParsePaginationParams(ctx)
	jobs, pagination, err := c.studentService.ListJobs(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      jobs,
		Pagination: pagination,
	}, "Jobs retrieved"))
}

// GetJob returns an open job with its school attached
// @Summary Get job
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=models.Job} "Job"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /student/jobs/{id} [get]
func (c *StudentController) GetJob(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.studentService.GetJob(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(job, "Job retrieved"))
}

// Apply submits an application. The multipart form carries an optional
// coverLetter field and an optional resume file; without a file the
// profile resume is used.
// @Summary Apply to job
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param coverLetter formData string false "Cover letter"
// @Param resume formData file false "Resume for this application"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application created"
// @Failure 400 {object} dto.ErrorResponse "Job closed"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /student/jobs/{id}/apply [post]
func (c *StudentController) Apply(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var coverLetter *string
	if raw := ctx.PostForm("coverLetter"); raw != "" {
		coverLetter = &raw
	}

	var resumeURL *string
	if fileHeader, err := ctx.FormFile("resume"); err == nil {
		url, err := c.storage.SaveFileWithPath(fileHeader, filestorage.KindResume)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		resumeURL = &url
	}

	app, err := c.studentService.Apply(ctx, userID, id, coverLetter, resumeURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(app, "Application submitted"))
}

// ListApplications lists the student's applications with job and interview
// details
// @Summary List own applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Applications"
// @Router /student/applications [get]
func (c *StudentController) ListApplications(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	page, size := helpers.ParsePaginationParams(ctx)

	apps, pagination, err := c.studentService.ListApplications(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      apps,
		Pagination: pagination,
	}, "Applications retrieved"))
}

// ListAssessments returns the student's core skill marks
// @Summary List skill assessments
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SkillAssessment} "Assessments"
// @Router /student/skill-assessments [get]
func (c *StudentController) ListAssessments(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	assessments, err := c.studentService.ListAssessments(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assessments, "Assessments retrieved"))
}

// --- Profile ---

// GetProfile returns the full profile with educations, certifications and
// assessments
// @Summary Student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileData} "Profile"
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	profile, err := c.studentService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Profile retrieved"))
}

// UpdateProfile edits the profile. Education and certification arrays are
// reconciled by id against the stored rows.
// @Summary Update student profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileData} "Profile updated"
// @Router /student/profile [patch]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.studentService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, "Profile updated"))
}
