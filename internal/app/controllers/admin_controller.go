package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/middleware"
	"github.com/campuslink/jobportal/internal/pkg/filestorage"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// AdminController handles account administration, skill and category
// definitions, settings and the bulk spreadsheet uploads
type AdminController struct {
	adminService *services.AdminService
	storage      filestorage.FileStorage
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, storage filestorage.FileStorage) *AdminController {
	return &AdminController{
		adminService: adminService,
		storage:      storage,
	}
}

// --- Users ---

// ListUsers lists accounts
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(ADMIN, SCHOOL, STUDENT)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var role *models.RoleType
	if raw := ctx.Query("role"); raw != "" {
		r := models.RoleType(raw)
		role = &r
	}

	page, size := helpers.ParsePaginationParams(ctx)
	users, pagination, err := c.adminService.ListUsers(ctx, role, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      users,
		Pagination: pagination,
	}, "Users retrieved"))
}

// GetUser returns one account
// @Summary Get user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.adminService.GetUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user, "User retrieved"))
}

// CreateUser creates an account
// @Summary Create user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "Account fields"
// @Success 201 {object} dto.APIResponse{data=models.User} "User created"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.adminService.CreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user, "User created"))
}

// UpdateUser edits an account
// @Summary Update user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.User} "User updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [patch]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.adminService.UpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user, "User updated"))
}

// DeleteUser removes an account
// @Summary Delete user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "User deleted"))
}

// BulkCreateUsers imports accounts from a spreadsheet
// @Summary Bulk create users
// @Description Imports accounts from an xlsx workbook with name and email columns
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx workbook"
// @Param role query string false "Role for created accounts" Enums(SCHOOL, STUDENT) default(STUDENT)
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Workbook unreadable"
// @Router /admin/users/bulk-create [post]
func (c *AdminController) BulkCreateUsers(ctx *gin.Context) {
	role := models.RoleStudent
	if raw := ctx.Query("role"); raw != "" {
		role = models.RoleType(raw)
		if role != models.RoleStudent && role != models.RoleSchool {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "role must be SCHOOL or STUDENT").
				WithField("role")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	file, ok := c.openSheet(ctx)
	if !ok {
		return
	}
	defer file.cleanup()

	result, err := c.adminService.BulkCreateUsers(ctx, file.f, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Bulk import finished"))
}

// --- Core skills ---

// ListCoreSkills lists competency definitions
// @Summary List core skills
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CoreSkill} "Core skills"
// @Router /admin/skills [get]
func (c *AdminController) ListCoreSkills(ctx *gin.Context) {
	skills, err := c.adminService.ListCoreSkills(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(skills, "Core skills retrieved"))
}

// CreateCoreSkill defines a competency
// @Summary Create core skill
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCoreSkillRequest true "Skill definition"
// @Success 201 {object} dto.APIResponse{data=models.CoreSkill} "Core skill created"
// @Failure 400 {object} dto.ErrorResponse "Too many sub skills"
// @Failure 409 {object} dto.ErrorResponse "Core skill already exists"
// @Router /admin/skills [post]
func (c *AdminController) CreateCoreSkill(ctx *gin.Context) {
	var req dto.CreateCoreSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	skill, err := c.adminService.CreateCoreSkill(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(skill, "Core skill created"))
}

// UpdateCoreSkill edits a competency
// @Summary Update core skill
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Core skill ID"
// @Param request body dto.UpdateCoreSkillRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.CoreSkill} "Core skill updated"
// @Failure 404 {object} dto.ErrorResponse "Core skill not found"
// @Router /admin/skills/{id} [patch]
func (c *AdminController) UpdateCoreSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCoreSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	skill, err := c.adminService.UpdateCoreSkill(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(skill, "Core skill updated"))
}

// DeleteCoreSkill removes a competency
// @Summary Delete core skill
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Core skill ID"
// @Success 200 {object} dto.APIResponse "Core skill deleted"
// @Failure 404 {object} dto.ErrorResponse "Core skill not found"
// @Router /admin/skills/{id} [delete]
func (c *AdminController) DeleteCoreSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteCoreSkill(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Core skill deleted"))
}

// BulkUploadMarks grades students against a core skill from a spreadsheet
// @Summary Bulk upload marks
// @Description Imports marks from an xlsx workbook with an email column plus one column per sub skill
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Core skill ID"
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult} "Upload summary"
// @Failure 400 {object} dto.ErrorResponse "Workbook unreadable"
// @Failure 404 {object} dto.ErrorResponse "Core skill not found"
// @Router /admin/skills/{id}/bulk-marks-upload [post]
func (c *AdminController) BulkUploadMarks(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, ok := c.openSheet(ctx)
	if !ok {
		return
	}
	defer file.cleanup()

	result, err := c.adminService.BulkUploadMarks(ctx, id, file.f)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, "Marks upload finished"))
}

// tempSheet is an uploaded workbook staged on disk. cleanup always removes
// the temp file, even when the import fails.
type tempSheet struct {
	f    *os.File
	path string
}

func (t tempSheet) cleanup() {
	t.f.Close()
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", t.path).Msg("Failed to remove temp upload")
	}
}

// openSheet stages the multipart "file" part into the temp area and opens
// it for reading. Renders the error response itself on failure.
func (c *AdminController) openSheet(ctx *gin.Context) (tempSheet, bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "file part is required").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return tempSheet{}, false
	}

	path, err := c.storage.SaveTempFile(fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return tempSheet{}, false
	}

	f, err := os.Open(path)
	if err != nil {
		os.Remove(path)
		middleware.HandleAPIError(ctx, err)
		return tempSheet{}, false
	}
	return tempSheet{f: f, path: path}, true
}

// --- Categories ---

// ListCategories lists job categories
// @Summary List categories
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories"
// @Router /admin/categories [get]
func (c *AdminController) ListCategories(ctx *gin.Context) {
	categories, err := c.adminService.ListCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(categories, "Categories retrieved"))
}

// CreateCategory creates a job category
// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category fields"
// @Success 201 {object} dto.APIResponse{data=models.Category} "Category created"
// @Failure 409 {object} dto.ErrorResponse "Category already exists"
// @Router /admin/categories [post]
func (c *AdminController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	category, err := c.adminService.CreateCategory(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(category, "Category created"))
}

// UpdateCategory edits a job category
// @Summary Update category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Category} "Category updated"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /admin/categories/{id} [patch]
func (c *AdminController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	category, err := c.adminService.UpdateCategory(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(category, "Category updated"))
}

// DeleteCategory removes a job category, keeping its jobs with a null
// category
// @Summary Delete category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse "Category deleted"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /admin/categories/{id} [delete]
func (c *AdminController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteCategory(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Category deleted"))
}

// --- Settings ---

// GetSubSkillLimit returns the mark ceiling
// @Summary Get sub skill mark limit
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Current limit"
// @Router /admin/settings/subskill-limit [get]
func (c *AdminController) GetSubSkillLimit(ctx *gin.Context) {
	limit, err := c.adminService.GetSubSkillLimit(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"limit": limit}, "Sub skill mark limit"))
}

// SetSubSkillLimit updates the mark ceiling
// @Summary Set sub skill mark limit
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubSkillLimitRequest true "New limit"
// @Success 200 {object} dto.APIResponse "Limit updated"
// @Router /admin/settings/subskill-limit [put]
func (c *AdminController) SetSubSkillLimit(ctx *gin.Context) {
	var req dto.SubSkillLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.adminService.SetSubSkillLimit(ctx, req.Limit); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"limit": req.Limit}, "Sub skill mark limit updated"))
}

// GetEmailTemplate returns a stored email template
// @Summary Get email template
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param key path string true "Template key" Enums(welcome, status-change, interview)
// @Success 200 {object} dto.APIResponse "Template"
// @Failure 404 {object} dto.ErrorResponse "No stored template for key"
// @Router /admin/email-templates/{key} [get]
func (c *AdminController) GetEmailTemplate(ctx *gin.Context) {
	key := ctx.Param("key")
	subject, body, err := c.adminService.GetEmailTemplate(ctx, key)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"key":     key,
		"subject": subject,
		"body":    body,
	}, "Email template"))
}

// SetEmailTemplate stores an email template override
// @Summary Set email template
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Template key" Enums(welcome, status-change, interview)
// @Param request body dto.EmailTemplateRequest true "Subject and body"
// @Success 200 {object} dto.APIResponse "Template stored"
// @Failure 404 {object} dto.ErrorResponse "Unknown template key"
// @Router /admin/email-templates/{key} [put]
func (c *AdminController) SetEmailTemplate(ctx *gin.Context) {
	var req dto.EmailTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.adminService.SetEmailTemplate(ctx, ctx.Param("key"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Email template stored"))
}

// --- Help desk oversight ---

// ListHelpRequests lists tickets across all users
// @Summary List help requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(OPEN, RESOLVED)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Help requests"
// @Router /admin/help-requests [get]
func (c *AdminController) ListHelpRequests(ctx *gin.Context) {
	status := models.HelpRequestStatus(ctx.Query("status"))
	if status != "" && status != models.HelpStatusOpen && status != models.HelpStatusResolved {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "status must be OPEN or RESOLVED").
			WithField("status")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	requests, pagination, err := c.adminService.ListHelpRequests(ctx, status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      requests,
		Pagination: pagination,
	}, "Help requests retrieved"))
}
