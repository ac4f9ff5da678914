package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/config"
	"github.com/campuslink/jobportal/internal/middleware"
	"github.com/campuslink/jobportal/internal/pkg/filestorage"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// UploadController handles standalone file uploads. Student uploads of a
// profile image or resume are also written back onto the profile.
type UploadController struct {
	studentService *services.StudentService
	storage        filestorage.FileStorage
	maxImageBytes  int64
	maxDocBytes    int64
}

// NewUploadController creates a new UploadController
func NewUploadController(studentService *services.StudentService, storage filestorage.FileStorage, cfg *config.Config) *UploadController {
	return &UploadController{
		studentService: studentService,
		storage:        storage,
		maxImageBytes:  int64(cfg.Uploads.MaxImageSizeMB) << 20,
		maxDocBytes:    int64(cfg.Uploads.MaxDocumentSizeMB) << 20,
	}
}

// UploadProfileImage stores a profile image and returns its public URL
// @Summary Upload profile image
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} dto.APIResponse "Public URL"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /upload/profile-image [post]
func (c *UploadController) UploadProfileImage(ctx *gin.Context) {
	fileHeader, ok := c.formFile(ctx, c.maxImageBytes)
	if !ok {
		return
	}

	url, err := c.storage.SaveFileWithPath(fileHeader, filestorage.KindProfileImage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if role, ok := middleware.GetRoleType(ctx); ok && role == models.RoleStudent {
		userID, _ := middleware.GetUserID(ctx)
		if err := c.studentService.SetImageURL(ctx, userID, url); err != nil {
			logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to store profile image URL")
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"url": url}, "File uploaded"))
}

// UploadResume stores a resume and returns its public URL
// @Summary Upload resume
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Resume file"
// @Success 200 {object} dto.APIResponse "Public URL"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /upload/resume [post]
func (c *UploadController) UploadResume(ctx *gin.Context) {
	fileHeader, ok := c.formFile(ctx, c.maxDocBytes)
	if !ok {
		return
	}

	url, err := c.storage.SaveFileWithPath(fileHeader, filestorage.KindResume)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if role, ok := middleware.GetRoleType(ctx); ok && role == models.RoleStudent {
		userID, _ := middleware.GetUserID(ctx)
		if err := c.studentService.SetResumeURL(ctx, userID, url); err != nil {
			logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to store resume URL")
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"url": url}, "File uploaded"))
}

// UploadCertificate stores a certificate and returns its public URL. The
// URL is meant to be attached to a certification entry in a profile update.
// @Summary Upload certificate
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Certificate file"
// @Success 200 {object} dto.APIResponse "Public URL"
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /upload/certificate [post]
func (c *UploadController) UploadCertificate(ctx *gin.Context) {
	fileHeader, ok := c.formFile(ctx, c.maxDocBytes)
	if !ok {
		return
	}

	url, err := c.storage.SaveFileWithPath(fileHeader, filestorage.KindCertificate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"url": url}, "File uploaded"))
}

// formFile fetches the multipart "file" part and enforces the size limit.
// Renders the error response itself on failure.
func (c *UploadController) formFile(ctx *gin.Context, limit int64) (*multipart.FileHeader, bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "file part is required").
			WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	if fileHeader.Size > limit {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed,
			fmt.Sprintf("file exceeds the %d MB limit", limit>>20)).WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return fileHeader, true
}
