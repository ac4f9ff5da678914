package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/config"
	"github.com/campuslink/jobportal/internal/pkg/filestorage"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController         *AuthController
	AdminController        *AdminController
	SchoolController       *SchoolController
	StudentController      *StudentController
	NotificationController *NotificationController
	HelpController         *HelpController
	UploadController       *UploadController
}

// NewControllers initializes the controller layer
func NewControllers(svcs *services.Services, storage filestorage.FileStorage, cfg *config.Config) *Controllers {
	return &Controllers{
		AuthController:         NewAuthController(svcs.AuthService, storage),
		AdminController:        NewAdminController(svcs.AdminService, storage),
		SchoolController:       NewSchoolController(svcs.SchoolService),
		StudentController:      NewStudentController(svcs.StudentService, storage),
		NotificationController: NewNotificationController(svcs.NotificationService),
		HelpController:         NewHelpController(svcs.HelpService),
		UploadController:       NewUploadController(svcs.StudentService, storage, cfg),
	}
}

// parseIDParam reads a path parameter as an int64, rendering the 400
// response itself on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
