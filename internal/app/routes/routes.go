package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/controllers"
	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/config"
	"github.com/campuslink/jobportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) {
	imageBodyLimit := int64(cfg.Uploads.MaxImageSizeMB+1) << 20
	docBodyLimit := int64(cfg.Uploads.MaxDocumentSizeMB+1) << 20
	sheetBodyLimit := int64(cfg.Uploads.MaxSheetSizeMB+1) << 20

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.AuthController.Login)
		auth.POST("/refresh", ctrl.AuthController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authSelf := authenticated.Group("/auth")
		{
			authSelf.GET("/me", ctrl.AuthController.GetMe)
			authSelf.POST("/change-password", ctrl.AuthController.ChangePassword)
			authSelf.POST("/complete-onboarding", middleware.MaxBodySize(imageBodyLimit), ctrl.AuthController.CompleteOnboarding)
		}

		// Notifications and help desk are shared across roles
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", ctrl.NotificationController.List)
			notifications.GET("/unread-count", ctrl.NotificationController.UnreadCount)
			notifications.POST("/:id/mark-as-read", ctrl.NotificationController.MarkRead)
			notifications.POST("/mark-all-read", ctrl.NotificationController.MarkAllRead)
		}

		help := authenticated.Group("/help")
		{
			help.GET("", ctrl.HelpController.ListMine)
			help.POST("", ctrl.HelpController.Create)
			help.PATCH("/:id/resolve", authMiddleware.RoleRequired(models.RoleAdmin), ctrl.HelpController.Resolve)
		}

		upload := authenticated.Group("/upload")
		{
			upload.POST("/profile-image", middleware.MaxBodySize(imageBodyLimit), ctrl.UploadController.UploadProfileImage)
			upload.POST("/resume", middleware.MaxBodySize(docBodyLimit), ctrl.UploadController.UploadResume)
			upload.POST("/certificate", middleware.MaxBodySize(docBodyLimit), ctrl.UploadController.UploadCertificate)
		}

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			users := admin.Group("/users")
			{
				users.GET("", ctrl.AdminController.ListUsers)
				users.POST("", ctrl.AdminController.CreateUser)
				users.POST("/bulk-create", middleware.MaxBodySize(sheetBodyLimit), ctrl.AdminController.BulkCreateUsers)
				users.GET("/:id", ctrl.AdminController.GetUser)
				users.PATCH("/:id", ctrl.AdminController.UpdateUser)
				users.DELETE("/:id", ctrl.AdminController.DeleteUser)
			}

			skills := admin.Group("/skills")
			{
				skills.GET("", ctrl.AdminController.ListCoreSkills)
				skills.POST("", ctrl.AdminController.CreateCoreSkill)
				skills.PATCH("/:id", ctrl.AdminController.UpdateCoreSkill)
				skills.DELETE("/:id", ctrl.AdminController.DeleteCoreSkill)
				skills.POST("/:id/bulk-marks-upload", middleware.MaxBodySize(sheetBodyLimit), ctrl.AdminController.BulkUploadMarks)
			}

			categories := admin.Group("/categories")
			{
				categories.GET("", ctrl.AdminController.ListCategories)
				categories.POST("", ctrl.AdminController.CreateCategory)
				categories.PATCH("/:id", ctrl.AdminController.UpdateCategory)
				categories.DELETE("/:id", ctrl.AdminController.DeleteCategory)
			}

			admin.GET("/settings/subskill-limit", ctrl.AdminController.GetSubSkillLimit)
			admin.PUT("/settings/subskill-limit", ctrl.AdminController.SetSubSkillLimit)
			admin.GET("/email-templates/:key", ctrl.AdminController.GetEmailTemplate)
			admin.PUT("/email-templates/:key", ctrl.AdminController.SetEmailTemplate)
			admin.GET("/help-requests", ctrl.AdminController.ListHelpRequests)
		}

		// --- School routes ---
		// Onboarding gates the dashboard groups, not the auth endpoints above.
		school := authenticated.Group("/school")
		school.Use(authMiddleware.RoleRequired(models.RoleSchool), authMiddleware.OnboardingRequired())
		{
			school.GET("/dashboard", ctrl.SchoolController.GetDashboard)
			school.GET("/profile", ctrl.SchoolController.GetProfile)

			jobs := school.Group("/jobs")
			{
				jobs.GET("", ctrl.SchoolController.ListJobs)
				jobs.POST("", ctrl.SchoolController.CreateJob)
				jobs.GET("/:id", ctrl.SchoolController.GetJob)
				jobs.PATCH("/:id", ctrl.SchoolController.UpdateJob)
				jobs.DELETE("/:id", ctrl.SchoolController.DeleteJob)
				jobs.PATCH("/:id/status", ctrl.SchoolController.UpdateJobStatus)
				jobs.GET("/:id/applicants", ctrl.SchoolController.ListApplicants)
			}

			school.GET("/applicants/:id", ctrl.SchoolController.GetApplicantProfile)
			school.PATCH("/applications/:id/status", ctrl.SchoolController.UpdateApplicationStatus)
			school.POST("/applications/:id/schedule", ctrl.SchoolController.ScheduleInterview)
		}

		// --- Student routes ---
		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent), authMiddleware.OnboardingRequired())
		{
			student.GET("/dashboard", ctrl.StudentController.GetDashboard)
			student.GET("/profile", ctrl.StudentController.GetProfile)
			student.PATCH("/profile", ctrl.StudentController.UpdateProfile)

			jobs := student.Group("/jobs")
			{
				jobs.GET("", ctrl.StudentController.ListJobs)
				jobs.GET("/:id", ctrl.StudentController.GetJob)
				jobs.POST("/:id/apply", middleware.MaxBodySize(docBodyLimit), ctrl.StudentController.Apply)
			}

			student.GET("/applications", ctrl.StudentController.ListApplications)
			student.GET("/skill-assessments", ctrl.StudentController.ListAssessments)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}, "OK"))
	})
}
