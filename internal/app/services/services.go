package services

import (
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/auth"
	"github.com/campuslink/jobportal/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	AdminService        *AdminService
	SchoolService       *SchoolService
	StudentService      *StudentService
	NotificationService *NotificationService
	HelpService         *HelpService
}

// NewServices wires the service layer over the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, emailService email.EmailService) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.SchoolRepository,
			repos.TokenRepository,
			jwtService,
		),
		AdminService: NewAdminService(
			repos.UserRepository,
			repos.StudentRepository,
			repos.SchoolRepository,
			repos.CoreSkillRepository,
			repos.CategoryRepository,
			repos.SettingRepository,
			repos.HelpRequestRepository,
			repos.TokenRepository,
			emailService,
		),
		SchoolService: NewSchoolService(
			repos.SchoolRepository,
			repos.JobRepository,
			repos.ApplicationRepository,
			repos.StudentRepository,
			repos.CoreSkillRepository,
			repos.CategoryRepository,
			repos.UserRepository,
			repos.NotificationRepository,
			emailService,
		),
		StudentService: NewStudentService(
			repos.StudentRepository,
			repos.SchoolRepository,
			repos.JobRepository,
			repos.ApplicationRepository,
			repos.CoreSkillRepository,
			repos.NotificationRepository,
		),
		NotificationService: NewNotificationService(repos.NotificationRepository),
		HelpService:         NewHelpService(repos.HelpRequestRepository),
	}
}
