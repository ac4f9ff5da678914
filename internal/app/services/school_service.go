package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/email"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
	"github.com/campuslink/jobportal/internal/pkg/logger"
	"github.com/campuslink/jobportal/internal/pkg/validation"
)

// SchoolService handles a school's job postings and applicant workflow
type SchoolService struct {
	schoolRepo       *repositories.SchoolRepository
	jobRepo          *repositories.JobRepository
	applicationRepo  *repositories.ApplicationRepository
	studentRepo      *repositories.StudentRepository
	coreSkillRepo    *repositories.CoreSkillRepository
	categoryRepo     *repositories.CategoryRepository
	userRepo         *repositories.UserRepository
	notificationRepo *repositories.NotificationRepository
	emailService     email.EmailService
}

// NewSchoolService creates a new school service instance
func NewSchoolService(
	schoolRepo *repositories.SchoolRepository,
	jobRepo *repositories.JobRepository,
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	coreSkillRepo *repositories.CoreSkillRepository,
	categoryRepo *repositories.CategoryRepository,
	userRepo *repositories.UserRepository,
	notificationRepo *repositories.NotificationRepository,
	emailService email.EmailService,
) *SchoolService {
	return &SchoolService{
		schoolRepo:       schoolRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		studentRepo:      studentRepo,
		coreSkillRepo:    coreSkillRepo,
		categoryRepo:     categoryRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
	}
}

func (s *SchoolService) school(ctx context.Context, userID int64) (*models.School, error) {
	return s.schoolRepo.GetByUserID(ctx, userID)
}

// GetDashboard aggregates the school landing page counters
func (s *SchoolService) GetDashboard(ctx context.Context, userID int64) (*dto.SchoolDashboardData, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalJobs, openJobs, err := s.jobRepo.CountBySchool(ctx, school.ID)
	if err != nil {
		return nil, err
	}

	counts, err := s.applicationRepo.CountBySchool(ctx, school.ID)
	if err != nil {
		return nil, err
	}

	var totalApplications int64
	for _, n := range counts {
		totalApplications += n
	}

	return &dto.SchoolDashboardData{
		TotalJobs:           totalJobs,
		OpenJobs:            openJobs,
		TotalApplications:   totalApplications,
		ShortlistedCount:    counts[models.AppStatusShortlisted],
		InterviewsScheduled: counts[models.AppStatusInterviewScheduled],
	}, nil
}

// GetProfile returns the school profile with its categories
func (s *SchoolService) GetProfile(ctx context.Context, userID int64) (*models.School, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}
	school.Categories, err = s.schoolRepo.GetCategories(ctx, school.ID)
	if err != nil {
		return nil, err
	}
	return school, nil
}

// --- Jobs ---

// CreateJob posts a new open job for the school
func (s *SchoolService) CreateJob(ctx context.Context, userID int64, req *dto.CreateJobRequest) (*models.Job, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}

	endAt, err := validation.NormalizeDate(req.ApplicationEndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("applicationEndDate is not a recognized date")
	}
	if endAt.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, apperrors.NewBadRequestError("applicationEndDate is in the past")
	}
	if req.SalaryMinLPA != nil && req.SalaryMaxLPA != nil && *req.SalaryMinLPA > *req.SalaryMaxLPA {
		return nil, apperrors.NewBadRequestError("salaryMinLpa exceeds salaryMaxLpa")
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	job := &models.Job{
		SchoolID:         school.ID,
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		Location:         req.Location,
		ApplicationEndAt: endAt.Add(24*time.Hour - time.Second), // inclusive end date
		SalaryMinLPA:     req.SalaryMinLPA,
		SalaryMaxLPA:     req.SalaryMaxLPA,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Status:           models.JobStatusOpen,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns the school's own postings
func (s *SchoolService) ListJobs(ctx context.Context, userID int64, page, size int) ([]models.Job, dto.PaginationInfo, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	_, limit := helpers.CalculateOffsetLimit(page, size)
	jobs, total, err := s.jobRepo.ListBySchool(ctx, school.ID, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return jobs, helpers.NewPaginationInfo(total, page, limit), nil
}

// GetJob returns one of the school's postings. Jobs of other schools read
// as absent.
func (s *SchoolService) GetJob(ctx context.Context, userID, jobID int64) (*models.Job, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.SchoolID != school.ID {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

// UpdateJob edits one of the school's postings
func (s *SchoolService) UpdateJob(ctx context.Context, userID, jobID int64, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.GetJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.ApplicationEndDate != nil {
		endAt, err := validation.NormalizeDate(*req.ApplicationEndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("applicationEndDate is not a recognized date")
		}
		job.ApplicationEndAt = endAt.Add(24*time.Hour - time.Second)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		job.CategoryID = req.CategoryID
	}
	if req.SalaryMinLPA != nil {
		job.SalaryMinLPA = req.SalaryMinLPA
	}
	if req.SalaryMaxLPA != nil {
		job.SalaryMaxLPA = req.SalaryMaxLPA
	}
	if job.SalaryMinLPA != nil && job.SalaryMaxLPA != nil && *job.SalaryMinLPA > *job.SalaryMaxLPA {
		return nil, apperrors.NewBadRequestError("salaryMinLpa exceeds salaryMaxLpa")
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Responsibilities != nil {
		job.Responsibilities = req.Responsibilities
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJobStatus opens or closes a posting
func (s *SchoolService) UpdateJobStatus(ctx context.Context, userID, jobID int64, status models.JobStatus) error {
	school, err := s.school(ctx, userID)
	if err != nil {
		return err
	}
	return s.jobRepo.UpdateStatus(ctx, jobID, school.ID, status)
}

// DeleteJob removes a posting and its applications
func (s *SchoolService) DeleteJob(ctx context.Context, userID, jobID int64) error {
	school, err := s.school(ctx, userID)
	if err != nil {
		return err
	}
	return s.jobRepo.Delete(ctx, jobID, school.ID)
}

// --- Applicants ---

// ListApplicants returns the applications to one of the school's jobs
func (s *SchoolService) ListApplicants(ctx context.Context, userID, jobID int64, page, size int) ([]dto.ApplicantData, dto.PaginationInfo, error) {
	if _, err := s.GetJob(ctx, userID, jobID); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	_, limit := helpers.CalculateOffsetLimit(page, size)
	apps, total, err := s.applicationRepo.ListByJob(ctx, jobID, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	applicants := make([]dto.ApplicantData, 0, len(apps))
	for _, app := range apps {
		applicants = append(applicants, dto.ApplicantData{
			ApplicationID: app.ID,
			Status:        app.Status,
			AppliedAt:     app.AppliedAt,
			CoverLetter:   app.CoverLetter,
			ResumeURL:     app.ResumeURL,
			Student:       app.Student,
		})
	}
	return applicants, helpers.NewPaginationInfo(total, page, limit), nil
}

// GetApplicantProfile returns the full candidate view for an application to
// one of the school's jobs
func (s *SchoolService) GetApplicantProfile(ctx context.Context, userID, applicationID int64) (*dto.ApplicantProfileData, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetForSchool(ctx, applicationID, school.ID)
	if err != nil {
		return nil, err
	}
	app.Interview, err = s.applicationRepo.GetInterview(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, app.StudentID)
	if err != nil {
		return nil, err
	}
	educations, err := s.studentRepo.ListEducations(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	certifications, err := s.studentRepo.ListCertifications(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	assessments, err := s.coreSkillRepo.ListAssessmentsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.ApplicantProfileData{
		Application:    app,
		Student:        student,
		Educations:     educations,
		Certifications: certifications,
		Assessments:    assessments,
	}, nil
}

// UpdateApplicationStatus moves an application through the workflow. Setting
// the current status again is a no-op; INTERVIEW_SCHEDULED can only be
// reached through ScheduleInterview. Valid transitions notify and email the
// student.
func (s *SchoolService) UpdateApplicationStatus(ctx context.Context, userID, applicationID int64, status models.ApplicationStatus) (*models.Application, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetForSchool(ctx, applicationID, school.ID)
	if err != nil {
		return nil, err
	}

	if status == app.Status {
		return app, nil
	}
	if status == models.AppStatusInterviewScheduled {
		// only the schedule endpoint moves applications here
		return nil, apperrors.ErrInvalidStatusChange
	}
	if err := models.ValidateStatusTransition(app.Status, status); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, err
	}
	app.Status = status

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	s.notifyStatusChange(ctx, app, job, school)
	return app, nil
}

// ScheduleInterview creates or reschedules the interview for a shortlisted
// application and moves it to INTERVIEW_SCHEDULED
func (s *SchoolService) ScheduleInterview(ctx context.Context, userID, applicationID int64, req *dto.ScheduleInterviewRequest) (*models.Interview, error) {
	school, err := s.school(ctx, userID)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetForSchool(ctx, applicationID, school.ID)
	if err != nil {
		return nil, err
	}
	if !models.CanScheduleInterview(app.Status) {
		return nil, apperrors.ErrInterviewNotSchedulable
	}

	date, err := validateInterviewSlot(req, time.Now())
	if err != nil {
		return nil, err
	}

	iv := &models.Interview{
		ApplicationID: app.ID,
		Title:         req.Title,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Location:      req.Location,
	}
	if err := s.applicationRepo.UpsertInterview(ctx, iv); err != nil {
		return nil, err
	}

	if app.Status != models.AppStatusInterviewScheduled {
		if err := s.applicationRepo.UpdateStatus(ctx, app.ID, models.AppStatusInterviewScheduled); err != nil {
			return nil, err
		}
		app.Status = models.AppStatusInterviewScheduled
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	s.notifyInterview(ctx, app, job, school, iv)
	return iv, nil
}

// validateInterviewSlot checks the requested date and time window. Past
// dates reject, mirroring the application-window check on job posting.
func validateInterviewSlot(req *dto.ScheduleInterviewRequest, now time.Time) (time.Time, error) {
	date, err := validation.NormalizeDate(req.Date)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequestError("date is not a recognized date")
	}
	if date.Before(now.Truncate(24 * time.Hour)) {
		return time.Time{}, apperrors.NewBadRequestError("date is in the past")
	}
	if !validation.IsValidTimeOfDay(req.StartTime) || !validation.IsValidTimeOfDay(req.EndTime) {
		return time.Time{}, apperrors.NewBadRequestError("times must be HH:MM")
	}
	if req.StartTime >= req.EndTime {
		return time.Time{}, apperrors.NewBadRequestError("startTime must be before endTime")
	}
	return date, nil
}

// notifyStatusChange records a notification and sends the templated status
// email. Delivery failures are logged, never surfaced.
func (s *SchoolService) notifyStatusChange(ctx context.Context, app *models.Application, job *models.Job, school *models.School) {
	student, user, err := s.applicantUser(ctx, app.StudentID)
	if err != nil {
		logger.Warn().Err(err).Int64("applicationID", app.ID).Msg("Failed to resolve applicant for notification")
		return
	}

	link := fmt.Sprintf("/student/applications/%d", app.ID)
	n := &models.Notification{
		UserID:  user.ID,
		Message: fmt.Sprintf("Your application for %q at %s is now %s", job.Title, school.Name, app.Status),
		Type:    models.NotificationTypeApplication,
		Link:    &link,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to create status notification")
	}

	if err := s.emailService.Send(ctx, user.Email, email.TemplateStatusChange, map[string]string{
		"name":       student.FirstName,
		"jobTitle":   job.Title,
		"schoolName": school.Name,
		"status":     string(app.Status),
	}); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send status email")
	}
}

func (s *SchoolService) notifyInterview(ctx context.Context, app *models.Application, job *models.Job, school *models.School, iv *models.Interview) {
	student, user, err := s.applicantUser(ctx, app.StudentID)
	if err != nil {
		logger.Warn().Err(err).Int64("applicationID", app.ID).Msg("Failed to resolve applicant for notification")
		return
	}

	link := fmt.Sprintf("/student/applications/%d", app.ID)
	n := &models.Notification{
		UserID: user.ID,
		Message: fmt.Sprintf("Interview for %q at %s on %s %s-%s",
			job.Title, school.Name, iv.Date.Format(validation.DateFormat), iv.StartTime, iv.EndTime),
		Type: models.NotificationTypeInterview,
		Link: &link,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to create interview notification")
	}

	if err := s.emailService.Send(ctx, user.Email, email.TemplateInterview, map[string]string{
		"name":          student.FirstName,
		"jobTitle":      job.Title,
		"schoolName":    school.Name,
		"interviewDate": iv.Date.Format(validation.DateFormat),
		"interviewTime": fmt.Sprintf("%s-%s", iv.StartTime, iv.EndTime),
		"location":      iv.Location,
	}); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send interview email")
	}
}

func (s *SchoolService) applicantUser(ctx context.Context, studentID int64) (*models.Student, *models.User, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userRepo.GetByID(ctx, student.UserID)
	if err != nil {
		return nil, nil, err
	}
	return student, user, nil
}
