package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
	"github.com/campuslink/jobportal/internal/pkg/logger"
	"github.com/campuslink/jobportal/internal/pkg/validation"
)

// StudentService handles job browsing, applications and the student profile
type StudentService struct {
	studentRepo      *repositories.StudentRepository
	schoolRepo       *repositories.SchoolRepository
	jobRepo          *repositories.JobRepository
	applicationRepo  *repositories.ApplicationRepository
	coreSkillRepo    *repositories.CoreSkillRepository
	notificationRepo *repositories.NotificationRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	schoolRepo *repositories.SchoolRepository,
	jobRepo *repositories.JobRepository,
	applicationRepo *repositories.ApplicationRepository,
	coreSkillRepo *repositories.CoreSkillRepository,
	notificationRepo *repositories.NotificationRepository,
) *StudentService {
	return &StudentService{
		studentRepo:      studentRepo,
		schoolRepo:       schoolRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		coreSkillRepo:    coreSkillRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *StudentService) student(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// GetDashboard aggregates the student landing page
func (s *StudentService) GetDashboard(ctx context.Context, userID int64) (*dto.StudentDashboardData, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.applicationRepo.CountByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	var totalApplications int64
	for _, n := range counts {
		totalApplications += n
	}

	_, openJobs, err := s.jobRepo.ListOpen(ctx, dto.JobFilter{}, 1, 1)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.applicationRepo.ListByStudent(ctx, student.ID, 1, 5)
	if err != nil {
		return nil, err
	}
	recentPtrs := make([]*models.Application, len(recent))
	for i := range recent {
		recentPtrs[i] = &recent[i]
	}

	assessments, err := s.coreSkillRepo.ListAssessmentsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboardData{
		TotalApplications:   totalApplications,
		ShortlistedCount:    counts[models.AppStatusShortlisted],
		InterviewsScheduled: counts[models.AppStatusInterviewScheduled],
		OpenJobs:            openJobs,
		RecentApplications:  recentPtrs,
		Assessments:         assessments,
	}, nil
}

// --- Jobs ---

// ListJobs returns open jobs whose application window is still running,
// filtered by category, location and free-text search
func (s *StudentService) ListJobs(ctx context.Context, filter dto.JobFilter, page, size int) ([]models.Job, dto.PaginationInfo, error) {
	_, limit := helpers.CalculateOffsetLimit(page, size)
	jobs, total, err := s.jobRepo.ListOpen(ctx, filter, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return jobs, helpers.NewPaginationInfo(total, page, limit), nil
}

// GetJob returns a single job with its posting school attached
func (s *StudentService) GetJob(ctx context.Context, jobID int64) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	school, err := s.schoolRepo.GetByID(ctx, job.SchoolID)
	if err != nil {
		return nil, err
	}
	job.School = school
	return job, nil
}

// Apply submits an application to an open job. Closed jobs and passed
// application windows reject; a duplicate application is a conflict. The
// posting school gets a notification.
func (s *StudentService) Apply(ctx context.Context, userID, jobID int64, coverLetter, resumeURL *string) (*models.Application, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen || job.ApplicationEndAt.Before(time.Now()) {
		return nil, apperrors.ErrJobClosed
	}

	// the unique constraint on insert still catches concurrent submits
	applied, err := s.applicationRepo.HasApplied(ctx, student.ID, job.ID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied
	}

	if resumeURL == nil {
		resumeURL = student.ResumeURL
	}

	app := &models.Application{
		StudentID:   student.ID,
		JobID:       job.ID,
		Status:      models.AppStatusApplied,
		CoverLetter: coverLetter,
		ResumeURL:   resumeURL,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.notifySchool(ctx, student, job)
	return app, nil
}

func (s *StudentService) notifySchool(ctx context.Context, student *models.Student, job *models.Job) {
	school, err := s.schoolRepo.GetByID(ctx, job.SchoolID)
	if err != nil {
		logger.Warn().Err(err).Int64("jobID", job.ID).Msg("Failed to resolve school for application notification")
		return
	}

	link := fmt.Sprintf("/school/jobs/%d/applicants", job.ID)
	n := &models.Notification{
		UserID:  school.UserID,
		Message: fmt.Sprintf("%s %s applied to %q", student.FirstName, student.LastName, job.Title),
		Type:    models.NotificationTypeApplication,
		Link:    &link,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Int64("userID", school.UserID).Msg("Failed to create application notification")
	}
}

// ListApplications returns the student's applications with their jobs
func (s *StudentService) ListApplications(ctx context.Context, userID int64, page, size int) ([]models.Application, dto.PaginationInfo, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	_, limit := helpers.CalculateOffsetLimit(page, size)
	apps, total, err := s.applicationRepo.ListByStudent(ctx, student.ID, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	for i := range apps {
		if apps[i].Status == models.AppStatusInterviewScheduled {
			iv, err := s.applicationRepo.GetInterview(ctx, apps[i].ID)
			if err != nil {
				return nil, dto.PaginationInfo{}, err
			}
			apps[i].Interview = iv
		}
	}
	return apps, helpers.NewPaginationInfo(total, page, limit), nil
}

// ListAssessments returns the student's graded core skills
func (s *StudentService) ListAssessments(ctx context.Context, userID int64) ([]models.SkillAssessment, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.coreSkillRepo.ListAssessmentsByStudent(ctx, student.ID)
}

// --- Profile ---

// GetProfile returns the student profile with educations, certifications
// and assessments
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*dto.StudentProfileData, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileData(ctx, student)
}

func (s *StudentService) profileData(ctx context.Context, student *models.Student) (*dto.StudentProfileData, error) {
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
	return &dto.StudentProfileData{
		Student:        student,
		Educations:     educations,
		Certifications: certifications,
		Assessments:    assessments,
	}, nil
}

// UpdateProfile applies field changes and reconciles the education and
// certification arrays by id: submitted ids update, entries without an id
// create, rows missing from the submitted set are deleted. An omitted array
// leaves the stored rows alone.
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileData, error) {
	student, err := s.student(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Mobile != nil {
		if *req.Mobile != "" && !validation.IsValidMobile(*req.Mobile) {
			return nil, apperrors.NewBadRequestError("mobile number is not valid")
		}
		student.Mobile = req.Mobile
	}
	if req.Bio != nil {
		student.Bio = req.Bio
	}
	if req.Skills != nil {
		student.Skills = req.Skills
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	if req.Educations != nil {
		if err := reconcileEducations(ctx, s.studentRepo, student.ID, req.Educations); err != nil {
			return nil, err
		}
	}
	if req.Certifications != nil {
		if err := reconcileCertifications(ctx, s.studentRepo, student.ID, req.Certifications); err != nil {
			return nil, err
		}
	}

	return s.profileData(ctx, student)
}

// educationStore is the slice of StudentRepository the education
// reconciliation needs.
type educationStore interface {
	CreateEducation(ctx context.Context, e *models.Education) error
	UpdateEducation(ctx context.Context, e *models.Education) error
	DeleteEducationsExcept(ctx context.Context, studentID int64, keepIDs []int64) error
}

func reconcileEducations(ctx context.Context, store educationStore, studentID int64, inputs []dto.EducationInput) error {
	keepIDs := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		e := &models.Education{
			StudentID:    studentID,
			Institution:  in.Institution,
			Degree:       in.Degree,
			FieldOfStudy: in.FieldOfStudy,
			StartYear:    in.StartYear,
			EndYear:      in.EndYear,
			Grade:        in.Grade,
		}
		if in.ID != nil {
			e.ID = *in.ID
			if err := store.UpdateEducation(ctx, e); err != nil {
				return err
			}
		} else if err := store.CreateEducation(ctx, e); err != nil {
			return err
		}
		keepIDs = append(keepIDs, e.ID)
	}
	return store.DeleteEducationsExcept(ctx, studentID, keepIDs)
}

// certificationStore is the slice of StudentRepository the certification
// reconciliation needs.
type certificationStore interface {
	CreateCertification(ctx context.Context, c *models.Certification) error
	UpdateCertification(ctx context.Context, c *models.Certification) error
	DeleteCertificationsExcept(ctx context.Context, studentID int64, keepIDs []int64) error
}

func reconcileCertifications(ctx context.Context, store certificationStore, studentID int64, inputs []dto.CertificationInput) error {
	keepIDs := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		c := &models.Certification{
			StudentID:      studentID,
			Name:           in.Name,
			IssuingBody:    in.IssuingBody,
			CertificateURL: in.CertificateURL,
		}
		if in.IssueDate != nil && *in.IssueDate != "" {
			issued, err := validation.NormalizeDate(*in.IssueDate)
			if err != nil {
				return apperrors.NewBadRequestError("issueDate is not a recognized date")
			}
			c.IssueDate = &issued
		}
		if in.ID != nil {
			c.ID = *in.ID
			if err := store.UpdateCertification(ctx, c); err != nil {
				return err
			}
		} else if err := store.CreateCertification(ctx, c); err != nil {
			return err
		}
		keepIDs = append(keepIDs, c.ID)
	}
	return store.DeleteCertificationsExcept(ctx, studentID, keepIDs)
}

// SetResumeURL stores the student's uploaded resume location
func (s *StudentService) SetResumeURL(ctx context.Context, userID int64, url string) error {
	student, err := s.student(ctx, userID)
	if err != nil {
		return err
	}
	student.ResumeURL = &url
	return s.studentRepo.Update(ctx, student)
}

// SetImageURL stores the student's uploaded profile image location
func (s *StudentService) SetImageURL(ctx context.Context, userID int64, url string) error {
	student, err := s.student(ctx, userID)
	if err != nil {
		return err
	}
	student.ImageURL = &url
	return s.studentRepo.Update(ctx, student)
}
