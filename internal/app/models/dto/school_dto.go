package dto

import (
	"time"

	"github.com/campuslink/jobportal/internal/app/models"
)

// CreateJobRequest represents a school posting a job. ApplicationEndDate
// accepts several common date formats and is canonicalized server-side.
type CreateJobRequest struct {
	Title              string   `json:"title" binding:"required,min=3,max=200"`
	CategoryID         *int64   `json:"categoryId,omitempty"`
	Location           string   `json:"location" binding:"required,max=200"`
	ApplicationEndDate string   `json:"applicationEndDate" binding:"required"`
	SalaryMinLPA       *float64 `json:"salaryMinLpa,omitempty" binding:"omitempty,gte=0"`
	SalaryMaxLPA       *float64 `json:"salaryMaxLpa,omitempty" binding:"omitempty,gte=0"`
	Description        string   `json:"description" binding:"required"`
	Responsibilities   *string  `json:"responsibilities,omitempty"`
	Requirements       *string  `json:"requirements,omitempty"`
}

// UpdateJobRequest represents a school editing a job posting
type UpdateJobRequest struct {
	Title              *string  `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	CategoryID         *int64   `json:"categoryId,omitempty"`
	Location           *string  `json:"location,omitempty" binding:"omitempty,max=200"`
	ApplicationEndDate *string  `json:"applicationEndDate,omitempty"`
	SalaryMinLPA       *float64 `json:"salaryMinLpa,omitempty" binding:"omitempty,gte=0"`
	SalaryMaxLPA       *float64 `json:"salaryMaxLpa,omitempty" binding:"omitempty,gte=0"`
	Description        *string  `json:"description,omitempty"`
	Responsibilities   *string  `json:"responsibilities,omitempty"`
	Requirements       *string  `json:"requirements,omitempty"`
}

// JobStatusRequest opens or closes a job posting
type JobStatusRequest struct {
	Status models.JobStatus `json:"status" binding:"required,oneof=OPEN CLOSED"`
}

// UpdateApplicationStatusRequest moves an application through its workflow
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=APPLIED SHORTLISTED INTERVIEW_SCHEDULED REJECTED HIRED"`
}

// ScheduleInterviewRequest creates or reschedules the interview for an
// application. Date accepts several common formats; times are HH:MM.
type ScheduleInterviewRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Location  string `json:"location" binding:"required,max=200"`
}

// SchoolDashboardData aggregates counters for the school landing page
type SchoolDashboardData struct {
	TotalJobs           int64 `json:"totalJobs"`
	OpenJobs            int64 `json:"openJobs"`
	TotalApplications   int64 `json:"totalApplications"`
	ShortlistedCount    int64 `json:"shortlistedCount"`
	InterviewsScheduled int64 `json:"interviewsScheduled"`
}

// ApplicantData is a row of a school's applicant listing
type ApplicantData struct {
	ApplicationID int64                    `json:"applicationId"`
	Status        models.ApplicationStatus `json:"status"`
	AppliedAt     time.Time                `json:"appliedAt"`
	CoverLetter   *string                  `json:"coverLetter,omitempty"`
	ResumeURL     *string                  `json:"resumeUrl,omitempty"`
	Student       *models.Student          `json:"student"`
}

// ApplicantProfileData is the full candidate view for a school
type ApplicantProfileData struct {
	Application    *models.Application      `json:"application"`
	Student        *models.Student          `json:"student"`
	Educations     []models.Education       `json:"educations"`
	Certifications []models.Certification   `json:"certifications"`
	Assessments    []models.SkillAssessment `json:"assessments"`
}
