package dto

import "github.com/campuslink/jobportal/internal/app/models"

// EducationInput is one entry of the education array in a profile update.
// Entries with an ID update the existing row; entries without create a new
// one; rows whose ids are absent from the submitted array are deleted.
type EducationInput struct {
	ID           *int64  `json:"id,omitempty"`
	Institution  string  `json:"institution" binding:"required,max=200"`
	Degree       string  `json:"degree" binding:"required,max=200"`
	FieldOfStudy *string `json:"fieldOfStudy,omitempty"`
	StartYear    int     `json:"startYear" binding:"required,min=1950,max=2100"`
	EndYear      *int    `json:"endYear,omitempty" binding:"omitempty,min=1950,max=2100"`
	Grade        *string `json:"grade,omitempty"`
}

// CertificationInput is one entry of the certification array in a profile
// update, reconciled by id like EducationInput.
type CertificationInput struct {
	ID             *int64  `json:"id,omitempty"`
	Name           string  `json:"name" binding:"required,max=200"`
	IssuingBody    *string `json:"issuingBody,omitempty"`
	IssueDate      *string `json:"issueDate,omitempty"`
	CertificateURL *string `json:"certificateUrl,omitempty"`
}

// UpdateStudentProfileRequest represents a student editing their profile
type UpdateStudentProfileRequest struct {
	FirstName      *string              `json:"firstName,omitempty" binding:"omitempty,min=1,max=100"`
	LastName       *string              `json:"lastName,omitempty" binding:"omitempty,min=1,max=100"`
	Mobile         *string              `json:"mobile,omitempty"`
	Bio            *string              `json:"bio,omitempty"`
	Skills         *string              `json:"skills,omitempty"`
	Educations     []EducationInput     `json:"educations,omitempty" binding:"omitempty,dive"`
	Certifications []CertificationInput `json:"certifications,omitempty" binding:"omitempty,dive"`
}

// StudentProfileData is the full student profile returned by the API
type StudentProfileData struct {
	Student        *models.Student          `json:"student"`
	Educations     []models.Education       `json:"educations"`
	Certifications []models.Certification   `json:"certifications"`
	Assessments    []models.SkillAssessment `json:"assessments"`
}

// StudentDashboardData aggregates the student landing page
type StudentDashboardData struct {
	TotalApplications   int64                    `json:"totalApplications"`
	ShortlistedCount    int64                    `json:"shortlistedCount"`
	InterviewsScheduled int64                    `json:"interviewsScheduled"`
	OpenJobs            int64                    `json:"openJobs"`
	RecentApplications  []*models.Application    `json:"recentApplications"`
	Assessments         []models.SkillAssessment `json:"assessments"`
}

// JobFilter carries optional query filters for the student job listing
type JobFilter struct {
	CategoryID *int64
	Location   string
	Search     string
}
