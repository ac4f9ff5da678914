package models

import (
	"time"

	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

// ApplicationStatus defines the lifecycle state of a job application
type ApplicationStatus string

const (
	AppStatusApplied            ApplicationStatus = "APPLIED"
	AppStatusShortlisted        ApplicationStatus = "SHORTLISTED"
	AppStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	AppStatusRejected           ApplicationStatus = "REJECTED"
	AppStatusHired              ApplicationStatus = "HIRED"
)

// statusTransitions is the application status state machine. For each current
// status it lists the statuses a school may move the application to. Setting
// the same status again is treated as an idempotent no-op and is not listed
// here. REJECTED and HIRED are terminal.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	AppStatusApplied:            {AppStatusShortlisted, AppStatusRejected},
	AppStatusShortlisted:        {AppStatusInterviewScheduled, AppStatusRejected},
	AppStatusInterviewScheduled: {AppStatusHired, AppStatusRejected},
	AppStatusRejected:           {},
	AppStatusHired:              {},
}

// IsValidApplicationStatus reports whether s is a known application status.
func IsValidApplicationStatus(s ApplicationStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminalApplicationStatus reports whether s allows no further transitions.
func IsTerminalApplicationStatus(s ApplicationStatus) bool {
	targets, ok := statusTransitions[s]
	return ok && len(targets) == 0
}

// ValidateStatusTransition checks whether an application may move from one
// status to another. Re-setting the current status is allowed as a no-op.
// Every disallowed move (including INTERVIEW_SCHEDULED back to SHORTLISTED
// and APPLIED straight to INTERVIEW_SCHEDULED) returns
// apperrors.ErrInvalidStatusChange.
func ValidateStatusTransition(from, to ApplicationStatus) error {
	if !IsValidApplicationStatus(from) || !IsValidApplicationStatus(to) {
		return apperrors.ErrInvalidStatusChange
	}
	if from == to {
		return nil
	}
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperrors.ErrInvalidStatusChange
}

// CanScheduleInterview reports whether an interview may be scheduled (or
// rescheduled) for an application in the given status.
func CanScheduleInterview(s ApplicationStatus) bool {
	return s == AppStatusShortlisted || s == AppStatusInterviewScheduled
}

// Application defines the job application model based on the 'applications'
// table. At most one application exists per (student, job) pair.
type Application struct {
	ID          int64             `json:"id" db:"id"`
	StudentID   int64             `json:"studentId" db:"student_id"`
	JobID       int64             `json:"jobId" db:"job_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	CoverLetter *string           `json:"coverLetter,omitempty" db:"cover_letter"`
	ResumeURL   *string           `json:"resumeUrl,omitempty" db:"resume_url"`
	AppliedAt   time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`

	Student   *Student   `json:"student,omitempty"`   // Relation, no db tag
	Job       *Job       `json:"job,omitempty"`       // Relation, no db tag
	Interview *Interview `json:"interview,omitempty"` // Relation, no db tag
}

// Interview defines the interview model based on the 'interviews' table.
// An interview is unique per application; rescheduling updates the row.
type Interview struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	Title         string    `json:"title" db:"title"`
	Date          time.Time `json:"date" db:"interview_date"`
	StartTime     string    `json:"startTime" db:"start_time"` // HH:MM
	EndTime       string    `json:"endTime" db:"end_time"`     // HH:MM
	Location      string    `json:"location" db:"location"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
