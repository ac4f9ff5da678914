package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"applied to shortlisted", AppStatusApplied, AppStatusShortlisted, true},
		{"applied to rejected", AppStatusApplied, AppStatusRejected, true},
		{"applied straight to interview", AppStatusApplied, AppStatusInterviewScheduled, false},
		{"applied straight to hired", AppStatusApplied, AppStatusHired, false},
		{"shortlisted to interview", AppStatusShortlisted, AppStatusInterviewScheduled, true},
		{"shortlisted to rejected", AppStatusShortlisted, AppStatusRejected, true},
		{"shortlisted to hired", AppStatusShortlisted, AppStatusHired, false},
		{"shortlisted back to applied", AppStatusShortlisted, AppStatusApplied, false},
		{"interview to hired", AppStatusInterviewScheduled, AppStatusHired, true},
		{"interview to rejected", AppStatusInterviewScheduled, AppStatusRejected, true},
		{"interview back to shortlisted", AppStatusInterviewScheduled, AppStatusShortlisted, false},
		{"rejected is terminal", AppStatusRejected, AppStatusShortlisted, false},
		{"hired is terminal", AppStatusHired, AppStatusRejected, false},
		{"same status is a no-op", AppStatusShortlisted, AppStatusShortlisted, true},
		{"same terminal status is a no-op", AppStatusHired, AppStatusHired, true},
		{"unknown source", ApplicationStatus("PENDING"), AppStatusShortlisted, false},
		{"unknown target", AppStatusApplied, ApplicationStatus("WAITLISTED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInvalidStatusChange)
			}
		})
	}
}

func TestIsTerminalApplicationStatus(t *testing.T) {
	assert.True(t, IsTerminalApplicationStatus(AppStatusRejected))
	assert.True(t, IsTerminalApplicationStatus(AppStatusHired))
	assert.False(t, IsTerminalApplicationStatus(AppStatusApplied))
	assert.False(t, IsTerminalApplicationStatus(AppStatusShortlisted))
	assert.False(t, IsTerminalApplicationStatus(AppStatusInterviewScheduled))
	assert.False(t, IsTerminalApplicationStatus(ApplicationStatus("PENDING")))
}

func TestCanScheduleInterview(t *testing.T) {
	assert.True(t, CanScheduleInterview(AppStatusShortlisted))
	assert.True(t, CanScheduleInterview(AppStatusInterviewScheduled), "rescheduling stays allowed")
	assert.False(t, CanScheduleInterview(AppStatusApplied))
	assert.False(t, CanScheduleInterview(AppStatusRejected))
	assert.False(t, CanScheduleInterview(AppStatusHired))
}
