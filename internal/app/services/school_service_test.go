package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

func TestValidateInterviewSlot(t *testing.T) {
	now := time.Date(2026, time.March, 5, 15, 0, 0, 0, time.UTC)

	slot := func(date, start, end string) *dto.ScheduleInterviewRequest {
		return &dto.ScheduleInterviewRequest{
			Title:     "Technical round",
			Date:      date,
			StartTime: start,
			EndTime:   end,
			Location:  "Room 4",
		}
	}

	t.Run("accepts a future slot", func(t *testing.T) {
		date, err := validateInterviewSlot(slot("2026-03-10", "10:00", "11:00"), now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("accepts today", func(t *testing.T) {
		_, err := validateInterviewSlot(slot("2026-03-05", "16:00", "17:00"), now)
		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		req     *dto.ScheduleInterviewRequest
		message string
	}{
		{"past date", slot("2026-03-04", "10:00", "11:00"), "date is in the past"},
		{"unparseable date", slot("someday", "10:00", "11:00"), "date is not a recognized date"},
		{"malformed start time", slot("2026-03-10", "25:00", "11:00"), "times must be HH:MM"},
		{"malformed end time", slot("2026-03-10", "10:00", "9pm"), "times must be HH:MM"},
		{"start after end", slot("2026-03-10", "11:00", "10:00"), "startTime must be before endTime"},
		{"zero-length slot", slot("2026-03-10", "10:00", "10:00"), "startTime must be before endTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateInterviewSlot(tt.req, now)
			var cerr *apperrors.CustomError
			require.ErrorAs(t, err, &cerr)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			assert.Equal(t, tt.message, cerr.Message)
		})
	}
}
