package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

func TestChangePasswordRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(nil, nil, nil, nil, nil)

	err := svc.ChangePassword(context.Background(), 1, "current-password", "short")

	var cerr *apperrors.CustomError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Contains(t, cerr.Message, "at least 8 characters")
}
