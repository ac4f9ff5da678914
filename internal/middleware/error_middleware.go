package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every controller
// funnels failures through here so status codes and error payloads stay
// uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials", err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired", err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token", err)
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Refresh token is invalid or expired", err)
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled", err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied", err)
	case errors.Is(err, apperrors.ErrOnboardingIncomplete):
		respondError(c, http.StatusForbidden, dto.ErrorCodeOnboardingIncomplete, "Complete onboarding first", err)

	case errors.Is(err, apperrors.ErrOnboardingAlreadyDone):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Onboarding already completed", err)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists", err)
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already applied to this job", err)
	case errors.Is(err, apperrors.ErrCategoryAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Category already exists", err)
	case errors.Is(err, apperrors.ErrCoreSkillAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Core skill already exists", err)

	case errors.Is(err, apperrors.ErrInvalidStatusChange):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidStatus, "Status change not allowed", err)
	case errors.Is(err, apperrors.ErrInterviewNotSchedulable):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidStatus, "Application is not ready for an interview", err)
	case errors.Is(err, apperrors.ErrJobClosed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidStatus, "Job is closed for applications", err)
	case errors.Is(err, apperrors.ErrTooManySubSkills):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "A core skill holds at most 4 sub skills", err)
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid request", err)

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrCoreSkillNotFound),
		errors.Is(err, apperrors.ErrAssessmentNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrSchoolNotFound),
		errors.Is(err, apperrors.ErrEducationNotFound),
		errors.Is(err, apperrors.ErrCertificationNotFound),
		errors.Is(err, apperrors.ErrHelpRequestNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", err)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// respondError renders the error payload. A CustomError's message overrides
// the generic one so callers can attach context.
func respondError(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		message = custom.Message
	}
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
