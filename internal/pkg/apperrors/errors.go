package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied      = errors.New("permission denied")
	ErrOnboardingIncomplete  = errors.New("onboarding not completed")
	ErrOnboardingAlreadyDone = errors.New("onboarding already completed")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Job and application errors
var (
	ErrJobNotFound             = errors.New("job not found")
	ErrJobClosed               = errors.New("job is closed for applications")
	ErrApplicationNotFound     = errors.New("application not found")
	ErrAlreadyApplied          = errors.New("application already exists for this job")
	ErrInvalidStatusChange     = errors.New("invalid application status transition")
	ErrInterviewNotSchedulable = errors.New("application must be shortlisted before scheduling an interview")
)

// Skill and category errors
var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryAlreadyExists  = errors.New("category with this name already exists")
	ErrCoreSkillNotFound      = errors.New("core skill not found")
	ErrCoreSkillAlreadyExists = errors.New("core skill with this name already exists")
	ErrTooManySubSkills       = errors.New("a core skill can have at most four sub skills")
	ErrAssessmentNotFound     = errors.New("skill assessment not found")
)

// Profile errors
var (
	ErrStudentNotFound       = errors.New("student profile not found")
	ErrSchoolNotFound        = errors.New("school profile not found")
	ErrEducationNotFound     = errors.New("education entry not found")
	ErrCertificationNotFound = errors.New("certification entry not found")
)

// Help desk errors
var (
	ErrHelpRequestNotFound = errors.New("help request not found")
)

// Settings errors
var (
	ErrSettingNotFound = errors.New("setting not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
