package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/campuslink/jobportal/internal/app/models/dto"
)

// HandleBindingError renders a binding failure as a field-level validation
// response. Validator errors report the first failing field; anything else
// becomes a generic invalid-request message.
func HandleBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, formatValidationError(first)).
			WithField(first.Field())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
