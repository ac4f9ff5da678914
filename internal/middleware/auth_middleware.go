package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth validates the bearer token and loads its claims into the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				message = "Token has expired"
			}
			abortWith(c, http.StatusUnauthorized, code, message)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)
		c.Next()
	}
}

// RoleRequired blocks requests whose token does not carry the given role
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextRoleType)
		if !exists {
			abortWith(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		if current, ok := value.(models.RoleType); !ok || current != role {
			abortWith(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Insufficient permissions for this operation")
			return
		}
		c.Next()
	}
}

// OnboardingRequired blocks school and student accounts that have not
// completed onboarding. The auth group stays reachable so they can finish.
func (m *AuthMiddleware) OnboardingRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			abortWith(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account not found")
			return
		}
		if !user.IsActive {
			abortWith(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
			return
		}
		if !user.OnboardingComplete {
			abortWith(c, http.StatusForbidden, dto.ErrorCodeOnboardingIncomplete, "Complete onboarding first")
			return
		}
		c.Next()
	}
}

// GetUserID reads the authenticated user id set by JWTAuth
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// GetRoleType reads the authenticated role set by JWTAuth
func GetRoleType(c *gin.Context) (models.RoleType, bool) {
	value, exists := c.Get(ContextRoleType)
	if !exists {
		return "", false
	}
	role, ok := value.(models.RoleType)
	return role, ok
}

func abortWith(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
