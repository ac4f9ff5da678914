package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/services"
	"github.com/campuslink/jobportal/internal/middleware"
	"github.com/campuslink/jobportal/internal/pkg/filestorage"
)

// AuthController handles login, token refresh, onboarding and the current
// user endpoints
type AuthController struct {
	authService *services.AuthService
	storage     filestorage.FileStorage
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, storage filestorage.FileStorage) *AuthController {
	return &AuthController{
		authService: authService,
		storage:     storage,
	}
}

// Login authenticates a user
// @Summary Log in
// @Description Authenticates with email and password and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Logged in"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Logged in successfully"))
}

// RefreshToken exchanges a refresh token for a new pair
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Tokens refreshed"
// @Failure 401 {object} dto.ErrorResponse "Refresh token invalid or expired"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Tokens refreshed"))
}

// GetMe returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Current user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	user, err := c.authService.GetCurrentUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user, "Current user"))
}

// ChangePassword updates the authenticated user's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.APIResponse "Password changed"
// @Failure 401 {object} dto.ErrorResponse "Current password wrong"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	if err := c.authService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Password changed successfully"))
}

// CompleteOnboarding creates the role profile for a first-login account
// @Summary Complete onboarding
// @Description Multipart request with a profileData JSON part and an optional image
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param profileData formData string true "Profile fields as JSON"
// @Param image formData file false "Profile image or school logo"
// @Success 200 {object} dto.APIResponse "Onboarding completed"
// @Failure 400 {object} dto.ErrorResponse "Missing required profile fields"
// @Failure 409 {object} dto.ErrorResponse "Onboarding already completed"
// @Router /auth/complete-onboarding [post]
func (c *AuthController) CompleteOnboarding(ctx *gin.Context) {
	raw := ctx.PostForm("profileData")
	if raw == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "profileData part is required").
			WithField("profileData")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var data dto.OnboardingProfileData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "profileData is not valid JSON").
			WithField("profileData").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var imageURL *string
	if file, err := ctx.FormFile("image"); err == nil && file != nil {
		kind := filestorage.KindProfileImage
		if role, ok := middleware.GetRoleType(ctx); ok && role == models.RoleSchool {
			kind = filestorage.KindLogo
		}
		url, err := c.storage.SaveFileWithPath(file, kind)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		imageURL = &url
	}

	userID, _ := middleware.GetUserID(ctx)
	if err := c.authService.CompleteOnboarding(ctx, userID, &data, imageURL); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Onboarding completed"))
}
