package dto

import "github.com/campuslink/jobportal/internal/app/models"

// LoginRequest represents the credentials for a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@school.edu"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse carries the issued token pair and the authenticated user
type LoginResponse struct {
	Token            string       `json:"token"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn"`        // seconds
	RefreshExpiresIn int          `json:"refreshExpiresIn"` // seconds
	User             *models.User `json:"user"`
}

// RefreshTokenRequest represents a token refresh attempt
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest represents a password change for the current user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// OnboardingProfileData is the profileData JSON part of the multipart
// complete-onboarding request. Student and school accounts fill different
// subsets of the fields.
type OnboardingProfileData struct {
	// Student fields
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Mobile    *string `json:"mobile,omitempty"`
	Skills    *string `json:"skills,omitempty"`

	// School fields
	SchoolName  *string `json:"schoolName,omitempty"`
	Website     *string `json:"website,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Pincode     *string `json:"pincode,omitempty"`
	CategoryIDs []int64 `json:"categoryIds,omitempty"`

	// Shared
	Bio *string `json:"bio,omitempty"`
}
