package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/auth"
	"github.com/campuslink/jobportal/internal/pkg/logger"
	"github.com/campuslink/jobportal/internal/pkg/validation"
)

// AuthService handles login, token refresh, onboarding and password changes
type AuthService struct {
	userRepo    *repositories.UserRepository
	studentRepo *repositories.StudentRepository
	schoolRepo  *repositories.SchoolRepository
	tokenRepo   *repositories.TokenRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	schoolRepo *repositories.SchoolRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		schoolRepo:  schoolRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
	}
}

// Login authenticates a user and issues a token pair. Unknown emails and
// wrong passwords both come back as ErrInvalidCredentials, disabled accounts
// as ErrAccountDisabled.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}
	return resp, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. The used
// token is revoked, so each refresh token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.LoginResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokenRepo.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:            accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             user,
	}, nil
}

// GetCurrentUser returns the authenticated user's account row
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every outstanding refresh token for the user.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < validation.PasswordMinLength {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke refresh tokens after password change")
	}
	return nil
}

// CompleteOnboarding fills in the role profile for a first-login school or
// student account and marks the account onboarded. Bulk-created accounts
// already carry a bare profile row, which is updated in place. imageURL is
// the already stored profile image or logo, when one was uploaded.
func (s *AuthService) CompleteOnboarding(ctx context.Context, userID int64, data *dto.OnboardingProfileData, imageURL *string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.OnboardingComplete {
		return apperrors.ErrOnboardingAlreadyDone
	}

	switch user.RoleType {
	case models.RoleStudent:
		if err := s.onboardStudent(ctx, user, data, imageURL); err != nil {
			return err
		}
	case models.RoleSchool:
		if err := s.onboardSchool(ctx, user, data, imageURL); err != nil {
			return err
		}
	default:
		return apperrors.NewBadRequestError("admin accounts do not require onboarding")
	}

	return s.userRepo.SetOnboardingComplete(ctx, userID)
}

func (s *AuthService) onboardStudent(ctx context.Context, user *models.User, data *dto.OnboardingProfileData, imageURL *string) error {
	if data.FirstName == nil || *data.FirstName == "" || data.LastName == nil || *data.LastName == "" {
		return apperrors.NewBadRequestError("firstName and lastName are required")
	}
	if data.Mobile != nil && *data.Mobile != "" && !validation.IsValidMobile(*data.Mobile) {
		return apperrors.NewBadRequestError("mobile number is not valid")
	}

	student, err := s.studentRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		student.FirstName = *data.FirstName
		student.LastName = *data.LastName
		student.Mobile = data.Mobile
		student.Bio = data.Bio
		student.Skills = data.Skills
		if imageURL != nil {
			student.ImageURL = imageURL
		}
		return s.studentRepo.Update(ctx, student)
	case errors.Is(err, apperrors.ErrStudentNotFound):
		return s.studentRepo.Create(ctx, &models.Student{
			UserID:    user.ID,
			FirstName: *data.FirstName,
			LastName:  *data.LastName,
			Mobile:    data.Mobile,
			Bio:       data.Bio,
			Skills:    data.Skills,
			ImageURL:  imageURL,
		})
	default:
		return err
	}
}

func (s *AuthService) onboardSchool(ctx context.Context, user *models.User, data *dto.OnboardingProfileData, imageURL *string) error {
	if data.SchoolName == nil || *data.SchoolName == "" {
		return apperrors.NewBadRequestError("schoolName is required")
	}
	if data.Pincode != nil && *data.Pincode != "" && !validation.IsValidPincode(*data.Pincode) {
		return apperrors.NewBadRequestError("pincode is not valid")
	}

	school, err := s.schoolRepo.GetByUserID(ctx, user.ID)
	switch {
	case err == nil:
		school.Name = *data.SchoolName
		school.Bio = data.Bio
		school.Website = data.Website
		school.Address = data.Address
		school.City = data.City
		school.State = data.State
		school.Pincode = data.Pincode
		if imageURL != nil {
			school.LogoURL = imageURL
		}
		if err := s.schoolRepo.Update(ctx, school); err != nil {
			return err
		}
	case errors.Is(err, apperrors.ErrSchoolNotFound):
		school = &models.School{
			UserID:  user.ID,
			Name:    *data.SchoolName,
			Bio:     data.Bio,
			Website: data.Website,
			Address: data.Address,
			City:    data.City,
			State:   data.State,
			Pincode: data.Pincode,
			LogoURL: imageURL,
		}
		if err := s.schoolRepo.Create(ctx, school); err != nil {
			return err
		}
	default:
		return err
	}

	if len(data.CategoryIDs) > 0 {
		if err := s.schoolRepo.SetCategories(ctx, school.ID, data.CategoryIDs); err != nil {
			return err
		}
	}
	return nil
}
