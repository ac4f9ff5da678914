package seed

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/auth"
)

// Bootstrap admin credentials. The password must be changed after the
// first login.
const (
	defaultAdminEmail    = "admin@jobportal.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData seeds the bootstrap admin account and the default
// settings rows. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	settingRepo := repositories.NewSettingRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hash, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &models.User{
				Name:               "Portal Admin",
				Email:              defaultAdminEmail,
				Password:           hash,
				RoleType:           models.RoleAdmin,
				OnboardingComplete: true,
				IsActive:           true,
			}
			if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else if err == nil {
				lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
			}
		}
	}

	// Mark ceiling for sub skill assessments; only written when missing so
	// admin changes survive restarts.
	if _, err := settingRepo.Get(ctx, models.SettingSubSkillMarkLimit); err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			lgr.Error().Err(err).Msg("Error reading sub skill mark limit setting")
			finalErr = errors.Join(finalErr, err)
		} else if err := settingRepo.Upsert(ctx, models.SettingSubSkillMarkLimit,
			strconv.Itoa(models.DefaultSubSkillMarkLimit)); err != nil {
			lgr.Error().Err(err).Msg("Error seeding sub skill mark limit setting")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
