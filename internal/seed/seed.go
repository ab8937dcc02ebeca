package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/fems12/WBL-Management-Sytem/internal/app/models"
	appRepos "github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/config"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/auth"
)

// CreateDefaultData ensures the administrator account from the config
// exists so the admin portal is reachable on a fresh database.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	staffRepo := appRepos.NewStaffRepository(dbPool)

	_, err := staffRepo.GetByStaffIDNumber(ctx, cfg.Admin.StaffIDNumber)
	if err == nil {
		lgr.Info().Str("staffIdNumber", cfg.Admin.StaffIDNumber).Msg("Admin account already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrStaffNotFound) {
		lgr.Error().Err(err).Msg("Error checking for admin account")
		return err
	}

	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin password configured, skipping admin account creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin account...")

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.Staff{
		StaffIDNumber: cfg.Admin.StaffIDNumber,
		Name:          "System Administrator",
		Email:         cfg.Admin.Email,
		PasswordHash:  hashed,
		Role:          appModels.RoleAdmin,
	}
	if err := staffRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin account created successfully")
	return nil
}
