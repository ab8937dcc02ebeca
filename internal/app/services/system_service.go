package services

import (
	"context"
	"fmt"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

// resetConfirmation is the phrase an administrator must type to wipe
// all data
const resetConfirmation = "RESET ALL DATA"

// SystemService handles the administrative danger zone
type SystemService struct {
	systemRepo *repositories.SystemRepository
}

// NewSystemService creates a new system service instance
func NewSystemService(systemRepo *repositories.SystemRepository) *SystemService {
	return &SystemService{
		systemRepo: systemRepo,
	}
}

// Reset wipes every domain table, keeping only the acting
// administrator's account so the system stays reachable.
func (s *SystemService) Reset(ctx context.Context, actingStaffID int64, confirmation string) (*dto.ResetReport, error) {
	if confirmation != resetConfirmation {
		return nil, fmt.Errorf("%w: confirmation phrase must be %q", apperrors.ErrValidationFailed, resetConfirmation)
	}

	report, err := s.systemRepo.ResetAll(ctx, actingStaffID)
	if err != nil {
		return nil, err
	}

	logger.Warn().
		Int64("actingStaffID", actingStaffID).
		Int64("students", report.Students).
		Int64("companies", report.Companies).
		Int64("staff", report.Staff).
		Msg("Full data reset executed")

	return report, nil
}
