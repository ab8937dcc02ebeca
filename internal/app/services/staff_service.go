package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/auth"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/validation"
)

// StaffService handles staff account operations
type StaffService struct {
	staffRepo *repositories.StaffRepository
}

// NewStaffService creates a new staff service instance
func NewStaffService(staffRepo *repositories.StaffRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// CreateStaff registers a new staff account
func (s *StaffService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*models.Staff, error) {
	staffIDNumber := strings.TrimSpace(req.StaffIDNumber)
	if !validation.IsValidStaffIDNumber(staffIDNumber) {
		return nil, fmt.Errorf("%w: invalid staff ID number", apperrors.ErrValidationFailed)
	}
	if req.Email != "" && !validation.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidationFailed)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	staff := &models.Staff{
		StaffIDNumber: staffIDNumber,
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Department:    strings.TrimSpace(req.Department),
		PasswordHash:  hash,
		Role:          models.RoleStaff,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	logger.Info().Str("staffIdNumber", staff.StaffIDNumber).Msg("Staff created")
	return staff, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id int64) (*models.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// ListStaff retrieves staff with optional filters and pagination
func (s *StaffService) ListStaff(ctx context.Context, department, search string, page, pageSize int) ([]*models.Staff, int64, error) {
	return s.staffRepo.GetAll(ctx, department, search, page, pageSize)
}

// UpdateStaff replaces the mutable profile fields of a staff account
func (s *StaffService) UpdateStaff(ctx context.Context, id int64, name, email, department string) (*models.Staff, error) {
	if email != "" && !validation.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidationFailed)
	}

	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		staff.Name = strings.TrimSpace(name)
	}
	if email != "" {
		staff.Email = strings.TrimSpace(email)
	}
	if department != "" {
		staff.Department = strings.TrimSpace(department)
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes a staff account. Assignment columns referencing it
// are nulled by the schema.
func (s *StaffService) DeleteStaff(ctx context.Context, id int64) error {
	return s.staffRepo.Delete(ctx, id)
}
