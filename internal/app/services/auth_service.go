package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/auth"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/email"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

const temporaryPasswordLength = 12

// AuthService handles login, token refresh and password management for
// the three portals. Students authenticate with their matrix number,
// staff and admins with their staff ID number.
type AuthService struct {
	studentRepo  *repositories.StudentRepository
	staffRepo    *repositories.StaffRepository
	tokenRepo    *repositories.TokenRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	staffRepo *repositories.StaffRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
) *AuthService {
	return &AuthService{
		studentRepo:  studentRepo,
		staffRepo:    staffRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Login verifies credentials for the requested portal and issues a token
// pair. Lookup failures and wrong passwords both come back as
// ErrInvalidCredentials so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)

	var accountID int64
	var name, passwordHash string
	var role models.RoleType

	switch req.Portal {
	case string(models.RoleStudent):
		student, err := s.studentRepo.GetByMatrixNumber(ctx, identifier)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				return nil, apperrors.ErrInvalidCredentials
			}
			return nil, err
		}
		if student.IsArchived {
			return nil, apperrors.ErrInvalidCredentials
		}
		accountID, name, passwordHash, role = student.ID, student.Name, student.PasswordHash, models.RoleStudent

	case string(models.RoleStaff), string(models.RoleAdmin):
		staff, err := s.staffRepo.GetByStaffIDNumber(ctx, identifier)
		if err != nil {
			if errors.Is(err, apperrors.ErrStaffNotFound) {
				return nil, apperrors.ErrInvalidCredentials
			}
			return nil, err
		}
		// The admin portal only admits accounts carrying the ADMIN role.
		if req.Portal == string(models.RoleAdmin) && staff.Role != models.RoleAdmin {
			return nil, apperrors.ErrPermissionDenied
		}
		accountID, name, passwordHash, role = staff.ID, staff.Name, staff.PasswordHash, staff.Role

	default:
		return nil, fmt.Errorf("%w: unknown portal %q", apperrors.ErrValidationFailed, req.Portal)
	}

	if !auth.CheckPassword(passwordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, accountID, identifier, name, role)
}

// RefreshToken trades a refresh token for a new pair. The old token is
// consumed regardless of outcome.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	accountID, role, err := s.tokenRepo.GetToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.DeleteToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to delete consumed refresh token")
	}

	var identifier, name string
	switch role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByID(ctx, accountID)
		if err != nil {
			return nil, apperrors.ErrTokenInvalid
		}
		identifier, name = student.MatrixNumber, student.Name
	default:
		staff, err := s.staffRepo.GetByID(ctx, accountID)
		if err != nil {
			return nil, apperrors.ErrTokenInvalid
		}
		identifier, name = staff.StaffIDNumber, staff.Name
	}

	return s.issueTokens(ctx, accountID, identifier, name, role)
}

func (s *AuthService) issueTokens(ctx context.Context, accountID int64, identifier, name string, role models.RoleType) (*dto.LoginResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(accountID, identifier, string(role))
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, accountID, role, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		Name:             name,
		Role:             string(role),
	}, nil
}

// Logout removes the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.DeleteToken(ctx, refreshToken)
}

// ChangePassword replaces the caller's password and revokes all of
// their refresh tokens.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, role models.RoleType, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	switch role {
	case models.RoleStudent:
		if err := s.studentRepo.UpdatePassword(ctx, accountID, hash); err != nil {
			return err
		}
	default:
		if err := s.staffRepo.UpdatePassword(ctx, accountID, hash); err != nil {
			return err
		}
	}

	if err := s.tokenRepo.DeleteAccountTokens(ctx, accountID, role); err != nil {
		logger.Warn().Err(err).Int64("accountID", accountID).Msg("Failed to revoke refresh tokens after password change")
	}

	return nil
}

// ForgotPassword issues a temporary password and mails it to the account
// holder. The stored hash cannot be reversed, so recovery always sets a
// fresh credential. The identifier and email must both match; on any
// mismatch nothing is changed and nothing is sent.
func (s *AuthService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	identifier := strings.TrimSpace(req.Identifier)
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))

	var accountID int64
	var name, storedEmail string
	var role models.RoleType

	switch req.Portal {
	case string(models.RoleStudent):
		student, err := s.studentRepo.GetByMatrixNumber(ctx, identifier)
		if err != nil {
			return apperrors.ErrInvalidCredentials
		}
		accountID, name, storedEmail, role = student.ID, student.Name, student.Email, models.RoleStudent
	default:
		staff, err := s.staffRepo.GetByStaffIDNumber(ctx, identifier)
		if err != nil {
			return apperrors.ErrInvalidCredentials
		}
		accountID, name, storedEmail, role = staff.ID, staff.Name, staff.Email, staff.Role
	}

	if storedEmail == "" || strings.ToLower(storedEmail) != reqEmail {
		return apperrors.ErrInvalidCredentials
	}

	temporaryPassword, err := auth.GenerateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("error generating temporary password: %w", err)
	}

	if err := s.ChangePassword(ctx, accountID, role, temporaryPassword); err != nil {
		return err
	}

	// The password is rotated before the mail goes out. When the send
	// fails the caller sees the error and rerunning recovery issues a
	// fresh temporary password.
	if err := s.emailService.SendPasswordRecoveryEmail(storedEmail, name, temporaryPassword); err != nil {
		logger.Error().Err(err).Str("identifier", identifier).Msg("Failed to send recovery email")
		return fmt.Errorf("error sending recovery email: %w", err)
	}

	logger.Info().Str("identifier", identifier).Msg("Password recovery email sent")
	return nil
}
