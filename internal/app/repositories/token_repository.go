package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/dberrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a new refresh token for an account
func (r *TokenRepository) CreateToken(ctx context.Context, token string, accountID int64, roleType models.RoleType, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "account_id", "role_type", "expires_at", "created_at").
		Values(token, accountID, roleType, expiresAt, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_refresh_tokens_token") {
			logger.Warn().Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error creating refresh token")
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetToken looks up a refresh token and returns its account and role.
// Expired tokens are rejected with ErrTokenExpired.
func (r *TokenRepository) GetToken(ctx context.Context, token string) (int64, models.RoleType, error) {
	var accountID int64
	var roleType models.RoleType
	var expiresAt time.Time

	sql, args, err := r.sb.Select("account_id", "role_type", "expires_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, "", fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&accountID, &roleType, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", apperrors.ErrTokenInvalid
		}
		return 0, "", fmt.Errorf("error retrieving token: %w", err)
	}

	if expiresAt.Before(time.Now()) {
		return 0, "", apperrors.ErrTokenExpired
	}

	return accountID, roleType, nil
}

// DeleteToken removes one refresh token
func (r *TokenRepository) DeleteToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting token: %w", err)
	}

	return nil
}

// DeleteAccountTokens removes every refresh token held by an account.
// Called on password change so stolen tokens stop working.
func (r *TokenRepository) DeleteAccountTokens(ctx context.Context, accountID int64, roleType models.RoleType) error {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"account_id": accountID, "role_type": roleType}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete account tokens query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting account tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens removes expired refresh tokens
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	deletedCount := cmdTag.RowsAffected()
	if deletedCount > 0 {
		logger.Info().Int64("deletedCount", deletedCount).Msg("Cleaned up expired refresh tokens")
	}

	return deletedCount, nil
}
