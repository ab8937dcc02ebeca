package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/db"
)

// SystemRepository holds maintenance operations that span every table
type SystemRepository struct {
	db *pgxpool.Pool
}

// NewSystemRepository creates a new SystemRepository
func NewSystemRepository(db *pgxpool.Pool) *SystemRepository {
	return &SystemRepository{
		db: db,
	}
}

// ResetAll wipes students, companies, rubrics, audit entries, refresh
// tokens and all staff except the acting administrator, in one
// transaction. Either everything is removed or nothing is.
func (r *SystemRepository) ResetAll(ctx context.Context, keepStaffID int64) (*dto.ResetReport, error) {
	report := &dto.ResetReport{}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM audit_logs")
		if err != nil {
			return fmt.Errorf("error clearing audit logs: %w", err)
		}
		report.AuditEntries = tag.RowsAffected()

		tag, err = tx.Exec(ctx, "DELETE FROM rubrics")
		if err != nil {
			return fmt.Errorf("error clearing rubrics: %w", err)
		}
		report.Rubrics = tag.RowsAffected()

		tag, err = tx.Exec(ctx, "DELETE FROM students")
		if err != nil {
			return fmt.Errorf("error clearing students: %w", err)
		}
		report.Students = tag.RowsAffected()

		tag, err = tx.Exec(ctx, "DELETE FROM companies")
		if err != nil {
			return fmt.Errorf("error clearing companies: %w", err)
		}
		report.Companies = tag.RowsAffected()

		tag, err = tx.Exec(ctx, "DELETE FROM staff WHERE id <> $1", keepStaffID)
		if err != nil {
			return fmt.Errorf("error clearing staff: %w", err)
		}
		report.Staff = tag.RowsAffected()

		_, err = tx.Exec(ctx, "DELETE FROM refresh_tokens WHERE NOT (account_id = $1 AND role_type = 'ADMIN')", keepStaffID)
		if err != nil {
			return fmt.Errorf("error clearing refresh tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}
