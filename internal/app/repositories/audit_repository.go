package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

// AuditRepository handles the append-only audit_logs table. There is no
// update or delete path on purpose.
type AuditRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Record appends one audit entry. A failed audit write is logged but
// must not fail the change it describes, so callers decide whether to
// propagate the error.
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	sql, args, err := r.sb.Insert("audit_logs").
		Columns("matrix_number", "field_changed", "old_value", "new_value", "changed_by").
		Values(entry.MatrixNumber, entry.FieldChanged, entry.OldValue, entry.NewValue, entry.ChangedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build audit insert query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("matrixNumber", entry.MatrixNumber).Str("field", entry.FieldChanged).Msg("Error recording audit entry")
		return fmt.Errorf("error recording audit entry: %w", err)
	}

	return nil
}

// ListByMatrixNumber returns the newest entries for one student, capped
// at limit.
func (r *AuditRepository) ListByMatrixNumber(ctx context.Context, matrixNumber string, limit int) ([]*models.AuditEntry, error) {
	sql, args, err := r.sb.Select("id", "matrix_number", "field_changed", "old_value", "new_value", "changed_by", "created_at").
		From("audit_logs").
		Where(squirrel.Eq{"matrix_number": matrixNumber}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit list query: %w", err)
	}

	return r.queryEntries(ctx, sql, args)
}

// ListRecent returns the newest entries across all students, capped at
// limit.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	sql, args, err := r.sb.Select("id", "matrix_number", "field_changed", "old_value", "new_value", "changed_by", "created_at").
		From("audit_logs").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit list query: %w", err)
	}

	return r.queryEntries(ctx, sql, args)
}

func (r *AuditRepository) queryEntries(ctx context.Context, sql string, args []interface{}) ([]*models.AuditEntry, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.MatrixNumber, &entry.FieldChanged, &entry.OldValue, &entry.NewValue, &entry.ChangedBy, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning audit row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
