package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
)

// RubricRepository handles database operations for rubric documents
type RubricRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRubricRepository creates a new RubricRepository
func NewRubricRepository(db *pgxpool.Pool) *RubricRepository {
	return &RubricRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts a rubric row or, when (subject, cohort, item_name)
// already exists, replaces its file path.
func (r *RubricRepository) Upsert(ctx context.Context, rubric *models.Rubric) error {
	sql, args, err := r.sb.Insert("rubrics").
		Columns("subject", "cohort", "item_name", "file_path").
		Values(rubric.Subject, rubric.Cohort, rubric.ItemName, rubric.FilePath).
		Suffix(`ON CONFLICT ON CONSTRAINT uq_rubrics_subject_cohort_item
			DO UPDATE SET file_path = EXCLUDED.file_path, updated_at = NOW()
			RETURNING id, created_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert rubric query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&rubric.ID, &rubric.CreatedAt)
	if err != nil {
		return fmt.Errorf("error upserting rubric: %w", err)
	}

	return nil
}

// GetByID retrieves a rubric by ID
func (r *RubricRepository) GetByID(ctx context.Context, id int64) (*models.Rubric, error) {
	sql, args, err := r.sb.Select("id", "subject", "cohort", "item_name", "file_path", "created_at").
		From("rubrics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get rubric query: %w", err)
	}

	var rubric models.Rubric
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rubric.ID, &rubric.Subject, &rubric.Cohort, &rubric.ItemName, &rubric.FilePath, &rubric.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRubricNotFound
		}
		return nil, fmt.Errorf("error retrieving rubric: %w", err)
	}

	return &rubric, nil
}

// GetAll retrieves rubrics filtered by subject and cohort. Empty filter
// values match everything.
func (r *RubricRepository) GetAll(ctx context.Context, subject models.Subject, cohort string) ([]*models.Rubric, error) {
	query := r.sb.Select("id", "subject", "cohort", "item_name", "file_path", "created_at").
		From("rubrics")

	if subject != "" && subject != models.SubjectAll {
		query = query.Where(squirrel.Eq{"subject": subject})
	}
	if cohort != "" {
		query = query.Where(squirrel.Eq{"cohort": cohort})
	}

	sql, args, err := query.OrderBy("subject ASC", "item_name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list rubrics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing rubrics: %w", err)
	}
	defer rows.Close()

	var rubrics []*models.Rubric
	for rows.Next() {
		var rubric models.Rubric
		if err := rows.Scan(&rubric.ID, &rubric.Subject, &rubric.Cohort, &rubric.ItemName, &rubric.FilePath, &rubric.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning rubric row: %w", err)
		}
		rubrics = append(rubrics, &rubric)
	}

	return rubrics, rows.Err()
}

// Delete removes a rubric row
func (r *RubricRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("rubrics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete rubric query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting rubric: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRubricNotFound
	}

	return nil
}
