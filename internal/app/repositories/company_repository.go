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
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new company and fills in its generated ID
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Insert("companies").
		Columns("name", "address", "state").
		Values(company.Name, company.Address, company.State).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID)
	if err != nil {
		return fmt.Errorf("error creating company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	sql, args, err := r.sb.Select("id", "name", "address", "state").
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	var company models.Company
	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.Name, &company.Address, &company.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return &company, nil
}

// GetByName retrieves a company by exact name. Used by bulk import to
// reuse existing rows instead of inserting duplicates.
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	sql, args, err := r.sb.Select("id", "name", "address", "state").
		From("companies").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	var company models.Company
	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.Name, &company.Address, &company.State)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return &company, nil
}

// GetAll retrieves companies with optional search and pagination
func (r *CompanyRepository) GetAll(ctx context.Context, search, state string, page, pageSize int) ([]*models.Company, int64, error) {
	query := r.sb.Select("id", "name", "address", "state").
		From("companies")

	if search != "" {
		query = query.Where(squirrel.ILike{"name": "%" + search + "%"})
	}
	if state != "" {
		query = query.Where(squirrel.Eq{"state": state})
	}

	query = query.OrderBy("name ASC")
	offset := (page - 1) * pageSize
	query = query.Limit(uint64(pageSize)).Offset(uint64(offset))

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	var total int64
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.Address, &company.State, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, &company)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// GetNamesByIDs resolves a set of company IDs to (name, state) pairs
func (r *CompanyRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]models.Company, error) {
	companies := make(map[int64]models.Company)
	if len(ids) == 0 {
		return companies, nil
	}

	sql, args, err := r.sb.Select("id", "name", "address", "state").
		From("companies").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build company names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error resolving company names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var company models.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.Address, &company.State); err != nil {
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies[company.ID] = company
	}

	return companies, rows.Err()
}

// ExistsByID checks whether a company row exists
func (r *CompanyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking company existence: %w", err)
	}
	return exists, nil
}

// Update replaces the mutable fields of a company row
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Update("companies").
		Set("name", company.Name).
		Set("address", company.Address).
		Set("state", company.State).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": company.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}

// Delete removes a company row. Student columns referencing it are set
// to null by the schema's ON DELETE SET NULL.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete company query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}
