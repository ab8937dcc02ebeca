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

var staffColumns = []string{"id", "staff_id_number", "name", "email", "department", "password_hash", "role", "created_at"}

// StaffRepository handles database operations for staff accounts
type StaffRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	err := row.Scan(&s.ID, &s.StaffIDNumber, &s.Name, &s.Email, &s.Department, &s.PasswordHash, &s.Role, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new staff row and fills in its generated ID
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	sql, args, err := r.sb.Insert("staff").
		Columns("staff_id_number", "name", "email", "department", "password_hash", "role").
		Values(staff.StaffIDNumber, staff.Name, staff.Email, staff.Department, staff.PasswordHash, staff.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create staff query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&staff.ID, &staff.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_staff_staff_id_number") {
			return apperrors.ErrDuplicateStaffID
		}
		logger.Error().Err(err).Str("staffIdNumber", staff.StaffIDNumber).Msg("Error creating staff")
		return fmt.Errorf("error creating staff: %w", err)
	}

	return nil
}

// GetByID retrieves a staff member by primary key
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get staff query: %w", err)
	}

	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error retrieving staff: %w", err)
	}

	return staff, nil
}

// GetByStaffIDNumber retrieves a staff member by its business key
func (r *StaffRepository) GetByStaffIDNumber(ctx context.Context, staffIDNumber string) (*models.Staff, error) {
	sql, args, err := r.sb.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"staff_id_number": staffIDNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get staff query: %w", err)
	}

	staff, err := scanStaff(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error retrieving staff: %w", err)
	}

	return staff, nil
}

// GetAll retrieves staff with optional department filter and pagination
func (r *StaffRepository) GetAll(ctx context.Context, department, search string, page, pageSize int) ([]*models.Staff, int64, error) {
	query := r.sb.Select(staffColumns...).
		From("staff")

	if department != "" {
		query = query.Where(squirrel.Eq{"department": department})
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"staff_id_number": pattern},
		})
	}

	query = query.OrderBy("name ASC")
	offset := (page - 1) * pageSize
	query = query.Limit(uint64(pageSize)).Offset(uint64(offset))

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list staff query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing staff: %w", err)
	}
	defer rows.Close()

	var staffList []*models.Staff
	var total int64
	for rows.Next() {
		var s models.Staff
		if err := rows.Scan(&s.ID, &s.StaffIDNumber, &s.Name, &s.Email, &s.Department, &s.PasswordHash, &s.Role, &s.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning staff row: %w", err)
		}
		staffList = append(staffList, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return staffList, total, nil
}

// GetNamesByIDs resolves a set of staff IDs to display names
func (r *StaffRepository) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string)
	if len(ids) == 0 {
		return names, nil
	}

	sql, args, err := r.sb.Select("id", "name").
		From("staff").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build staff names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error resolving staff names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning staff name row: %w", err)
		}
		names[id] = name
	}

	return names, rows.Err()
}

// ExistsByID checks whether a staff row exists
func (r *StaffRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM staff WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking staff existence: %w", err)
	}
	return exists, nil
}

// Update replaces the mutable profile fields of a staff row
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	sql, args, err := r.sb.Update("staff").
		Set("name", staff.Name).
		Set("email", staff.Email).
		Set("department", staff.Department).
		Set("role", staff.Role).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": staff.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update staff query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating staff: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStaffNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *StaffRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	sql, args, err := r.sb.Update("staff").
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStaffNotFound
	}

	return nil
}

// Delete removes a staff row. Student columns referencing it are set to
// null by the schema's ON DELETE SET NULL.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete staff query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting staff: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStaffNotFound
	}

	return nil
}
