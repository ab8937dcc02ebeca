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
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/dberrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
)

// studentColumns is the canonical select list for student rows.
var studentColumns = []string{
	"id", "matrix_number", "name", "email", "program", "cohort",
	"password_hash", "fyp_title", "is_archived",
	"form_lapor_diri", "form_aku_janji",
	"fyp1_company_id", "fyp2_company_id", "li_company_id",
	"fyp1_sv_id", "fyp2_sv_id", "li_uni_sv_id", "li_industry_sv_id",
	"fyp1_panel_id", "fyp2_panel_id",
	"fyp1_marks", "fyp2_marks", "li_marks",
	"created_at", "updated_at",
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.MatrixNumber, &s.Name, &s.Email, &s.Program, &s.Cohort,
		&s.PasswordHash, &s.FYPTitle, &s.IsArchived,
		&s.FormLaporDiri, &s.FormAkuJanji,
		&s.FYP1CompanyID, &s.FYP2CompanyID, &s.LICompanyID,
		&s.FYP1SVID, &s.FYP2SVID, &s.LIUniSVID, &s.LIIndustrySVID,
		&s.FYP1PanelID, &s.FYP2PanelID,
		&s.FYP1Marks, &s.FYP2Marks, &s.LIMarks,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student and fills in its generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("matrix_number", "name", "email", "program", "cohort",
			"password_hash", "fyp_title",
			"fyp1_company_id", "fyp2_company_id", "li_company_id",
			"fyp1_sv_id", "fyp2_sv_id", "li_uni_sv_id", "li_industry_sv_id",
			"fyp1_panel_id", "fyp2_panel_id").
		Values(student.MatrixNumber, student.Name, student.Email, student.Program, student.Cohort,
			student.PasswordHash, student.FYPTitle,
			student.FYP1CompanyID, student.FYP2CompanyID, student.LICompanyID,
			student.FYP1SVID, student.FYP2SVID, student.LIUniSVID, student.LIIndustrySVID,
			student.FYP1PanelID, student.FYP2PanelID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_students_matrix_number") {
			return apperrors.ErrDuplicateMatrixNumber
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInvalidReference
		}
		logger.Error().Err(err).Str("matrixNumber", student.MatrixNumber).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by primary key
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByMatrixNumber retrieves a student by its business key
func (r *StudentRepository) GetByMatrixNumber(ctx context.Context, matrixNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"matrix_number": matrixNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetAll retrieves students with filtering and pagination. Archived rows
// are excluded unless includeArchived is set.
func (r *StudentRepository) GetAll(ctx context.Context, filters dto.VisibilityFilters, includeArchived bool, page, pageSize int) ([]*models.Student, int64, error) {
	query := r.sb.Select(studentColumns...).
		From("students")

	if !includeArchived {
		query = query.Where(squirrel.Eq{"is_archived": false})
	}
	query, ok := applyListFilters(query, filters)
	if !ok {
		return nil, 0, nil
	}

	query = query.OrderBy("matrix_number ASC")
	offset := (page - 1) * pageSize
	query = query.Limit(uint64(pageSize)).Offset(uint64(offset))

	countQuery := query.Column("COUNT(*) OVER()")
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var total int64
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.MatrixNumber, &s.Name, &s.Email, &s.Program, &s.Cohort,
			&s.PasswordHash, &s.FYPTitle, &s.IsArchived,
			&s.FormLaporDiri, &s.FormAkuJanji,
			&s.FYP1CompanyID, &s.FYP2CompanyID, &s.LICompanyID,
			&s.FYP1SVID, &s.FYP2SVID, &s.LIUniSVID, &s.LIIndustrySVID,
			&s.FYP1PanelID, &s.FYP2PanelID,
			&s.FYP1Marks, &s.FYP2Marks, &s.LIMarks,
			&s.CreatedAt, &s.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// applyListFilters narrows a student select by the dashboard filters.
// The second return value is false when the staff/role mask resolves to
// no columns, which makes the result set empty by construction.
func applyListFilters(query squirrel.SelectBuilder, filters dto.VisibilityFilters) (squirrel.SelectBuilder, bool) {
	if filters.Program != "" {
		query = query.Where(squirrel.Eq{"program": filters.Program})
	}
	if filters.Cohort != "" {
		query = query.Where(squirrel.Eq{"cohort": filters.Cohort})
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"matrix_number": pattern},
		})
	}
	if filters.State != "" {
		query = query.Where(squirrel.Expr(
			"(fyp1_company_id IN (SELECT id FROM companies WHERE state = ?)"+
				" OR li_company_id IN (SELECT id FROM companies WHERE state = ?))",
			filters.State, filters.State))
	}
	if filters.StaffID != 0 {
		mask := assignmentColumnsFor(models.NormalizeSubject(filters.Subject), models.NormalizeRole(filters.Role))
		if len(mask) == 0 {
			return query, false
		}
		or := squirrel.Or{}
		for _, column := range mask {
			or = append(or, squirrel.Eq{column: filters.StaffID})
		}
		query = query.Where(or)
	}
	return query, true
}

// GetAllUnpaged returns every student matching the filters, for
// aggregate views that must see the whole set.
func (r *StudentRepository) GetAllUnpaged(ctx context.Context, filters dto.VisibilityFilters, includeArchived bool) ([]*models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students")

	if !includeArchived {
		query = query.Where(squirrel.Eq{"is_archived": false})
	}
	query, ok := applyListFilters(query, filters)
	if !ok {
		return nil, nil
	}

	sql, args, err := query.OrderBy("matrix_number ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByAssignedStaff retrieves the non-archived students whose assignment
// columns reference staffID, narrowed by subject and role.
func (r *StudentRepository) GetByAssignedStaff(ctx context.Context, staffID int64, subject models.Subject, role models.AssignmentRole) ([]*models.Student, error) {
	mask := assignmentColumnsFor(subject, role)
	if len(mask) == 0 {
		return nil, nil
	}

	or := squirrel.Or{}
	for _, column := range mask {
		or = append(or, squirrel.Eq{column: staffID})
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"is_archived": false}).
		Where(or).
		OrderBy("matrix_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assigned students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing assigned students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.MatrixNumber, &s.Name, &s.Email, &s.Program, &s.Cohort,
			&s.PasswordHash, &s.FYPTitle, &s.IsArchived,
			&s.FormLaporDiri, &s.FormAkuJanji,
			&s.FYP1CompanyID, &s.FYP2CompanyID, &s.LICompanyID,
			&s.FYP1SVID, &s.FYP2SVID, &s.LIUniSVID, &s.LIIndustrySVID,
			&s.FYP1PanelID, &s.FYP2PanelID,
			&s.FYP1Marks, &s.FYP2Marks, &s.LIMarks,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// assignmentColumnsFor resolves the subject/role pair to the student
// columns that may hold a staff reference. Panels do not exist for LI,
// so that combination yields no columns.
func assignmentColumnsFor(subject models.Subject, role models.AssignmentRole) []string {
	supervisors := map[models.Subject][]string{
		models.SubjectFYP1: {"fyp1_sv_id"},
		models.SubjectFYP2: {"fyp2_sv_id"},
		models.SubjectLI:   {"li_uni_sv_id", "li_industry_sv_id"},
	}
	panels := map[models.Subject][]string{
		models.SubjectFYP1: {"fyp1_panel_id"},
		models.SubjectFYP2: {"fyp2_panel_id"},
		models.SubjectLI:   nil,
	}

	subjects := []models.Subject{subject}
	if subject == models.SubjectAll || !models.ValidSubject(subject) {
		subjects = []models.Subject{models.SubjectFYP1, models.SubjectFYP2, models.SubjectLI}
	}

	var columns []string
	for _, subj := range subjects {
		if role != models.RolePanelOnly {
			columns = append(columns, supervisors[subj]...)
		}
		if role != models.RoleSupervisorOnly {
			columns = append(columns, panels[subj]...)
		}
	}
	return columns
}

// UpdateProfile applies a partial profile update. Nil request fields are
// left untouched.
func (r *StudentRepository) UpdateProfile(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	query := r.sb.Update("students").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})

	if req.Name != nil {
		query = query.Set("name", *req.Name)
	}
	if req.Email != nil {
		query = query.Set("email", *req.Email)
	}
	if req.Program != nil {
		query = query.Set("program", *req.Program)
	}
	if req.Cohort != nil {
		query = query.Set("cohort", *req.Cohort)
	}
	if req.FYPTitle != nil {
		query = query.Set("fyp_title", *req.FYPTitle)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUpdateRejected
	}

	return nil
}

// SetColumn writes one assignment column on a student row. A nil value
// clears the column.
func (r *StudentRepository) SetColumn(ctx context.Context, matrixNumber, column string, value interface{}) error {
	sql, args, err := r.sb.Update("students").
		Set(column, value).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"matrix_number": matrixNumber}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set column query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInvalidReference
		}
		return fmt.Errorf("error setting student column: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUpdateRejected
	}

	return nil
}

// SetColumnIfNull fills a column only when it is currently null. The
// COALESCE keeps a concurrent writer's value in place, so the carry-over
// can never overwrite existing data. It returns true when the column now
// differs from its prior state.
func (r *StudentRepository) SetColumnIfNull(ctx context.Context, matrixNumber, column string, value int64) (bool, error) {
	sql := fmt.Sprintf(
		`UPDATE students SET %s = COALESCE(%s, $1), updated_at = NOW() WHERE matrix_number = $2 AND %s IS NULL`,
		column, column, column)

	cmdTag, err := r.db.Exec(ctx, sql, value, matrixNumber)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return false, apperrors.ErrInvalidReference
		}
		return false, fmt.Errorf("error filling student column: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// UpdateMarks writes the given mark columns on a student row. The map
// holds column name to value; a nil value clears the mark.
func (r *StudentRepository) UpdateMarks(ctx context.Context, matrixNumber string, marks map[string]*float64) error {
	if len(marks) == 0 {
		return nil
	}

	query := r.sb.Update("students").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"matrix_number": matrixNumber})
	for column, value := range marks {
		query = query.Set(column, value)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update marks query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating marks: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUpdateRejected
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	sql, args, err := r.sb.Update("students").
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
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetArchived flips the archived flag on a single student
func (r *StudentRepository) SetArchived(ctx context.Context, matrixNumber string, archived bool) error {
	sql, args, err := r.sb.Update("students").
		Set("is_archived", archived).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"matrix_number": matrixNumber}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build archive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error archiving student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// archiveCohortQuery updates the archived flag for the students whose
// cohort equals the given string. The match is exact and case
// sensitive; rows already in the target state are left out of the
// affected count.
func archiveCohortQuery(sb squirrel.StatementBuilderType, cohort string, archived bool) squirrel.UpdateBuilder {
	return sb.Update("students").
		Set("is_archived", archived).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"cohort": cohort}).
		Where(squirrel.Eq{"is_archived": !archived})
}

// SetArchivedByCohort flips the archived flag on every student whose
// cohort matches exactly. Returns the number of rows changed.
func (r *StudentRepository) SetArchivedByCohort(ctx context.Context, cohort string, archived bool) (int64, error) {
	sql, args, err := archiveCohortQuery(r.sb, cohort, archived).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build archive query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error archiving cohort: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// Delete removes a student row
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
