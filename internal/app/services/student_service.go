package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/auth"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/objectstore"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/validation"
)

const documentsBucket = "student-documents"

// StudentService handles student lifecycle operations: creation,
// profile updates, cohort archiving and form document uploads.
type StudentService struct {
	studentRepo *repositories.StudentRepository
	staffRepo   *repositories.StaffRepository
	companyRepo *repositories.CompanyRepository
	auditRepo   *repositories.AuditRepository
	storage     objectstore.Store
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	staffRepo *repositories.StaffRepository,
	companyRepo *repositories.CompanyRepository,
	auditRepo *repositories.AuditRepository,
	storage objectstore.Store,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		staffRepo:   staffRepo,
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
		storage:     storage,
	}
}

// CreateStudent registers a new student. The initial password defaults
// to the matrix number when none is supplied.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	matrixNumber := strings.TrimSpace(req.MatrixNumber)
	if !validation.IsValidMatrixNumber(matrixNumber) {
		return nil, fmt.Errorf("%w: invalid matrix number", apperrors.ErrValidationFailed)
	}
	if req.Email != "" && !validation.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidationFailed)
	}

	password := req.Password
	if password == "" {
		password = matrixNumber
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		MatrixNumber: matrixNumber,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Program:      strings.TrimSpace(req.Program),
		Cohort:       strings.TrimSpace(req.Cohort),
		PasswordHash: hash,
		FYPTitle:     strings.TrimSpace(req.FYPTitle),

		FYP1CompanyID:  req.FYP1CompanyID,
		LICompanyID:    req.LICompanyID,
		FYP1SVID:       req.FYP1SVID,
		FYP2SVID:       req.FYP2SVID,
		LIUniSVID:      req.LIUniSVID,
		LIIndustrySVID: req.LIIndustrySVID,
		FYP1PanelID:    req.FYP1PanelID,
		FYP2PanelID:    req.FYP2PanelID,
	}

	if err := s.validateReferences(ctx, student); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Str("matrixNumber", student.MatrixNumber).Msg("Student created")
	return student, nil
}

// validateReferences checks every initial assignment pointer against the
// live staff and company tables.
func (s *StudentService) validateReferences(ctx context.Context, student *models.Student) error {
	checkStaff := func(name string, ref *int64) error {
		if ref == nil {
			return nil
		}
		exists, err := s.staffRepo.ExistsByID(ctx, *ref)
		if err != nil {
			return fmt.Errorf("error checking reference: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s id %d", apperrors.ErrInvalidReference, name, *ref)
		}
		return nil
	}
	checkCompany := func(name string, ref *int64) error {
		if ref == nil {
			return nil
		}
		exists, err := s.companyRepo.ExistsByID(ctx, *ref)
		if err != nil {
			return fmt.Errorf("error checking reference: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s id %d", apperrors.ErrInvalidReference, name, *ref)
		}
		return nil
	}

	checks := []error{
		checkStaff("FYP 1 SV", student.FYP1SVID),
		checkStaff("FYP 2 SV", student.FYP2SVID),
		checkStaff("LI Uni SV", student.LIUniSVID),
		checkStaff("LI Industry SV", student.LIIndustrySVID),
		checkStaff("FYP 1 Panel", student.FYP1PanelID),
		checkStaff("FYP 2 Panel", student.FYP2PanelID),
		checkCompany("FYP 1 Company", student.FYP1CompanyID),
		checkCompany("LI Company", student.LICompanyID),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// GetStudent retrieves a student by matrix number.
func (s *StudentService) GetStudent(ctx context.Context, matrixNumber string) (*models.Student, error) {
	return s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
}

// GetStudentData retrieves the dashboard projection for one student.
func (s *StudentService) GetStudentData(ctx context.Context, matrixNumber string) (*dto.StudentData, error) {
	student, err := s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return nil, err
	}

	staffIDs, companyIDs := collectReferenceIDs([]*models.Student{student})
	staffNames, err := s.staffRepo.GetNamesByIDs(ctx, staffIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving staff names: %w", err)
	}
	companies, err := s.companyRepo.GetNamesByIDs(ctx, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving companies: %w", err)
	}

	data := buildStudentData(student, staffNames, companies)
	return &data, nil
}

// ListStudents retrieves students with filtering and pagination, as
// dashboard projections.
func (s *StudentService) ListStudents(ctx context.Context, filters dto.VisibilityFilters, includeArchived bool, page, pageSize int) ([]dto.StudentData, int64, error) {
	students, total, err := s.studentRepo.GetAll(ctx, filters, includeArchived, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	staffIDs, companyIDs := collectReferenceIDs(students)
	staffNames, err := s.staffRepo.GetNamesByIDs(ctx, staffIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("error resolving staff names: %w", err)
	}
	companies, err := s.companyRepo.GetNamesByIDs(ctx, companyIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("error resolving companies: %w", err)
	}

	rows := make([]dto.StudentData, 0, len(students))
	for _, student := range students {
		rows = append(rows, buildStudentData(student, staffNames, companies))
	}
	return rows, total, nil
}

// UpdateStudent applies a partial profile update.
func (s *StudentService) UpdateStudent(ctx context.Context, matrixNumber string, req *dto.UpdateStudentRequest) error {
	if req.Email != nil && *req.Email != "" && !validation.IsValidEmail(*req.Email) {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return err
	}

	return s.studentRepo.UpdateProfile(ctx, student.ID, req)
}

// DeleteStudent removes a student row.
func (s *StudentService) DeleteStudent(ctx context.Context, matrixNumber string) error {
	student, err := s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, student.ID)
}

// SetArchived archives or restores a single student and records the
// change in the audit trail.
func (s *StudentService) SetArchived(ctx context.Context, matrixNumber string, archived bool, changedBy string) error {
	if err := s.studentRepo.SetArchived(ctx, matrixNumber, archived); err != nil {
		return err
	}

	entry := &models.AuditEntry{
		MatrixNumber: matrixNumber,
		FieldChanged: "Archived",
		OldValue:     strconv.FormatBool(!archived),
		NewValue:     strconv.FormatBool(archived),
		ChangedBy:    changedBy,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		logger.Error().Err(err).Str("matrixNumber", matrixNumber).Msg("Failed to record archive audit entry")
	}
	return nil
}

// ArchiveCohort flags every student in the named cohort as archived.
// The cohort string must match exactly; "2023" does not archive
// "2023/2024". Returns the number of students archived.
func (s *StudentService) ArchiveCohort(ctx context.Context, cohort string) (int64, error) {
	if strings.TrimSpace(cohort) == "" {
		return 0, fmt.Errorf("%w: cohort is required", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.SetArchivedByCohort(ctx, cohort, true)
}

// UnarchiveCohort clears the archived flag for the named cohort.
func (s *StudentService) UnarchiveCohort(ctx context.Context, cohort string) (int64, error) {
	if strings.TrimSpace(cohort) == "" {
		return 0, fmt.Errorf("%w: cohort is required", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.SetArchivedByCohort(ctx, cohort, false)
}

// UploadDocument stores a form PDF in the object store and records its
// path on the student row.
func (s *StudentService) UploadDocument(ctx context.Context, matrixNumber string, docType models.DocumentType, data []byte, contentType, changedBy string) (string, error) {
	var column, field string
	switch docType {
	case models.DocLaporDiri:
		column, field = "form_lapor_diri", "Lapor Diri"
	case models.DocAkuJanji:
		column, field = "form_aku_janji", "Aku Janji"
	default:
		return "", fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidationFailed, docType)
	}

	student, err := s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/%s_%d.pdf", matrixNumber, docType, time.Now().Unix())
	if err := s.storage.Upload(ctx, documentsBucket, path, data, contentType); err != nil {
		return "", err
	}

	if err := s.studentRepo.SetColumn(ctx, matrixNumber, column, path); err != nil {
		return "", err
	}

	oldValue := "None"
	if column == "form_lapor_diri" && student.FormLaporDiri != "" {
		oldValue = student.FormLaporDiri
	}
	if column == "form_aku_janji" && student.FormAkuJanji != "" {
		oldValue = student.FormAkuJanji
	}

	entry := &models.AuditEntry{
		MatrixNumber: matrixNumber,
		FieldChanged: field,
		OldValue:     oldValue,
		NewValue:     path,
		ChangedBy:    changedBy,
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		logger.Error().Err(err).Str("matrixNumber", matrixNumber).Str("field", field).Msg("Failed to record document audit entry")
	}

	return path, nil
}

// DocumentURL resolves a stored document path to a time-limited URL.
func (s *StudentService) DocumentURL(ctx context.Context, matrixNumber string, docType models.DocumentType) (string, error) {
	student, err := s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return "", err
	}

	var path string
	switch docType {
	case models.DocLaporDiri:
		path = student.FormLaporDiri
	case models.DocAkuJanji:
		path = student.FormAkuJanji
	default:
		return "", fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidationFailed, docType)
	}

	if path == "" {
		return "", apperrors.NewNotFoundError("document not uploaded")
	}

	url, err := s.storage.SignedURL(ctx, documentsBucket, path, time.Hour)
	if err != nil {
		// Fall back to the public URL when signing is unavailable.
		logger.Warn().Err(err).Str("path", path).Msg("Signed URL unavailable, using public URL")
		return s.storage.PublicURL(documentsBucket, path), nil
	}
	return url, nil
}
