package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/validation"
)

// AssignmentStudentStore is the student access the assignment store needs.
type AssignmentStudentStore interface {
	GetByMatrixNumber(ctx context.Context, matrixNumber string) (*models.Student, error)
	SetColumn(ctx context.Context, matrixNumber, column string, value interface{}) error
}

// ReferenceChecker reports whether a referenced row exists.
type ReferenceChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// AssignmentService writes per-student assignment fields addressed by
// their human-facing names ("FYP 1 SV", "LI Company", ...). Every write
// validates the value against the field's kind, checks references
// against the live staff/company tables, and leaves an audit record.
type AssignmentService struct {
	students  AssignmentStudentStore
	staff     ReferenceChecker
	companies ReferenceChecker
	audit     AuditRecorder
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(students AssignmentStudentStore, staff, companies ReferenceChecker, audit AuditRecorder) *AssignmentService {
	return &AssignmentService{
		students:  students,
		staff:     staff,
		companies: companies,
		audit:     audit,
	}
}

// SetField writes one assignment field. A nil value clears the field.
func (s *AssignmentService) SetField(ctx context.Context, matrixNumber string, req *dto.SetAssignmentFieldRequest, changedBy string) error {
	field, ok := models.LookupAssignmentField(req.Field)
	if !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownField, req.Field)
	}

	student, err := s.students.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return err
	}

	value, err := s.coerceValue(ctx, field, req.Value)
	if err != nil {
		return err
	}

	oldValue := fieldValueString(student, field.Column)
	if err := s.students.SetColumn(ctx, matrixNumber, field.Column, value); err != nil {
		return err
	}

	s.recordChange(ctx, matrixNumber, field.Name, oldValue, valueString(value), changedBy)
	return nil
}

// coerceValue converts the wire value into the column's storage type and
// validates it. Clearing (nil) is allowed for every kind except text and
// document columns, which store empty strings instead of nulls.
func (s *AssignmentService) coerceValue(ctx context.Context, field models.AssignmentField, raw *string) (interface{}, error) {
	switch field.Kind {
	case models.FieldKindStaffRef, models.FieldKindCompanyRef:
		if raw == nil {
			return nil, nil
		}
		id, err := strconv.ParseInt(strings.TrimSpace(*raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a numeric id", apperrors.ErrValidationFailed, field.Name)
		}

		checker := s.staff
		if field.Kind == models.FieldKindCompanyRef {
			checker = s.companies
		}
		exists, err := checker.ExistsByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("error checking reference: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s id %d", apperrors.ErrInvalidReference, field.Name, id)
		}
		return id, nil

	case models.FieldKindMark:
		if raw == nil {
			return nil, nil
		}
		mark, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number", apperrors.ErrValidationFailed, field.Name)
		}
		if !validation.IsValidMark(mark) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMarkOutOfRange, field.Name)
		}
		return mark, nil

	default: // text and document columns
		if raw == nil {
			return "", nil
		}
		return strings.TrimSpace(*raw), nil
	}
}

// fieldValueString renders the current value of an assignment column for
// the audit trail.
func fieldValueString(student *models.Student, column string) string {
	ref := func(v *int64) string {
		if v == nil {
			return "None"
		}
		return strconv.FormatInt(*v, 10)
	}
	mark := func(v *float64) string {
		if v == nil {
			return "None"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	text := func(v string) string {
		if v == "" {
			return "None"
		}
		return v
	}

	switch column {
	case "fyp1_sv_id":
		return ref(student.FYP1SVID)
	case "fyp2_sv_id":
		return ref(student.FYP2SVID)
	case "li_uni_sv_id":
		return ref(student.LIUniSVID)
	case "li_industry_sv_id":
		return ref(student.LIIndustrySVID)
	case "fyp1_panel_id":
		return ref(student.FYP1PanelID)
	case "fyp2_panel_id":
		return ref(student.FYP2PanelID)
	case "fyp1_company_id":
		return ref(student.FYP1CompanyID)
	case "fyp2_company_id":
		return ref(student.FYP2CompanyID)
	case "li_company_id":
		return ref(student.LICompanyID)
	case "fyp1_marks":
		return mark(student.FYP1Marks)
	case "fyp2_marks":
		return mark(student.FYP2Marks)
	case "li_marks":
		return mark(student.LIMarks)
	case "fyp_title":
		return text(student.FYPTitle)
	case "form_lapor_diri":
		return text(student.FormLaporDiri)
	case "form_aku_janji":
		return text(student.FormAkuJanji)
	default:
		return "None"
	}
}

func valueString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if v == "" {
			return "None"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *AssignmentService) recordChange(ctx context.Context, matrixNumber, field, oldValue, newValue, changedBy string) {
	entry := &models.AuditEntry{
		MatrixNumber: matrixNumber,
		FieldChanged: field,
		OldValue:     oldValue,
		NewValue:     newValue,
		ChangedBy:    changedBy,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		logger.Error().Err(err).Str("matrixNumber", matrixNumber).Str("field", field).Msg("Failed to record assignment audit entry")
	}
}
