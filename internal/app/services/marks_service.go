package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/validation"
)

// MarksStudentStore is the student access the marks ledger needs.
type MarksStudentStore interface {
	GetByMatrixNumber(ctx context.Context, matrixNumber string) (*models.Student, error)
	UpdateMarks(ctx context.Context, matrixNumber string, marks map[string]*float64) error
}

// MarksService validates and writes subject marks. A request field left
// out stays untouched, an explicit null clears the stored mark, and a
// number replaces it after range validation.
type MarksService struct {
	students MarksStudentStore
	audit    AuditRecorder
}

// NewMarksService creates a new marks service instance
func NewMarksService(students MarksStudentStore, audit AuditRecorder) *MarksService {
	return &MarksService{
		students: students,
		audit:    audit,
	}
}

// SetMarks applies a partial marks update and returns the resulting
// marks snapshot with the derived status.
func (s *MarksService) SetMarks(ctx context.Context, matrixNumber string, req *dto.SetMarksRequest, changedBy string) (*dto.MarksData, error) {
	student, err := s.students.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]*float64, 3)
	collect := func(field, column string, value dto.MarkValue) error {
		if !value.Defined {
			return nil
		}
		if value.Value != nil && !validation.IsValidMark(*value.Value) {
			return fmt.Errorf("%w: %s", apperrors.ErrMarkOutOfRange, field)
		}
		columns[column] = value.Value
		return nil
	}

	if err := collect("FYP 1 Marks", "fyp1_marks", req.FYP1); err != nil {
		return nil, err
	}
	if err := collect("FYP 2 Marks", "fyp2_marks", req.FYP2); err != nil {
		return nil, err
	}
	if err := collect("LI Marks", "li_marks", req.LI); err != nil {
		return nil, err
	}

	// A request with every field omitted is a valid no-op.
	if len(columns) > 0 {
		if err := s.students.UpdateMarks(ctx, matrixNumber, columns); err != nil {
			if errors.Is(err, apperrors.ErrUpdateRejected) {
				return nil, apperrors.ErrUpdateRejected
			}
			return nil, fmt.Errorf("error updating marks: %w", err)
		}

		before := marksSummary(student.FYP1Marks, student.FYP2Marks, student.LIMarks)

		student, err = s.students.GetByMatrixNumber(ctx, matrixNumber)
		if err != nil {
			return nil, err
		}

		s.recordUpdate(ctx, matrixNumber, before,
			marksSummary(student.FYP1Marks, student.FYP2Marks, student.LIMarks), changedBy)
	}

	return &dto.MarksData{
		MatrixNumber: student.MatrixNumber,
		FYP1Marks:    student.FYP1Marks,
		FYP2Marks:    student.FYP2Marks,
		LIMarks:      student.LIMarks,
		Status:       string(student.Status()),
	}, nil
}

// GetMarks returns the marks snapshot for one student.
func (s *MarksService) GetMarks(ctx context.Context, matrixNumber string) (*dto.MarksData, error) {
	student, err := s.students.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		return nil, err
	}

	return &dto.MarksData{
		MatrixNumber: student.MatrixNumber,
		FYP1Marks:    student.FYP1Marks,
		FYP2Marks:    student.FYP2Marks,
		LIMarks:      student.LIMarks,
		Status:       string(student.Status()),
	}, nil
}

// recordUpdate writes the single audit entry for a marks call. The
// values are FYP1|FYP2|LI snapshots taken before and after the write.
func (s *MarksService) recordUpdate(ctx context.Context, matrixNumber, before, after, changedBy string) {
	entry := &models.AuditEntry{
		MatrixNumber: matrixNumber,
		FieldChanged: "Marks Update",
		OldValue:     before,
		NewValue:     after,
		ChangedBy:    changedBy,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		logger.Error().Err(err).Str("matrixNumber", matrixNumber).Msg("Failed to record marks audit entry")
	}
}

func marksSummary(fyp1, fyp2, li *float64) string {
	return formatMark(fyp1) + "|" + formatMark(fyp2) + "|" + formatMark(li)
}

func formatMark(value *float64) string {
	if value == nil {
		return "None"
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
