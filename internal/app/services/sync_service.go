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
)

// SyncStudentStore is the student access the sync engine needs.
type SyncStudentStore interface {
	GetByMatrixNumber(ctx context.Context, matrixNumber string) (*models.Student, error)
	SetColumnIfNull(ctx context.Context, matrixNumber, column string, value int64) (bool, error)
}

// AuditRecorder appends one change record to the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
}

// SyncService carries assignments forward between subjects: an FYP1
// company becomes the LI company, the FYP1 panel becomes the FYP2
// panel, and the FYP1 supervisor becomes the LI university supervisor.
// A target that already holds a value is never touched, which also
// makes a re-run a no-op.
type SyncService struct {
	students SyncStudentStore
	audit    AuditRecorder
}

// NewSyncService creates a new sync service instance
func NewSyncService(students SyncStudentStore, audit AuditRecorder) *SyncService {
	return &SyncService{
		students: students,
		audit:    audit,
	}
}

// SyncStudents runs the carry-over rules for each selected student.
// Per-student failures are reported in the result rather than aborting
// the batch.
func (s *SyncService) SyncStudents(ctx context.Context, matrixNumbers []string, changedBy string) ([]dto.SyncResult, error) {
	if len(matrixNumbers) == 0 {
		return nil, fmt.Errorf("%w: no students selected", apperrors.ErrValidationFailed)
	}

	results := make([]dto.SyncResult, 0, len(matrixNumbers))
	for _, matrixNumber := range matrixNumbers {
		result := dto.SyncResult{MatrixNumber: matrixNumber}

		changed, err := s.syncOne(ctx, matrixNumber, changedBy)
		if err != nil {
			result.Error = err.Error()
			logger.Warn().Err(err).Str("matrixNumber", matrixNumber).Msg("Student sync failed")
		}
		result.FieldsChanged = changed

		results = append(results, result)
	}

	return results, nil
}

// syncOne applies every carry-over rule to a single student and returns
// the number of fields that were filled.
func (s *SyncService) syncOne(ctx context.Context, matrixNumber, changedBy string) (int, error) {
	student, err := s.students.GetByMatrixNumber(ctx, matrixNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error loading student: %w", err)
	}

	changed := 0
	for _, pair := range models.SyncPairs {
		source := sourceValue(student, pair)
		if source == nil {
			continue
		}

		// The write itself re-checks the null condition, so a concurrent
		// fill of the target loses nothing.
		filled, err := s.students.SetColumnIfNull(ctx, matrixNumber, pair.TargetColumn, *source)
		if err != nil {
			return changed, fmt.Errorf("error syncing %s: %w", pair.TargetField, err)
		}
		if !filled {
			continue
		}

		changed++
		s.recordSync(ctx, matrixNumber, pair, *source, changedBy)
	}

	return changed, nil
}

func sourceValue(student *models.Student, pair models.SyncPair) *int64 {
	switch pair.SourceColumn {
	case "fyp1_company_id":
		return student.FYP1CompanyID
	case "fyp1_panel_id":
		return student.FYP1PanelID
	case "fyp1_sv_id":
		return student.FYP1SVID
	default:
		return nil
	}
}

func (s *SyncService) recordSync(ctx context.Context, matrixNumber string, pair models.SyncPair, value int64, changedBy string) {
	entry := &models.AuditEntry{
		MatrixNumber: matrixNumber,
		FieldChanged: pair.TargetField,
		OldValue:     "None",
		NewValue:     strconv.FormatInt(value, 10),
		ChangedBy:    changedBy,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		// The fill already happened; losing the audit row is logged, not fatal.
		logger.Error().Err(err).Str("matrixNumber", matrixNumber).Str("field", pair.TargetField).Msg("Failed to record sync audit entry")
	}
}
