package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
	"github.com/fems12/WBL-Management-Sytem/internal/app/repositories"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/auth"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/logger"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/spreadsheet"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/validation"
)

// studentImportColumns accepts the header spellings seen across office
// tool exports.
var studentImportColumns = []spreadsheet.ColumnSpec{
	{Name: "name", Synonyms: []string{"name", "student_name", "student name"}, Required: true},
	{Name: "matrix_number", Synonyms: []string{"matrix number", "matrix_no", "matrix no", "matrix_number"}, Required: true},
	{Name: "program", Synonyms: []string{"program", "programme"}},
	{Name: "cohort", Synonyms: []string{"cohort"}},
	{Name: "email", Synonyms: []string{"email", "e-mail"}},
}

var companyImportColumns = []spreadsheet.ColumnSpec{
	{Name: "name", Synonyms: []string{"company name", "name"}, Required: true},
	{Name: "address", Synonyms: []string{"address"}},
	{Name: "state", Synonyms: []string{"state"}},
}

// Title updates arrive on a fixed schema, no synonyms.
var titleImportColumns = []spreadsheet.ColumnSpec{
	{Name: "matrix_number", Synonyms: []string{"matrix number"}, Required: true},
	{Name: "fyp_title", Synonyms: []string{"fyp title"}, Required: true},
}

// ImportService loads students, companies and title updates from
// uploaded workbooks. Each row succeeds or fails on its own; the report
// carries per-row errors alongside the import count.
type ImportService struct {
	studentRepo *repositories.StudentRepository
	companyRepo *repositories.CompanyRepository
	auditRepo   *repositories.AuditRepository
}

// NewImportService creates a new import service instance
func NewImportService(studentRepo *repositories.StudentRepository, companyRepo *repositories.CompanyRepository, auditRepo *repositories.AuditRepository) *ImportService {
	return &ImportService{
		studentRepo: studentRepo,
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
	}
}

// ImportStudents bulk-creates students from a workbook. Each student's
// initial password is their matrix number.
func (s *ImportService) ImportStudents(ctx context.Context, reader io.Reader) (*dto.ImportReport, error) {
	rows, err := spreadsheet.Read(reader, studentImportColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	report := &dto.ImportReport{}
	for _, row := range rows {
		matrixNumber := row.Get("matrix_number")
		name := row.Get("name")

		if name == "" || matrixNumber == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: name and matrix number are required", row.Number))
			continue
		}
		if !validation.IsValidMatrixNumber(matrixNumber) {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: invalid matrix number %q", row.Number, matrixNumber))
			continue
		}

		hash, err := auth.HashPassword(matrixNumber)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}

		student := &models.Student{
			MatrixNumber: matrixNumber,
			Name:         name,
			Email:        row.Get("email"),
			Program:      row.Get("program"),
			Cohort:       row.Get("cohort"),
			PasswordHash: hash,
		}

		if err := s.studentRepo.Create(ctx, student); err != nil {
			if errors.Is(err, apperrors.ErrDuplicateMatrixNumber) {
				report.Errors = append(report.Errors, fmt.Sprintf("row %d: matrix number %q already exists", row.Number, matrixNumber))
				continue
			}
			return report, fmt.Errorf("error importing row %d: %w", row.Number, err)
		}
		report.Imported++
	}

	logger.Info().Int("imported", report.Imported).Int("errors", len(report.Errors)).Msg("Student import finished")
	return report, nil
}

// ImportCompanies bulk-creates companies from a workbook. Existing
// companies with the same name are skipped rather than duplicated.
func (s *ImportService) ImportCompanies(ctx context.Context, reader io.Reader) (*dto.ImportReport, error) {
	rows, err := spreadsheet.Read(reader, companyImportColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	report := &dto.ImportReport{}
	for _, row := range rows {
		name := row.Get("name")
		if name == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: company name is required", row.Number))
			continue
		}

		_, err := s.companyRepo.GetByName(ctx, name)
		if err == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: company %q already exists", row.Number, name))
			continue
		}
		if !errors.Is(err, apperrors.ErrCompanyNotFound) {
			return report, fmt.Errorf("error checking company %q: %w", name, err)
		}

		company := &models.Company{
			Name:    name,
			Address: row.Get("address"),
			State:   row.Get("state"),
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return report, fmt.Errorf("error importing row %d: %w", row.Number, err)
		}
		report.Imported++
	}

	logger.Info().Int("imported", report.Imported).Int("errors", len(report.Errors)).Msg("Company import finished")
	return report, nil
}

// ImportTitles bulk-updates FYP titles from a two-column workbook.
func (s *ImportService) ImportTitles(ctx context.Context, reader io.Reader, changedBy string) (*dto.ImportReport, error) {
	rows, err := spreadsheet.Read(reader, titleImportColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	report := &dto.ImportReport{}
	for _, row := range rows {
		matrixNumber := row.Get("matrix_number")
		title := row.Get("fyp_title")
		if matrixNumber == "" || title == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: matrix number and fyp title are required", row.Number))
			continue
		}

		student, err := s.studentRepo.GetByMatrixNumber(ctx, matrixNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				report.Errors = append(report.Errors, fmt.Sprintf("row %d: student %q not found", row.Number, matrixNumber))
				continue
			}
			return report, fmt.Errorf("error loading student %q: %w", matrixNumber, err)
		}

		if strings.TrimSpace(student.FYPTitle) == strings.TrimSpace(title) {
			continue
		}

		if err := s.studentRepo.SetColumn(ctx, matrixNumber, "fyp_title", title); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", row.Number, err))
			continue
		}

		oldValue := student.FYPTitle
		if oldValue == "" {
			oldValue = "None"
		}
		entry := &models.AuditEntry{
			MatrixNumber: matrixNumber,
			FieldChanged: "FYP Title",
			OldValue:     oldValue,
			NewValue:     title,
			ChangedBy:    changedBy,
		}
		if err := s.auditRepo.Record(ctx, entry); err != nil {
			logger.Error().Err(err).Str("matrixNumber", matrixNumber).Msg("Failed to record title audit entry")
		}

		report.Imported++
	}

	logger.Info().Int("updated", report.Imported).Int("errors", len(report.Errors)).Msg("Title import finished")
	return report, nil
}
