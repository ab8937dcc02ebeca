package services

import (
	"context"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
)

// SummaryStudentStore is the student access the dashboard needs.
type SummaryStudentStore interface {
	GetAllUnpaged(ctx context.Context, filters dto.VisibilityFilters, includeArchived bool) ([]*models.Student, error)
}

// DashboardService computes the admin dashboard summary tiles
type DashboardService struct {
	students SummaryStudentStore
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(students SummaryStudentStore) *DashboardService {
	return &DashboardService{
		students: students,
	}
}

// Summary aggregates counts over the active (non-archived) students
// matching the filters. Every tile is computed from the same filtered
// set: the company tile counts the distinct placement companies those
// students reference, and grading-pending counts students with no
// positive mark in any subject, whatever their document state.
func (s *DashboardService) Summary(ctx context.Context, filters dto.VisibilityFilters) (*dto.DashboardSummary, error) {
	students, err := s.students.GetAllUnpaged(ctx, filters, false)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		TotalStudents: len(students),
	}

	companies := make(map[int64]bool)
	addCompany := func(ref *int64) {
		if ref != nil {
			companies[*ref] = true
		}
	}

	for _, student := range students {
		addCompany(student.FYP1CompanyID)
		addCompany(student.FYP2CompanyID)
		addCompany(student.LICompanyID)

		if student.Status() == models.StatusIncomplete {
			summary.DocsPending++
		}
		if noPositiveMark(student) {
			summary.GradingPending++
		}
	}
	summary.TotalCompanies = len(companies)

	return summary, nil
}

// noPositiveMark reports whether every subject mark is absent or zero.
func noPositiveMark(student *models.Student) bool {
	for _, mark := range []*float64{student.FYP1Marks, student.FYP2Marks, student.LIMarks} {
		if mark != nil && *mark > 0 {
			return false
		}
	}
	return true
}
