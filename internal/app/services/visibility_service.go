package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/app/models/dto"
)

// VisibilityStudentStore is the student access the visibility resolver needs.
type VisibilityStudentStore interface {
	GetByAssignedStaff(ctx context.Context, staffID int64, subject models.Subject, role models.AssignmentRole) ([]*models.Student, error)
}

// StaffNameResolver resolves staff IDs to display names.
type StaffNameResolver interface {
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// CompanyResolver resolves company IDs to company rows.
type CompanyResolver interface {
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]models.Company, error)
}

// VisibilityService resolves which students a staff member may see. The
// subject and role filters form a mask over the assignment columns; a
// student is visible when any masked column references the staff member.
// Panels are not modeled for LI, so Panel+LI resolves to an empty set.
type VisibilityService struct {
	students  VisibilityStudentStore
	staff     StaffNameResolver
	companies CompanyResolver
}

// NewVisibilityService creates a new visibility service instance
func NewVisibilityService(students VisibilityStudentStore, staff StaffNameResolver, companies CompanyResolver) *VisibilityService {
	return &VisibilityService{
		students:  students,
		staff:     staff,
		companies: companies,
	}
}

// VisibleStudents returns the projected rows a staff member may see,
// narrowed by the given filters. Filters beyond subject/role compose
// with AND on top of the assignment mask.
func (s *VisibilityService) VisibleStudents(ctx context.Context, staffID int64, filters dto.VisibilityFilters) ([]dto.StudentData, error) {
	subject := models.NormalizeSubject(filters.Subject)
	role := models.NormalizeRole(filters.Role)

	students, err := s.students.GetByAssignedStaff(ctx, staffID, subject, role)
	if err != nil {
		return nil, fmt.Errorf("error resolving visible students: %w", err)
	}

	students = applyStudentFilters(students, filters)

	return s.project(ctx, students)
}

// applyStudentFilters narrows a student list by the non-mask filters.
func applyStudentFilters(students []*models.Student, filters dto.VisibilityFilters) []*models.Student {
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	var out []*models.Student
	for _, student := range students {
		if filters.Department != "" && student.Program != filters.Department {
			continue
		}
		if filters.Program != "" && student.Program != filters.Program {
			continue
		}
		if filters.Cohort != "" && student.Cohort != filters.Cohort {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(student.Name), search) &&
			!strings.Contains(strings.ToLower(student.MatrixNumber), search) {
			continue
		}
		out = append(out, student)
	}
	return out
}

// project builds dashboard rows with resolved staff and company names.
func (s *VisibilityService) project(ctx context.Context, students []*models.Student) ([]dto.StudentData, error) {
	staffIDs, companyIDs := collectReferenceIDs(students)

	staffNames, err := s.staff.GetNamesByIDs(ctx, staffIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving staff names: %w", err)
	}
	companies, err := s.companies.GetNamesByIDs(ctx, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("error resolving companies: %w", err)
	}

	rows := make([]dto.StudentData, 0, len(students))
	for _, student := range students {
		rows = append(rows, buildStudentData(student, staffNames, companies))
	}
	return rows, nil
}

// collectReferenceIDs gathers every staff and company ID referenced by
// the given students, without duplicates.
func collectReferenceIDs(students []*models.Student) (staffIDs, companyIDs []int64) {
	seenStaff := make(map[int64]bool)
	seenCompany := make(map[int64]bool)

	addStaff := func(ref *int64) {
		if ref != nil && !seenStaff[*ref] {
			seenStaff[*ref] = true
			staffIDs = append(staffIDs, *ref)
		}
	}
	addCompany := func(ref *int64) {
		if ref != nil && !seenCompany[*ref] {
			seenCompany[*ref] = true
			companyIDs = append(companyIDs, *ref)
		}
	}

	for _, student := range students {
		addStaff(student.FYP1SVID)
		addStaff(student.FYP2SVID)
		addStaff(student.LIUniSVID)
		addStaff(student.LIIndustrySVID)
		addStaff(student.FYP1PanelID)
		addStaff(student.FYP2PanelID)
		addCompany(student.FYP1CompanyID)
		addCompany(student.FYP2CompanyID)
		addCompany(student.LICompanyID)
	}
	return staffIDs, companyIDs
}

// buildStudentData converts a student row into its dashboard projection.
func buildStudentData(student *models.Student, staffNames map[int64]string, companies map[int64]models.Company) dto.StudentData {
	data := dto.StudentData{
		ID:           student.ID,
		MatrixNumber: student.MatrixNumber,
		Name:         student.Name,
		Email:        student.Email,
		Program:      student.Program,
		Cohort:       student.Cohort,
		FYPTitle:     student.FYPTitle,
		Status:       string(student.Status()),
		IsArchived:   student.IsArchived,

		LaporDiriSubmitted: student.FormLaporDiri != "",
		AkuJanjiSubmitted:  student.FormAkuJanji != "",

		FYP1Marks: student.FYP1Marks,
		FYP2Marks: student.FYP2Marks,
		LIMarks:   student.LIMarks,
	}

	staffName := func(ref *int64) string {
		if ref == nil {
			return ""
		}
		return staffNames[*ref]
	}
	data.FYP1SV = staffName(student.FYP1SVID)
	data.FYP2SV = staffName(student.FYP2SVID)
	data.LIUniSV = staffName(student.LIUniSVID)
	data.LIIndustrySV = staffName(student.LIIndustrySVID)
	data.FYP1Panel = staffName(student.FYP1PanelID)
	data.FYP2Panel = staffName(student.FYP2PanelID)

	if student.FYP1CompanyID != nil {
		if company, ok := companies[*student.FYP1CompanyID]; ok {
			data.FYP1Company = company.Name
			data.FYP1State = company.State
		}
	}
	if student.LICompanyID != nil {
		if company, ok := companies[*student.LICompanyID]; ok {
			data.LICompany = company.Name
			data.LIState = company.State
		}
	}

	return data
}
