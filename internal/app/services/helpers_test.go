package services

import (
	"context"
	"fmt"

	"github.com/fems12/WBL-Management-Sytem/internal/app/models"
	"github.com/fems12/WBL-Management-Sytem/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory student table keyed by matrix number.
// It implements the narrow store interfaces the core services depend on.
type fakeStudentStore struct {
	students map[string]*models.Student
	// failWrites makes every write surface ErrUpdateRejected
	failWrites bool
}

func newFakeStudentStore(students ...*models.Student) *fakeStudentStore {
	store := &fakeStudentStore{students: make(map[string]*models.Student)}
	for _, s := range students {
		store.students[s.MatrixNumber] = s
	}
	return store
}

func (f *fakeStudentStore) GetByMatrixNumber(_ context.Context, matrixNumber string) (*models.Student, error) {
	student, ok := f.students[matrixNumber]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentStore) SetColumnIfNull(_ context.Context, matrixNumber, column string, value int64) (bool, error) {
	student, ok := f.students[matrixNumber]
	if !ok {
		return false, nil
	}
	target := f.columnRef(student, column)
	if target == nil {
		return false, fmt.Errorf("unknown column %q", column)
	}
	if *target != nil {
		return false, nil
	}
	v := value
	*target = &v
	return true, nil
}

func (f *fakeStudentStore) SetColumn(_ context.Context, matrixNumber, column string, value interface{}) error {
	if f.failWrites {
		return apperrors.ErrUpdateRejected
	}
	student, ok := f.students[matrixNumber]
	if !ok {
		return apperrors.ErrUpdateRejected
	}
	switch v := value.(type) {
	case int64:
		ref := f.columnRef(student, column)
		if ref == nil {
			return fmt.Errorf("unknown column %q", column)
		}
		val := v
		*ref = &val
	case nil:
		if ref := f.columnRef(student, column); ref != nil {
			*ref = nil
			return nil
		}
		return f.setText(student, column, "")
	case float64:
		val := v
		switch column {
		case "fyp1_marks":
			student.FYP1Marks = &val
		case "fyp2_marks":
			student.FYP2Marks = &val
		case "li_marks":
			student.LIMarks = &val
		default:
			return fmt.Errorf("unknown column %q", column)
		}
	case string:
		return f.setText(student, column, v)
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
	return nil
}

func (f *fakeStudentStore) setText(student *models.Student, column, value string) error {
	switch column {
	case "fyp_title":
		student.FYPTitle = value
	case "form_lapor_diri":
		student.FormLaporDiri = value
	case "form_aku_janji":
		student.FormAkuJanji = value
	default:
		return fmt.Errorf("unknown column %q", column)
	}
	return nil
}

func (f *fakeStudentStore) columnRef(student *models.Student, column string) **int64 {
	switch column {
	case "fyp1_company_id":
		return &student.FYP1CompanyID
	case "fyp2_company_id":
		return &student.FYP2CompanyID
	case "li_company_id":
		return &student.LICompanyID
	case "fyp1_sv_id":
		return &student.FYP1SVID
	case "fyp2_sv_id":
		return &student.FYP2SVID
	case "li_uni_sv_id":
		return &student.LIUniSVID
	case "li_industry_sv_id":
		return &student.LIIndustrySVID
	case "fyp1_panel_id":
		return &student.FYP1PanelID
	case "fyp2_panel_id":
		return &student.FYP2PanelID
	default:
		return nil
	}
}

func (f *fakeStudentStore) UpdateMarks(_ context.Context, matrixNumber string, marks map[string]*float64) error {
	if f.failWrites {
		return apperrors.ErrUpdateRejected
	}
	student, ok := f.students[matrixNumber]
	if !ok {
		return apperrors.ErrUpdateRejected
	}
	for column, value := range marks {
		var copied *float64
		if value != nil {
			v := *value
			copied = &v
		}
		switch column {
		case "fyp1_marks":
			student.FYP1Marks = copied
		case "fyp2_marks":
			student.FYP2Marks = copied
		case "li_marks":
			student.LIMarks = copied
		default:
			return fmt.Errorf("unknown column %q", column)
		}
	}
	return nil
}

func (f *fakeStudentStore) GetByAssignedStaff(_ context.Context, staffID int64, subject models.Subject, role models.AssignmentRole) ([]*models.Student, error) {
	var out []*models.Student
	for _, student := range f.students {
		if student.IsArchived {
			continue
		}
		if student.AssignedTo(staffID, subject, role) {
			copied := *student
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeAudit collects recorded audit entries.
type fakeAudit struct {
	entries []*models.AuditEntry
}

func (f *fakeAudit) Record(_ context.Context, entry *models.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

// fakeChecker reports existence from a fixed ID set.
type fakeChecker struct {
	ids map[int64]bool
}

func newFakeChecker(ids ...int64) *fakeChecker {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return &fakeChecker{ids: set}
}

func (f *fakeChecker) ExistsByID(_ context.Context, id int64) (bool, error) {
	return f.ids[id], nil
}

// fakeStaffNames resolves staff IDs from a fixed map.
type fakeStaffNames struct {
	names map[int64]string
}

func (f *fakeStaffNames) GetNamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string)
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

// fakeCompanies resolves company IDs from a fixed map.
type fakeCompanies struct {
	companies map[int64]models.Company
}

func (f *fakeCompanies) GetNamesByIDs(_ context.Context, ids []int64) (map[int64]models.Company, error) {
	out := make(map[int64]models.Company)
	for _, id := range ids {
		if company, ok := f.companies[id]; ok {
			out[id] = company
		}
	}
	return out, nil
}

func ptrInt64(v int64) *int64       { return &v }
func ptrFloat64(v float64) *float64 { return &v }
