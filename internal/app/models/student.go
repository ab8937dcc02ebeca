package models

import "time"

// Student defines the student model based on the 'students' table.
// Assignment columns hold weak references into staff/companies; a nil
// pointer means the field is unset.
type Student struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	MatrixNumber string `json:"matrixNumber" db:"matrix_number" example:"AM2110012345"` // Unique business key
	Name         string `json:"name" db:"name" example:"Aina Zulaikha"`
	Email        string `json:"email" db:"email" example:"aina@student.edu.my"`
	Program      string `json:"program" db:"program" example:"Software Engineering"`
	Cohort       string `json:"cohort" db:"cohort" example:"2023/2024"`
	PasswordHash string `json:"-" db:"password_hash"`
	FYPTitle     string `json:"fypTitle" db:"fyp_title"`
	IsArchived   bool   `json:"isArchived" db:"is_archived"`

	// Uploaded form references (object store paths); empty means not submitted
	FormLaporDiri string `json:"formLaporDiri" db:"form_lapor_diri"`
	FormAkuJanji  string `json:"formAkuJanji" db:"form_aku_janji"`

	// Assignment references per subject
	FYP1CompanyID  *int64 `json:"fyp1CompanyId" db:"fyp1_company_id"`
	FYP2CompanyID  *int64 `json:"fyp2CompanyId" db:"fyp2_company_id"`
	LICompanyID    *int64 `json:"liCompanyId" db:"li_company_id"`
	FYP1SVID       *int64 `json:"fyp1SvId" db:"fyp1_sv_id"`
	FYP2SVID       *int64 `json:"fyp2SvId" db:"fyp2_sv_id"`
	LIUniSVID      *int64 `json:"liUniSvId" db:"li_uni_sv_id"`
	LIIndustrySVID *int64 `json:"liIndustrySvId" db:"li_industry_sv_id"`
	FYP1PanelID    *int64 `json:"fyp1PanelId" db:"fyp1_panel_id"`
	FYP2PanelID    *int64 `json:"fyp2PanelId" db:"fyp2_panel_id"`

	// Marks; nil means not yet graded
	FYP1Marks *float64 `json:"fyp1Marks" db:"fyp1_marks"`
	FYP2Marks *float64 `json:"fyp2Marks" db:"fyp2_marks"`
	LIMarks   *float64 `json:"liMarks" db:"li_marks"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Status derives the dashboard status. Document completeness is checked
// before marks completeness: a missing form keeps the student Incomplete
// no matter what has been graded.
func (s *Student) Status() StudentStatus {
	if s.FormLaporDiri == "" || s.FormAkuJanji == "" {
		return StatusIncomplete
	}
	valid := func(m *float64) bool { return m != nil && *m > 0 }
	if valid(s.FYP1Marks) && valid(s.FYP2Marks) && valid(s.LIMarks) {
		return StatusGraded
	}
	return StatusOngoing
}

// AssignedTo reports whether staffID appears in any assignment role,
// optionally narrowed by subject and role. Panels are not modeled for LI,
// so PanelOnly+LI is always false.
func (s *Student) AssignedTo(staffID int64, subject Subject, role AssignmentRole) bool {
	is := func(ref *int64) bool { return ref != nil && *ref == staffID }

	switch subject {
	case SubjectFYP1:
		switch role {
		case RoleSupervisorOnly:
			return is(s.FYP1SVID)
		case RolePanelOnly:
			return is(s.FYP1PanelID)
		default:
			return is(s.FYP1SVID) || is(s.FYP1PanelID)
		}
	case SubjectFYP2:
		switch role {
		case RoleSupervisorOnly:
			return is(s.FYP2SVID)
		case RolePanelOnly:
			return is(s.FYP2PanelID)
		default:
			return is(s.FYP2SVID) || is(s.FYP2PanelID)
		}
	case SubjectLI:
		switch role {
		case RoleSupervisorOnly:
			return is(s.LIUniSVID) || is(s.LIIndustrySVID)
		case RolePanelOnly:
			return false
		default:
			return is(s.LIUniSVID) || is(s.LIIndustrySVID)
		}
	default: // all subjects
		switch role {
		case RoleSupervisorOnly:
			return is(s.FYP1SVID) || is(s.FYP2SVID) || is(s.LIUniSVID) || is(s.LIIndustrySVID)
		case RolePanelOnly:
			return is(s.FYP1PanelID) || is(s.FYP2PanelID)
		default:
			return is(s.FYP1SVID) || is(s.FYP2SVID) || is(s.LIUniSVID) || is(s.LIIndustrySVID) ||
				is(s.FYP1PanelID) || is(s.FYP2PanelID)
		}
	}
}
