package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }
func id(v int64) *int64    { return &v }

func TestStatus_DocumentsCheckedFirst(t *testing.T) {
	student := Student{
		FYP1Marks: f(80), FYP2Marks: f(75), LIMarks: f(90),
	}
	assert.Equal(t, StatusIncomplete, student.Status())

	student.FormLaporDiri = "docs/lapor.pdf"
	assert.Equal(t, StatusIncomplete, student.Status())

	student.FormAkuJanji = "docs/aku.pdf"
	assert.Equal(t, StatusGraded, student.Status())
}

func TestStatus_GradedNeedsAllMarksPositive(t *testing.T) {
	student := Student{
		FormLaporDiri: "docs/lapor.pdf",
		FormAkuJanji:  "docs/aku.pdf",
	}
	assert.Equal(t, StatusOngoing, student.Status())

	student.FYP1Marks = f(80)
	student.FYP2Marks = f(75)
	assert.Equal(t, StatusOngoing, student.Status())

	student.LIMarks = f(0)
	assert.Equal(t, StatusOngoing, student.Status())

	student.LIMarks = f(62)
	assert.Equal(t, StatusGraded, student.Status())
}

func TestAssignedTo_SubjectAndRoleMask(t *testing.T) {
	student := Student{
		FYP1SVID:       id(1),
		FYP2SVID:       id(2),
		LIUniSVID:      id(3),
		LIIndustrySVID: id(4),
		FYP1PanelID:    id(5),
		FYP2PanelID:    id(6),
	}

	cases := []struct {
		name    string
		staffID int64
		subject Subject
		role    AssignmentRole
		want    bool
	}{
		{"fyp1 sv as supervisor", 1, SubjectFYP1, RoleSupervisorOnly, true},
		{"fyp1 sv as panel", 1, SubjectFYP1, RolePanelOnly, false},
		{"fyp1 panel as panel", 5, SubjectFYP1, RolePanelOnly, true},
		{"fyp1 panel any role", 5, SubjectFYP1, RoleAny, true},
		{"fyp2 sv wrong subject", 2, SubjectFYP1, RoleAny, false},
		{"li uni sv as supervisor", 3, SubjectLI, RoleSupervisorOnly, true},
		{"li industry sv as supervisor", 4, SubjectLI, RoleSupervisorOnly, true},
		{"li has no panels", 5, SubjectLI, RolePanelOnly, false},
		{"li any role excludes panels", 5, SubjectLI, RoleAny, false},
		{"all subjects supervisor", 3, SubjectAll, RoleSupervisorOnly, true},
		{"all subjects panel", 6, SubjectAll, RolePanelOnly, true},
		{"all subjects any", 4, SubjectAll, RoleAny, true},
		{"unassigned staff", 99, SubjectAll, RoleAny, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, student.AssignedTo(tc.staffID, tc.subject, tc.role))
		})
	}
}

func TestLookupAssignmentField(t *testing.T) {
	field, ok := LookupAssignmentField("FYP 1 SV")
	assert.True(t, ok)
	assert.Equal(t, "fyp1_sv_id", field.Column)
	assert.Equal(t, FieldKindStaffRef, field.Kind)

	field, ok = LookupAssignmentField("  li company ")
	assert.True(t, ok)
	assert.Equal(t, "li_company_id", field.Column)
	assert.Equal(t, FieldKindCompanyRef, field.Kind)

	_, ok = LookupAssignmentField("Shoe Size")
	assert.False(t, ok)
}
