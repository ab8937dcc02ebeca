package models

import "strings"

// FieldKind tells the assignment store how to coerce and validate a
// field value before writing it.
type FieldKind int

const (
	FieldKindStaffRef FieldKind = iota
	FieldKindCompanyRef
	FieldKindMark
	FieldKindText
	FieldKindDocument
)

// AssignmentField maps one human-facing field name onto its students
// table column.
type AssignmentField struct {
	Name   string
	Column string
	Kind   FieldKind
}

// assignmentFields is the registry of editable per-student fields. Field
// names are matched case-insensitively.
var assignmentFields = []AssignmentField{
	{Name: "FYP 1 SV", Column: "fyp1_sv_id", Kind: FieldKindStaffRef},
	{Name: "FYP 2 SV", Column: "fyp2_sv_id", Kind: FieldKindStaffRef},
	{Name: "FYP 1 Panel", Column: "fyp1_panel_id", Kind: FieldKindStaffRef},
	{Name: "FYP 2 Panel", Column: "fyp2_panel_id", Kind: FieldKindStaffRef},
	{Name: "LI Uni SV", Column: "li_uni_sv_id", Kind: FieldKindStaffRef},
	{Name: "LI Industry SV", Column: "li_industry_sv_id", Kind: FieldKindStaffRef},
	{Name: "FYP 1 Company", Column: "fyp1_company_id", Kind: FieldKindCompanyRef},
	{Name: "FYP 2 Company", Column: "fyp2_company_id", Kind: FieldKindCompanyRef},
	{Name: "LI Company", Column: "li_company_id", Kind: FieldKindCompanyRef},
	{Name: "FYP Title", Column: "fyp_title", Kind: FieldKindText},
	{Name: "FYP 1 Marks", Column: "fyp1_marks", Kind: FieldKindMark},
	{Name: "FYP 2 Marks", Column: "fyp2_marks", Kind: FieldKindMark},
	{Name: "LI Marks", Column: "li_marks", Kind: FieldKindMark},
	{Name: "Lapor Diri", Column: "form_lapor_diri", Kind: FieldKindDocument},
	{Name: "Aku Janji", Column: "form_aku_janji", Kind: FieldKindDocument},
}

// LookupAssignmentField resolves a field name to its registry entry.
// The second return is false when the name is not a known field.
func LookupAssignmentField(name string) (AssignmentField, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, f := range assignmentFields {
		if strings.ToLower(f.Name) == needle {
			return f, true
		}
	}
	return AssignmentField{}, false
}

// AssignmentFieldNames returns the registered field names in order.
func AssignmentFieldNames() []string {
	names := make([]string, len(assignmentFields))
	for i, f := range assignmentFields {
		names[i] = f.Name
	}
	return names
}

// SyncPair describes one copy-forward rule: when the target column is
// still null it receives the source column's value.
type SyncPair struct {
	SourceField  string
	TargetField  string
	SourceColumn string
	TargetColumn string
}

// SyncPairs are the assignment carry-over rules run by the sync engine,
// in execution order.
var SyncPairs = []SyncPair{
	{SourceField: "FYP 1 Company", TargetField: "LI Company", SourceColumn: "fyp1_company_id", TargetColumn: "li_company_id"},
	{SourceField: "FYP 1 Panel", TargetField: "FYP 2 Panel", SourceColumn: "fyp1_panel_id", TargetColumn: "fyp2_panel_id"},
	{SourceField: "FYP 1 SV", TargetField: "LI Uni SV", SourceColumn: "fyp1_sv_id", TargetColumn: "li_uni_sv_id"},
}
