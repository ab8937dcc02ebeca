package models

import "strings"

// RoleType defines the account role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStaff   RoleType = "STAFF"
	RoleStudent RoleType = "STUDENT"
)

// Subject identifies one of the three tracked subjects
type Subject string

const (
	SubjectFYP1 Subject = "FYP1"
	SubjectFYP2 Subject = "FYP2"
	SubjectLI   Subject = "LI"
	SubjectAll  Subject = "ALL"
)

// AssignmentRole narrows visibility queries to a staff role
type AssignmentRole string

const (
	RoleAny            AssignmentRole = "ANY"
	RoleSupervisorOnly AssignmentRole = "SUPERVISOR"
	RolePanelOnly      AssignmentRole = "PANEL"
)

// DocumentType identifies a student-uploaded form
type DocumentType string

const (
	DocLaporDiri DocumentType = "lapor_diri"
	DocAkuJanji  DocumentType = "aku_janji"
)

// StudentStatus is the derived progress status shown on the dashboard
type StudentStatus string

const (
	StatusIncomplete StudentStatus = "Incomplete"
	StatusGraded     StudentStatus = "Graded"
	StatusOngoing    StudentStatus = "Ongoing"
)

// ValidSubject reports whether s names a concrete subject (not ALL)
func ValidSubject(s Subject) bool {
	return s == SubjectFYP1 || s == SubjectFYP2 || s == SubjectLI
}

// NormalizeSubject maps a raw query value to a Subject, defaulting to ALL
func NormalizeSubject(raw string) Subject {
	s := Subject(strings.ToUpper(strings.TrimSpace(raw)))
	if s == "" {
		return SubjectAll
	}
	return s
}

// NormalizeRole maps a raw query value to an AssignmentRole, defaulting to ANY
func NormalizeRole(raw string) AssignmentRole {
	r := AssignmentRole(strings.ToUpper(strings.TrimSpace(raw)))
	if r == "" {
		return RoleAny
	}
	return r
}
