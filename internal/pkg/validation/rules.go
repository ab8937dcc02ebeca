package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Matrix number pattern - alphanumeric business key, e.g. AM2110012345
	MatrixNumberPattern = `^[A-Za-z0-9]{5,20}$`

	// Staff ID number pattern
	StaffIDNumberPattern = `^[A-Za-z0-9\-]{2,20}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 150
)

// Mark range bounds; marks live in [0, 100] inclusive
const (
	MarkMin = 0.0
	MarkMax = 100.0
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email         *regexp.Regexp
	MatrixNumber  *regexp.Regexp
	StaffIDNumber *regexp.Regexp
}{
	Email:         regexp.MustCompile(EmailPattern),
	MatrixNumber:  regexp.MustCompile(MatrixNumberPattern),
	StaffIDNumber: regexp.MustCompile(StaffIDNumberPattern),
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(strings.TrimSpace(s))
}

// IsValidMatrixNumber reports whether s is an acceptable matrix number
func IsValidMatrixNumber(s string) bool {
	return CompiledPatterns.MatrixNumber.MatchString(strings.TrimSpace(s))
}

// IsValidStaffIDNumber reports whether s is an acceptable staff ID number
func IsValidStaffIDNumber(s string) bool {
	return CompiledPatterns.StaffIDNumber.MatchString(strings.TrimSpace(s))
}

// IsValidMark reports whether m is within the accepted mark range
func IsValidMark(m float64) bool {
	return m >= MarkMin && m <= MarkMax
}
