package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMarkOutOfRange   = errors.New("mark outside valid range [0, 100]")

	// Write errors
	// ErrUpdateRejected covers every update that affected zero rows; the
	// backing store does not let us tell a missing row apart from a
	// policy-denied write, so both surface as this one error.
	ErrUpdateRejected = errors.New("update rejected by the store")

	// Backend errors
	ErrBackendUnavailable = errors.New("backing store unavailable")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrDuplicateMatrixNumber = errors.New("matrix number already exists")
)

// Staff errors
var (
	ErrStaffNotFound    = errors.New("staff not found")
	ErrDuplicateStaffID = errors.New("staff ID number already exists")
)

// Company errors
var (
	ErrCompanyNotFound = errors.New("company not found")
)

// Rubric errors
var (
	ErrRubricNotFound = errors.New("rubric not found")
)

// Assignment errors
var (
	// ErrInvalidReference indicates an assignment field pointing at a
	// staff or company row that does not exist.
	ErrInvalidReference = errors.New("assignment references a missing staff or company record")
	ErrUnknownField     = errors.New("unknown assignment field")
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for validation failures with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
