package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateID      = errors.New("id already exists")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)

// Student errors
var (
	ErrStudentNotFound = NewCustomError(ErrNotFound, "student not found")
	ErrDuplicateSID    = NewCustomError(ErrDuplicateID, "student SID already exists")
)

// Room errors
var (
	ErrRoomNotFound         = NewCustomError(ErrNotFound, "room not found")
	ErrRoomFull             = errors.New("room has no free bed")
	ErrInvalidCapacity      = errors.New("room capacity must be at least 1")
	ErrRoomUnderMaintenance = errors.New("room is under maintenance")
)

// Record errors
var (
	ErrComplaintNotFound = NewCustomError(ErrNotFound, "complaint not found")
	ErrGatePassNotFound  = NewCustomError(ErrNotFound, "gate pass not found")
	ErrNoticeNotFound    = NewCustomError(ErrNotFound, "notice not found")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError is a sentinel paired with a more specific message
type CustomError struct {
	Err     error
	Message string
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
