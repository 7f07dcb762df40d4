package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. The API layer translates these into
// HTTP status codes; services and repositories only ever deal in domain errors.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound    = errors.New("user not found")
	ErrBlogNotFound    = errors.New("blog post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrJobNotFound     = errors.New("job posting not found")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrFileNotFound    = errors.New("file not found")

	ErrJobClosed = errors.New("job posting is closed for applications")
)

// FieldViolation is a single field-level validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries an ordered list of field violations. It maps to
// HTTP 400 with the violations rendered in the error envelope.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Violations[0].Field, e.Violations[0].Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

// ConflictError reports a uniqueness violation. It always names the field that
// conflicted so clients can surface a recoverable error, and maps to HTTP 409.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// UploadError reports a rejected upload (oversized file, disallowed type,
// too many files, unsafe filename). Maps to HTTP 400.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

func NewUploadError(format string, args ...any) *UploadError {
	return &UploadError{Message: fmt.Sprintf(format, args...)}
}
