package services

import (
	"errors"
	"fmt"

	"hospitality_backend/internal/repositories"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrDomain         = errors.New("domain rule violated")
	ErrNotFound       = errors.New("not found")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("not authorized")
	ErrConflict       = errors.New("conflict")
	ErrStorage        = errors.New("storage error")
)

// Error is returned by every service operation. Its message is safe to show
// to the caller; the underlying cause, if any, is kept for the log.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// Kind returns the sentinel classifying e.
func (e *Error) Kind() error { return e.kind }

// Detail is the message plus the underlying cause.
func (e *Error) Detail() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// NewError builds an error of the given kind with a caller-safe message.
func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func validationError(format string, args ...interface{}) *Error {
	return NewError(ErrValidation, fmt.Sprintf(format, args...))
}

func domainError(msg string) *Error {
	return NewError(ErrDomain, msg)
}

func notFoundError(msg string) *Error {
	return NewError(ErrNotFound, msg)
}

var (
	ErrInvalidCredentials = NewError(ErrAuthentication, "invalid login credentials")
	ErrSamePassword       = NewError(ErrValidation, "new password cannot be the same as the current password")
	ErrWrongPassword      = NewError(ErrValidation, "current password is incorrect")
	ErrManagerOnly        = NewError(ErrAuthorization, "only managers can perform this action")
	ErrNoStaffProfile     = NewError(ErrAuthorization, "invalid staff details")
)

const msgDuplicateReference = "payment reference number already exists"

// storageError wraps an unexpected repository failure. Service errors pass through.
func storageError(err error, op string) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return &Error{kind: ErrStorage, msg: "internal server error", cause: fmt.Errorf("%s: %w", op, err)}
}

// lookupError turns ErrNotFound into a NotFoundError with msg, anything else into a storage error.
func lookupError(err error, msg, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &Error{kind: ErrNotFound, msg: msg, cause: err}
	}
	return storageError(err, op)
}

// writeError classifies a failed insert or update.
func writeError(err error, conflictMsg, op string) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return &Error{kind: ErrConflict, msg: conflictMsg, cause: err}
	case errors.Is(err, repositories.ErrInvalidValue):
		return &Error{kind: ErrValidation, msg: "a value is out of the accepted range", cause: err}
	default:
		return storageError(err, op)
	}
}
