package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure so the command layer can pick an exit status.
type ErrorCode string

const (
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error is a classified error carrying a human-readable message.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a classified error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Invalidf builds an ErrCodeInvalid error with a formatted message.
func Invalidf(format string, args ...any) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf(format, args...))
}

// WrapError wraps an existing error with a classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var (
	ErrDecisionNotFound = NewError(ErrCodeNotFound, "decision not found")
	ErrNotResolvable    = NewError(ErrCodeNotFound, "decision not found or already resolved")
	ErrUnknownSetting   = NewError(ErrCodeInvalid, "unknown setting")
)

// IsDomainError reports whether err carries the given code anywhere in its chain.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, or ErrCodeInternal for unclassified errors.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
