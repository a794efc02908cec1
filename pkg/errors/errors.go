// Package errors provides the unified error type used across the service.
// Errors carry a machine-readable code, a human-readable message and an
// optional wrapped cause, so that transport layers can render a consistent
// payload without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// AppError is the application error type.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Cause   error     `json:"-"`
	Stack   string    `json:"-"`
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap supports errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a copy of the error with additional detail attached.
func (e *AppError) WithDetail(format string, args ...interface{}) *AppError {
	clone := *e
	clone.Detail = fmt.Sprintf(format, args...)
	return &clone
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// HTTPStatus returns the HTTP status mapped to the error's code.
func (e *AppError) HTTPStatus() int {
	return HTTPStatusForCode(e.Code)
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	if message == "" {
		message = DefaultMessageForCode(code)
	}
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(),
	}
}

// Newf creates an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error into an AppError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if message == "" {
		message = DefaultMessageForCode(code)
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(),
	}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// GetCode extracts the ErrorCode from an error chain. Non-AppError values
// report CodeUnknown; a nil error reports CodeOK.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode reports whether any error in the chain carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsNotFound reports whether the error represents a missing resource.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeWordNotFound, ErrCodePoseNotFound:
		return true
	}
	return false
}

// AsAppError extracts an *AppError from the chain, or converts err into an
// internal AppError when none is present.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "")
}

// Convenience constructors for the most frequent cases.

func NotFound(resource string) *AppError {
	return Newf(ErrCodeNotFound, "%s not found", resource)
}

func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message)
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func captureStack() string {
	const depth = 16
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
