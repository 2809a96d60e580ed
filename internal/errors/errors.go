// Package errors provides unified error handling with structured error codes.
// Codes classify failures by domain so callers can decide between fatal and
// degraded handling without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies the failure domain of an error.
type Code uint32

const (
	CodeUnknown     Code = iota
	CodeDevice           // audio capture unavailable
	CodeTransport        // connection refused, timeout, broken frame
	CodeAuth             // credentials rejected or missing
	CodeTokenDenied      // token request refused by the remote side
	CodeProtocol         // response present but not the expected shape
	CodeConfig           // invalid configuration
)

func (c Code) String() string {
	if int(c) >= len(codeNames) {
		return "unknown"
	}
	return codeNames[c]
}

var codeNames = [...]string{"unknown", "device", "transport", "auth", "token-denied", "protocol", "config"}

// AppError is the base error type with a structured code and optional cause.
type AppError struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// New creates a new AppError with the given code and message.
func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with a formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// CodeOf returns the code of the outermost AppError in err's chain,
// or CodeUnknown if there is none.
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode checks if an error (or anything it wraps) carries a specific code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
