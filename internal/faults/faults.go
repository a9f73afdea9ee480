package faults

import (
	"errors"
	"fmt"
)

// Code is a stable identifier for a failure mode
type Code string

const (
	// InvalidArgument indicates a required field was absent or out of range
	InvalidArgument Code = "INVALID_ARGUMENT"
	// MalformedRequest indicates the message could not be parsed
	MalformedRequest Code = "MALFORMED_REQUEST"
	// UnknownOperation indicates no handler is registered for the message
	UnknownOperation Code = "UNKNOWN_OPERATION"
	// Internal indicates an unexpected error
	Internal Code = "INTERNAL_ERROR"
)

// Error is an error carrying a Code
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

// New creates an Error without an underlying cause
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error around cause
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf returns the code of the first *Error in err's chain, or Internal.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return Internal
}

// MessageOf returns the caller-facing message for err.
// Foreign errors are reported without their details.
func MessageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return "internal error"
}

// IsClient reports whether code is caused by the caller's message rather than by the service.
// InvalidArgument is reported as a server fault.
func IsClient(code Code) bool {
	switch code {
	case MalformedRequest, UnknownOperation:
		return true
	default:
		return false
	}
}
