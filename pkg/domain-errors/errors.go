// Package domainerrors provides coded errors shared by the chrono library and
// the service layer. Codes classify failures so callers can branch on kind
// without string matching, and so transport can map them to HTTP statuses.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the class of a domain error. Codes serialize as the
// "error" field of HTTP error envelopes.
type Code string

const (
	// Library taxonomy.

	// CodeInvalidValue marks a field value outside the range computed for
	// its context (e.g. day_of_month 31 in a 30-day month).
	CodeInvalidValue Code = "invalid_value"
	// CodeUnsupportedField marks a field the receiving type does not carry
	// and no capability fallback could resolve.
	CodeUnsupportedField Code = "unsupported_field"
	// CodeUnsupportedUnit marks a unit not applicable to the receiving type.
	CodeUnsupportedUnit Code = "unsupported_unit"
	// CodeOverflow marks arithmetic exceeding the representable range.
	// Distinct from CodeInvalidValue: the inputs were valid, the result is not.
	CodeOverflow Code = "overflow"

	// Service taxonomy.

	CodeInvalidInput    Code = "invalid_input"
	CodeBadRequest      Code = "bad_request"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeTooManyRequests Code = "too_many_requests"
	CodeTimeout         Code = "timeout"
	CodeUnavailable     Code = "unavailable"
	CodeInternal        Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a coded error with a fixed message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. The cause remains
// reachable via errors.Is/As.
func Wrap(err error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Code returns the classification of this error.
func (e *Error) Code() Code { return e.code }

// Message returns the message without the cause chain. Transport uses this
// for error_description so internal cause details never leak to clients.
func (e *Error) Message() string { return e.message }

func (e *Error) Unwrap() error { return e.cause }

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is mirrors HasCode; handlers tend to read better with this form.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the outermost code in err's chain, defaulting to
// CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidValue, CodeUnsupportedField, CodeUnsupportedUnit,
		CodeOverflow, CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
