package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Code says which kind of failure an *Error reports. Callers branch on it
// through the Is helpers below.
type Code string

const (
	CodeUnknown         Code = "unknown"
	CodeInvalidArgument Code = "invalid_argument"
	CodeNotFound        Code = "not_found"
	CodeInternal        Code = "internal"

	// CodeUnavailable means the durable store could not be read or written
	CodeUnavailable Code = "unavailable"

	// CodeValidation means character data is outside the schema
	CodeValidation Code = "validation"

	// CodeDataCorruption means a stored record could not be adopted on load
	CodeDataCorruption Code = "data_corruption"
)

// Error carries a Code plus the offending field, id or index in Meta.
// Meta survives Wrap so outer layers can add context without losing it.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// WithMeta sets key on e and returns e for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds message to err. A coded cause keeps its code and a copy of its
// meta, anything else becomes CodeUnknown. Wrap(nil) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{Code: CodeUnknown, Message: message, Cause: err}
	if inner, ok := as(err); ok {
		wrapped.Code = inner.Code
		wrapped.Meta = maps.Clone(inner.Meta)
	}
	return wrapped
}

func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode is Wrap with the code overridden
func WrapWithCode(err error, code Code, message string) *Error {
	wrapped := Wrap(err, message)
	if wrapped != nil {
		wrapped.Code = code
	}
	return wrapped
}

func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Unavailable marks err as a storage failure
func Unavailable(err error, message string) *Error {
	return WrapWithCode(err, CodeUnavailable, message)
}

// Is reports whether the outermost *Error in err's chain has code
func Is(err error, code Code) bool {
	inner, ok := as(err)
	return ok && inner.Code == code
}

func IsNotFound(err error) bool        { return Is(err, CodeNotFound) }
func IsInvalidArgument(err error) bool { return Is(err, CodeInvalidArgument) }
func IsValidation(err error) bool      { return Is(err, CodeValidation) }
func IsUnavailable(err error) bool     { return Is(err, CodeUnavailable) }
func IsDataCorruption(err error) bool  { return Is(err, CodeDataCorruption) }

// GetMeta returns the meta of the outermost *Error in err's chain, nil if none
func GetMeta(err error) map[string]any {
	if inner, ok := as(err); ok {
		return inner.Meta
	}
	return nil
}

func as(err error) (*Error, bool) {
	var coded *Error
	ok := errors.As(err, &coded)
	return coded, ok
}
