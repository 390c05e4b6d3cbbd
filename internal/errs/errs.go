package errs

import (
	"errors"
	"fmt"
)

// Code identifies a recoverable appliance error condition.
type Code string

const (
	CodeOutOfRange   Code = "OUT_OF_RANGE"  // edit/navigation offset outside valid bounds
	CodeNameConflict Code = "NAME_CONFLICT" // lifecycle naming collision
	CodeFileBusy     Code = "FILE_BUSY"     // lifecycle operation against an open editing session
	CodeIO           Code = "IO_ERROR"      // storage read/write failure
	CodeNotFound     Code = "NOT_FOUND"     // missing file
	CodeBadState     Code = "BAD_STATE"     // illegal lifecycle state transition
)

// Error is a structured error carrying a condition code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// OutOfRange reports an offset outside the valid document bounds.
// Callers treat the offending operation as a no-op.
func OutOfRange(msg string) *Error {
	return &Error{Code: CodeOutOfRange, Message: msg}
}

// NameConflict reports a lifecycle naming collision. No state was changed.
func NameConflict(name string) *Error {
	return &Error{
		Code:    CodeNameConflict,
		Message: fmt.Sprintf("a file named %q already exists", name),
	}
}

// FileBusy reports a lifecycle operation against a file with an open
// editing session. No state was changed.
func FileBusy(path string) *Error {
	return &Error{
		Code:    CodeFileBusy,
		Message: fmt.Sprintf("%s has an open editing session", path),
	}
}

// IO wraps a storage failure.
func IO(op string, err error) *Error {
	return &Error{
		Code:    CodeIO,
		Message: fmt.Sprintf("%s: %v", op, err),
		Err:     err,
	}
}

// NotFound reports a missing file.
func NotFound(path string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("file not found: %s", path),
	}
}

// BadState reports a lifecycle transition outside the allowed table.
func BadState(msg string) *Error {
	return &Error{Code: CodeBadState, Message: msg}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
