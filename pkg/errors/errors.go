// Package errors provides coded errors for pyport.
//
// Every failure that reaches the pipeline report or the CLI carries a
// [Code]. The code decides how the batch reacts: [IsFatal] errors stop the
// run, everything else fails only the package being processed.
//
//	err := errors.Wrap(errors.ErrCodeChecksum, err, "make makesum in %s", dir)
//	if errors.IsFatal(err) {
//	    return report, err
//	}
//
// Codes survive wrapping with fmt.Errorf("...: %w", err); [Is] searches the
// whole chain.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Caller input and configuration.
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidPackage       Code = "INVALID_PACKAGE"
	ErrCodeInvalidPath          Code = "INVALID_PATH"
	ErrCodeInvalidConfig        Code = "INVALID_CONFIG"
	ErrCodeMalformedRequirement Code = "MALFORMED_REQUIREMENT"

	// Registry.
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	ErrCodeNetwork         Code = "NETWORK_ERROR"

	// Distfile handling. Only ErrCodeChecksum aborts a run.
	ErrCodeChecksum       Code = "CHECKSUM_FAILED"
	ErrCodeExtract        Code = "EXTRACT_FAILED"
	ErrCodeDigestMismatch Code = "DIGEST_MISMATCH"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost Error without its code,
// or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err must stop the whole batch rather than just
// the package being processed.
func IsFatal(err error) bool {
	return Is(err, ErrCodeChecksum)
}
