package errors

import (
	"context"
	"errors"
	"fmt"
)

// RecordError is the typed error for anything that aborts a run: a record
// that cannot be parsed, a timestamp in neither accepted form, bad
// configuration, or an input/store failure. Source/Line identify the
// offending input line when known.
type RecordError struct {
	Code    string
	Message string
	Source  string
	Line    int
	Cause   error
}

func (e *RecordError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = fmt.Sprintf("%s (%s:%d)", msg, e.Source, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *RecordError) Unwrap() error { return e.Cause }

const (
	ErrCodeMalformedRecord = "MALFORMED_RECORD"
	ErrCodeBadTimestamp    = "BAD_TIMESTAMP"
	ErrCodeInvalidConfig   = "INVALID_CONFIG"
	ErrCodeInputFailed     = "INPUT_FAILED"
	ErrCodeStoreFailed     = "STORE_FAILED"
)

func ErrMalformedRecord(source string, line int, cause error) *RecordError {
	return &RecordError{
		Code:    ErrCodeMalformedRecord,
		Message: "malformed input record",
		Source:  source,
		Line:    line,
		Cause:   cause,
	}
}

func ErrBadTimestamp(source string, line int, token string, cause error) *RecordError {
	return &RecordError{
		Code:    ErrCodeBadTimestamp,
		Message: fmt.Sprintf("unparseable timestamp %q", token),
		Source:  source,
		Line:    line,
		Cause:   cause,
	}
}

func ErrInvalidConfig(msg string, cause error) *RecordError {
	return &RecordError{
		Code:    ErrCodeInvalidConfig,
		Message: msg,
		Cause:   cause,
	}
}

func ErrInputFailed(source string, cause error) *RecordError {
	return &RecordError{
		Code:    ErrCodeInputFailed,
		Message: "cannot read input",
		Source:  source,
		Cause:   cause,
	}
}

func ErrStoreFailed(msg string, cause error) *RecordError {
	return &RecordError{
		Code:    ErrCodeStoreFailed,
		Message: msg,
		Cause:   cause,
	}
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
