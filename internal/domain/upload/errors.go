// Package upload holds the boundary rules applied to an uploaded document
// before it reaches the text statistics pipeline.
package upload

import (
	"errors"
	"fmt"
)

// Reason is the closed set of ways an upload can be rejected.
type Reason string

// Failure reasons.
const (
	ReasonNoFile          Reason = "no_file"
	ReasonWrongExtension  Reason = "wrong_extension"
	ReasonEmptyFile       Reason = "empty_file"
	ReasonDecodeFailure   Reason = "decode_failure"
	ReasonInternalFailure Reason = "internal_failure"
)

// Reasons lists every failure reason in a stable order.
func Reasons() []Reason {
	return []Reason{
		ReasonNoFile,
		ReasonWrongExtension,
		ReasonEmptyFile,
		ReasonDecodeFailure,
		ReasonInternalFailure,
	}
}

// Sentinel causes used with Error.
var (
	ErrNoFile         = errors.New("no file was uploaded")
	ErrWrongExtension = errors.New("unsupported file extension")
	ErrEmptyFile      = errors.New("uploaded file is empty")
	ErrTooLarge       = errors.New("upload too large")
	ErrUndefinedByte  = errors.New("byte is undefined in code page")
	ErrUnknownCharset = errors.New("unknown charset")
	ErrNotSingleByte  = errors.New("charset is not a single-byte code page")
)

// Error is a rejected upload together with its reason.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fail builds an *Error for reason wrapping err.
func Fail(reason Reason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// ReasonOf returns the reason carried by err. Errors that are not an *Error
// are internal failures; a nil error has no reason.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Reason
	}
	return ReasonInternalFailure
}

// Message returns the text shown to the user for err. allowedExt names the
// accepted file extension in the wrong-extension message.
func Message(err error, allowedExt string) string {
	switch ReasonOf(err) {
	case "":
		return ""
	case ReasonNoFile:
		return "No file was uploaded"
	case ReasonWrongExtension:
		return fmt.Sprintf("Please upload a file in %s format", allowedExt)
	case ReasonEmptyFile:
		return "The uploaded file is empty"
	default:
		cause := err
		var ue *Error
		if errors.As(err, &ue) && ue.Err != nil {
			cause = ue.Err
		}
		return "Error while processing file: " + cause.Error()
	}
}
