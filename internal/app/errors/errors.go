package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingCredential = New("API credential is required")

	// Media errors
	ErrEmptyUpload      = New("no file uploaded")
	ErrUnsupportedMedia = New("unsupported media type")
	ErrConversionFailed = New("audio extraction failed")
	ErrNoAudio          = New("no audio ready for transcription")
	ErrNoTranscript     = New("no transcript available")

	// Session errors
	ErrSessionBusy       = New("session is busy with another action")
	ErrSessionNotFound   = New("session not found")
	ErrInvalidTransition = New("invalid session state transition")

	// File errors
	ErrFileWriteFailed = New("file write failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Is is errors.Is re-exported so callers need a single import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As re-exported so callers need a single import
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Kind wraps a cause under one of the sentinels above, keeping both in the chain
func Kind(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &Error{message: sentinel.message, cause: cause}
}

// UnsupportedExtension returns an error for uploads outside the accepted set
func UnsupportedExtension(ext string, allowed []string) error {
	return Kind(ErrUnsupportedMedia, Newf("extension %q not in %v", ext, allowed))
}
