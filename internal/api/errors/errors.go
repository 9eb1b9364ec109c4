package errors

import (
	"fmt"
	"net/http"

	"subtitle-whisper/internal/app/api"
	apperrors "subtitle-whisper/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindConflict        ErrorKind = "conflict"
	KindInternal        ErrorKind = "internal"
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindBadGateway      ErrorKind = "bad_gateway"
)

// APIError represents a structured API error response
type APIError struct {
	Kind        ErrorKind         `json:"kind"`
	Message     string            `json:"message"`
	Details     map[string]string `json:"details,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	Code        string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewPayloadTooLargeError creates an error for uploads over the size limit
func NewPayloadTooLargeError(limit int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("upload exceeds the %d MB limit", limit>>20),
	}
}

// FromError maps a domain error to an APIError. The second result is false
// for errors with no known mapping.
func FromError(err error) (*APIError, bool) {
	var apiErr *APIError
	if apperrors.As(err, &apiErr) {
		return apiErr, true
	}

	var upstream *api.TranscriptionError
	if apperrors.As(err, &upstream) {
		return &APIError{
			Kind:        KindBadGateway,
			Message:     upstream.Message,
			Code:        upstream.Code,
			Suggestions: upstream.Suggestions,
		}, true
	}

	switch {
	case apperrors.Is(err, apperrors.ErrMissingCredential):
		return NewUnauthorizedError(err.Error()), true
	case apperrors.Is(err, apperrors.ErrEmptyUpload):
		return NewBadRequestError(err.Error()), true
	case apperrors.Is(err, apperrors.ErrUnsupportedMedia):
		return &APIError{Kind: KindValidation, Message: err.Error(), Code: "unsupported_media"}, true
	case apperrors.Is(err, apperrors.ErrConversionFailed):
		return &APIError{Kind: KindValidation, Message: err.Error(), Code: "conversion_failed"}, true
	case apperrors.Is(err, apperrors.ErrSessionBusy):
		return &APIError{Kind: KindConflict, Message: err.Error(), Code: "session_busy"}, true
	case apperrors.Is(err, apperrors.ErrNoAudio),
		apperrors.Is(err, apperrors.ErrNoTranscript),
		apperrors.Is(err, apperrors.ErrInvalidTransition):
		return NewConflictError(err.Error()), true
	case apperrors.Is(err, apperrors.ErrSessionNotFound):
		return NewNotFoundError("session"), true
	}
	return nil, false
}
