package api

import (
	"context"
	"io"

	"subtitle-whisper/internal/app/model"
)

// Transcriber sends ready audio to a speech-to-text service.
// Calls block until the service answers; there is no retry.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string, mode model.OutputMode) (*model.Transcript, error)
}

// TranscriberFactory builds a transcriber bound to one API credential
type TranscriberFactory func(apiKey string) Transcriber

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Provider    string   `json:"provider"`
	StatusCode  int      `json:"status_code,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Cause       error    `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}
