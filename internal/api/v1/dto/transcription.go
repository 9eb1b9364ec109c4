package dto

import (
	"subtitle-whisper/internal/api/errors"
	"subtitle-whisper/internal/app/model"
	"subtitle-whisper/internal/app/session"
)

const (
	// AudioURL serves the extracted audio for playback
	AudioURL = "/api/v1/audio"
	// DownloadURL serves the formatted transcript as an attachment
	DownloadURL = "/api/v1/transcriptions/download"
)

// UploadResponse describes the audio made ready by an upload
type UploadResponse struct {
	Upload   model.UploadIdentity `json:"upload"`
	Reused   bool                 `json:"reused"`
	AudioURL string               `json:"audio_url"`
	State    session.State        `json:"state"`
}

// CreateTranscriptionRequest asks for a transcription of the cached audio
type CreateTranscriptionRequest struct {
	Mode  string `json:"mode" binding:"omitempty,oneof=segmented subtitle srt"`
	Force bool   `json:"force"`
}

// Validate performs domain-specific validation
func (r *CreateTranscriptionRequest) Validate() error {
	if _, err := model.ParseOutputMode(r.Mode); err != nil {
		return errors.NewValidationError("Invalid transcription request", map[string]string{
			"mode": err.Error(),
		})
	}
	return nil
}

// OutputMode returns the parsed mode; call Validate first
func (r *CreateTranscriptionRequest) OutputMode() model.OutputMode {
	mode, _ := model.ParseOutputMode(r.Mode)
	return mode
}

// TranscriptionResult is the displayed transcript
type TranscriptionResult struct {
	Mode        model.OutputMode `json:"mode"`
	Text        string           `json:"text"`
	Filename    string           `json:"filename"`
	ContentType string           `json:"content_type"`
	DownloadURL string           `json:"download_url"`
}

// NewTranscriptionResult converts a formatted transcript
func NewTranscriptionResult(f model.FormattedTranscript) TranscriptionResult {
	return TranscriptionResult{
		Mode:        f.Mode,
		Text:        f.Text,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		DownloadURL: DownloadURL,
	}
}

// TranscriptionResponse is returned by POST /transcriptions
type TranscriptionResponse struct {
	TranscriptionResult
	State session.State `json:"state"`
}
