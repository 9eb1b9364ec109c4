package dto

import (
	"time"

	"subtitle-whisper/internal/app/model"
	"subtitle-whisper/internal/app/session"
)

// SessionResponse is everything the page needs to redraw itself
type SessionResponse struct {
	ID                  string                `json:"id"`
	State               session.State         `json:"state"`
	Busy                bool                  `json:"busy"`
	StatusMessage       string                `json:"status_message,omitempty"`
	HasCredential       bool                  `json:"has_credential"`
	Upload              *model.UploadIdentity `json:"upload,omitempty"`
	AudioReady          bool                  `json:"audio_ready"`
	AudioURL            string                `json:"audio_url,omitempty"`
	Mode                model.OutputMode      `json:"mode"`
	Transcription       *TranscriptionResult  `json:"transcription,omitempty"`
	LastError           string                `json:"last_error,omitempty"`
	SupportedExtensions []string              `json:"supported_extensions"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// SetCredentialRequest supplies an API key for the rest of the session
type SetCredentialRequest struct {
	APIKey string `json:"api_key" binding:"required,startswith=sk-,min=20"`
}

// CredentialResponse confirms a credential without echoing it
type CredentialResponse struct {
	HasCredential bool `json:"has_credential"`
}

// StatusMessage is the status line shown under the upload form
func StatusMessage(state session.State) string {
	switch state {
	case session.StateReadyToTranscribe:
		return "Audio was extracted."
	case session.StateConverting:
		return "Converting video to audio, please wait..."
	case session.StateTranscribing:
		return "Transcribing audio, please wait..."
	default:
		return ""
	}
}

// NewSessionResponse builds the response from a session snapshot
func NewSessionResponse(snap session.Snapshot, hasDefaultCredential bool) SessionResponse {
	resp := SessionResponse{
		ID:                  snap.ID,
		State:               snap.State,
		Busy:                snap.Busy,
		StatusMessage:       StatusMessage(snap.State),
		HasCredential:       snap.HasCredential || hasDefaultCredential,
		Upload:              snap.Upload,
		AudioReady:          snap.AudioReady,
		Mode:                snap.Mode,
		LastError:           snap.LastError,
		SupportedExtensions: model.SupportedExtensions(),
		UpdatedAt:           snap.UpdatedAt,
	}
	if snap.AudioReady {
		resp.AudioURL = AudioURL
	}
	if snap.Formatted != nil {
		result := NewTranscriptionResult(*snap.Formatted)
		resp.Transcription = &result
	}
	return resp
}
