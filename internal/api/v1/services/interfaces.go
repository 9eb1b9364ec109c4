package services

import (
	"context"

	"subtitle-whisper/internal/api/v1/dto"
	"subtitle-whisper/internal/app/model"
	"subtitle-whisper/internal/app/session"
)

// SessionService defines the interface for session operations
type SessionService interface {
	Describe(sess *session.Session) dto.SessionResponse
	SetCredential(sess *session.Session, req *dto.SetCredentialRequest) dto.CredentialResponse
	End(sess *session.Session) error
}

// TranscriptionService defines the interface for upload and transcription operations
type TranscriptionService interface {
	Upload(ctx context.Context, sess *session.Session, upload model.UploadedMedia) (*dto.UploadResponse, error)
	Audio(sess *session.Session) (*model.ExtractedAudio, error)
	Transcribe(ctx context.Context, sess *session.Session, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error)
	Download(sess *session.Session) (*model.FormattedTranscript, error)
}
