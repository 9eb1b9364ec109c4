package services

import (
	"context"

	"go.uber.org/zap"

	"subtitle-whisper/internal/api/v1/dto"
	"subtitle-whisper/internal/app/errors"
	"subtitle-whisper/internal/app/model"
	"subtitle-whisper/internal/app/orchestrator"
	"subtitle-whisper/internal/app/session"
)

type transcriptionService struct {
	orchestrator *orchestrator.Orchestrator
	logger       *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(orch *orchestrator.Orchestrator, logger *zap.Logger) TranscriptionService {
	return &transcriptionService{
		orchestrator: orch,
		logger:       logger,
	}
}

// Upload runs the conversion step. The work is detached from the request
// context so a reload of the page does not abort it; the page picks the
// result up by polling the session.
func (s *transcriptionService) Upload(ctx context.Context, sess *session.Session, upload model.UploadedMedia) (*dto.UploadResponse, error) {
	if err := sess.TryBegin(); err != nil {
		return nil, err
	}
	defer sess.End()

	res, err := s.orchestrator.Prepare(context.WithoutCancel(ctx), sess, upload, nil)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{
		Upload:   res.Identity,
		Reused:   res.Reused,
		AudioURL: dto.AudioURL,
		State:    sess.State(),
	}, nil
}

func (s *transcriptionService) Audio(sess *session.Session) (*model.ExtractedAudio, error) {
	audio := sess.Audio()
	if audio == nil {
		return nil, errors.ErrNoAudio
	}
	return audio, nil
}

// Transcribe runs the transcription step, detached from the request context
// like Upload.
func (s *transcriptionService) Transcribe(ctx context.Context, sess *session.Session, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error) {
	if err := sess.TryBegin(); err != nil {
		return nil, err
	}
	defer sess.End()

	formatted, err := s.orchestrator.Transcribe(context.WithoutCancel(ctx), sess, req.OutputMode(), req.Force, nil)
	if err != nil {
		return nil, err
	}
	return &dto.TranscriptionResponse{
		TranscriptionResult: dto.NewTranscriptionResult(*formatted),
		State:               sess.State(),
	}, nil
}

func (s *transcriptionService) Download(sess *session.Session) (*model.FormattedTranscript, error) {
	formatted := sess.Formatted()
	if formatted == nil {
		return nil, errors.ErrNoTranscript
	}
	return formatted, nil
}
