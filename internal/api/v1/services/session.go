package services

import (
	"go.uber.org/zap"

	"subtitle-whisper/internal/api/v1/dto"
	"subtitle-whisper/internal/app/orchestrator"
	"subtitle-whisper/internal/app/session"
)

type sessionService struct {
	orchestrator *orchestrator.Orchestrator
	store        *session.Store
	logger       *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(orch *orchestrator.Orchestrator, store *session.Store, logger *zap.Logger) SessionService {
	return &sessionService{
		orchestrator: orch,
		store:        store,
		logger:       logger,
	}
}

// Describe never waits for a running action
func (s *sessionService) Describe(sess *session.Session) dto.SessionResponse {
	return dto.NewSessionResponse(sess.Snapshot(), s.orchestrator.HasDefaultCredential())
}

func (s *sessionService) SetCredential(sess *session.Session, req *dto.SetCredentialRequest) dto.CredentialResponse {
	sess.SetCredential(req.APIKey)
	s.logger.Info("session credential supplied", zap.String("session_id", sess.ID))
	return dto.CredentialResponse{HasCredential: true}
}

// End drops the session and its scratch files. A running action makes it
// fail with ErrSessionBusy.
func (s *sessionService) End(sess *session.Session) error {
	if err := sess.TryBegin(); err != nil {
		return err
	}
	defer sess.End()

	s.orchestrator.Reset(sess)
	if err := s.store.Delete(sess.ID); err != nil {
		return err
	}
	s.logger.Info("session ended", zap.String("session_id", sess.ID))
	return nil
}
