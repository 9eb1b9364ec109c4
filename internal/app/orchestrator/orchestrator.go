// Package orchestrator sequences upload, audio extraction, transcription and
// formatting for one session at a time.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"subtitle-whisper/internal/app/api"
	"subtitle-whisper/internal/app/audio"
	"subtitle-whisper/internal/app/errors"
	"subtitle-whisper/internal/app/formatter"
	"subtitle-whisper/internal/app/metrics"
	"subtitle-whisper/internal/app/model"
	"subtitle-whisper/internal/app/session"
	"subtitle-whisper/internal/app/utils"
)

// Orchestrator owns the conversion cache policy and the scratch files
type Orchestrator struct {
	converter         audio.Converter
	transcribers      api.TranscriberFactory
	defaultCredential string
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithDefaultCredential sets the credential used when a session has none
func WithDefaultCredential(apiKey string) Option {
	return func(o *Orchestrator) {
		o.defaultCredential = apiKey
	}
}

// WithMetrics records conversions and transcriptions into m
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an orchestrator
func New(converter audio.Converter, transcribers api.TranscriberFactory, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		converter:    converter,
		transcribers: transcribers,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = metrics.New(nil)
	}
	return o
}

// Credential returns the credential in effect for a session
func (o *Orchestrator) Credential(sess *session.Session) string {
	if key := sess.Credential(); key != "" {
		return key
	}
	return o.defaultCredential
}

// HasDefaultCredential reports whether sessions work without supplying a key
func (o *Orchestrator) HasDefaultCredential() bool {
	return o.defaultCredential != ""
}

// PrepareResult describes the audio made ready by Prepare
type PrepareResult struct {
	Identity model.UploadIdentity
	Audio    model.ExtractedAudio
	Reused   bool
}

// Prepare makes the upload's audio ready for transcription. An upload whose
// content digest matches the cached one reuses the cached audio; otherwise
// video is converted and audio passed through. Failures are recorded on the
// session and never cached.
func (o *Orchestrator) Prepare(ctx context.Context, sess *session.Session, upload model.UploadedMedia, progress Progress) (*PrepareResult, error) {
	if upload.IsEmpty() {
		return nil, errors.ErrEmptyUpload
	}
	if o.Credential(sess) == "" {
		return nil, errors.ErrMissingCredential
	}
	if progress == nil {
		progress = NopProgress
	}

	log := o.logger.With(zap.String("session_id", sess.ID), zap.String("filename", upload.Filename))

	kind, ok := upload.Kind()
	if !ok {
		err := errors.UnsupportedExtension(upload.Extension, model.SupportedExtensions())
		sess.Fail(err.Error())
		log.Warn("rejected upload", zap.Error(err))
		return nil, err
	}

	identity := model.UploadIdentity{
		Digest:   utils.HashBytes(upload.Data),
		Filename: upload.Filename,
		Size:     int64(len(upload.Data)),
		Kind:     string(kind),
	}

	if cur, cached := sess.Upload(), sess.Audio(); cur != nil && cached != nil &&
		cur.Digest == identity.Digest && utils.FileExists(cached.Path) {
		o.metrics.ConversionCacheHits.Inc()
		if sess.State() == session.StateErrored {
			if err := sess.Transition(session.StateReadyToTranscribe); err != nil {
				return nil, err
			}
		}
		log.Debug("upload unchanged, reusing extracted audio", zap.String("audio", cached.Path))
		return &PrepareResult{Identity: *cur, Audio: *cached, Reused: true}, nil
	}

	o.metrics.Uploads.WithLabelValues(string(kind)).Inc()
	if err := sess.Transition(session.StateConverting); err != nil {
		return nil, err
	}

	progress.Begin(StageConverting)
	extracted, err := o.materialize(ctx, sess, upload, kind)
	progress.End(StageConverting, err)
	if err != nil {
		sess.Fail(err.Error())
		log.Error("audio preparation failed", zap.Error(err))
		return nil, err
	}

	if prev := sess.SetAudio(identity, extracted); prev != nil && prev.Path != extracted.Path {
		release(log, prev.Path)
	}
	if err := sess.Transition(session.StateReadyToTranscribe); err != nil {
		return nil, err
	}

	log.Info("audio ready",
		zap.String("kind", string(kind)),
		zap.Bool("converted", extracted.Converted),
		zap.Int64("size", identity.Size),
	)
	return &PrepareResult{Identity: identity, Audio: extracted}, nil
}

// materialize writes the upload into the session scratch directory and
// extracts audio from video. Nothing is left behind on failure.
func (o *Orchestrator) materialize(ctx context.Context, sess *session.Session, upload model.UploadedMedia, kind model.MediaKind) (model.ExtractedAudio, error) {
	dir := sess.ScratchDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return model.ExtractedAudio{}, errors.Kind(errors.ErrFileWriteFailed, err)
	}

	base := uuid.New().String()
	src := filepath.Join(dir, base+"."+upload.Extension)
	if err := os.WriteFile(src, upload.Data, 0o600); err != nil {
		_ = os.Remove(src)
		return model.ExtractedAudio{}, errors.Kind(errors.ErrFileWriteFailed, err)
	}

	if kind == model.MediaKindAudio {
		return model.ExtractedAudio{Path: src, Extension: upload.Extension}, nil
	}

	out := filepath.Join(dir, base+"."+audio.TargetExtension)
	err := o.converter.ExtractAudio(ctx, src, out)
	_ = os.Remove(src)
	o.metrics.ObserveConversion(err)
	if err != nil {
		_ = os.Remove(out)
		return model.ExtractedAudio{}, errors.Kind(errors.ErrConversionFailed, err)
	}
	return model.ExtractedAudio{Path: out, Extension: audio.TargetExtension, Converted: true}, nil
}

// Transcribe sends the cached audio upstream in the requested mode and
// formats the result. A result already produced for the same audio and mode
// is reused unless force is set. On failure the previous transcript stays.
func (o *Orchestrator) Transcribe(ctx context.Context, sess *session.Session, mode model.OutputMode, force bool, progress Progress) (*model.FormattedTranscript, error) {
	if progress == nil {
		progress = NopProgress
	}
	identity, extracted := sess.Upload(), sess.Audio()
	if identity == nil || extracted == nil {
		return nil, errors.ErrNoAudio
	}
	apiKey := o.Credential(sess)
	if apiKey == "" {
		return nil, errors.ErrMissingCredential
	}
	sess.SetMode(mode)

	log := o.logger.With(zap.String("session_id", sess.ID), zap.String("mode", string(mode)))

	if !force {
		if _, formatted, ok := sess.CachedResult(identity.Digest, mode); ok {
			o.metrics.TranscriptionCacheHit.WithLabelValues(string(mode)).Inc()
			if sess.State() != session.StateDone {
				if err := sess.Transition(session.StateTranscribing); err != nil {
					return nil, err
				}
				if err := sess.Transition(session.StateDone); err != nil {
					return nil, err
				}
			}
			log.Debug("reusing transcription")
			return formatted, nil
		}
	}

	if err := sess.Transition(session.StateTranscribing); err != nil {
		return nil, err
	}

	progress.Begin(StageTranscribing)
	transcript, err := o.callUpstream(ctx, apiKey, extracted, mode)
	progress.End(StageTranscribing, err)
	if err != nil {
		sess.Fail(UserMessage(err))
		log.Error("transcription failed", zap.Error(err))
		return nil, err
	}

	formatted := formatter.Format(transcript)
	sess.SetResult(identity.Digest, transcript, formatted)
	if err := sess.Transition(session.StateDone); err != nil {
		return nil, err
	}

	log.Info("transcription completed",
		zap.Int("segments", len(transcript.Segments)),
		zap.Int("chars", len(formatted.Text)),
	)
	return &formatted, nil
}

func (o *Orchestrator) callUpstream(ctx context.Context, apiKey string, extracted *model.ExtractedAudio, mode model.OutputMode) (*model.Transcript, error) {
	f, err := os.Open(extracted.Path)
	if err != nil {
		return nil, errors.Kind(errors.ErrNoAudio, err)
	}
	defer f.Close()

	started := time.Now()
	transcript, err := o.transcribers(apiKey).Transcribe(ctx, f, "audio."+extracted.Extension, mode)
	o.metrics.ObserveTranscription(string(mode), started, err)
	if err != nil {
		return nil, err
	}
	transcript.Mode = mode
	return transcript, nil
}

// Process runs Prepare then Transcribe
func (o *Orchestrator) Process(ctx context.Context, sess *session.Session, upload model.UploadedMedia, mode model.OutputMode, progress Progress) (*model.FormattedTranscript, error) {
	if _, err := o.Prepare(ctx, sess, upload, progress); err != nil {
		return nil, err
	}
	return o.Transcribe(ctx, sess, mode, false, progress)
}

// Reset returns the session to Idle and releases its cached audio
func (o *Orchestrator) Reset(sess *session.Session) {
	if prev := sess.Reset(); prev != nil {
		release(o.logger, prev.Path)
	}
}

// UserMessage renders an error for display next to the upload form
func UserMessage(err error) string {
	var te *api.TranscriptionError
	if errors.As(err, &te) {
		return te.Message
	}
	return err.Error()
}

func release(log *zap.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to release scratch audio", zap.String("path", path), zap.Error(err))
	}
}
