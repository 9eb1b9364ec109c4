package session

import (
	"sync"
	"time"

	"subtitle-whisper/internal/app/errors"
	"subtitle-whisper/internal/app/model"
)

type resultKey struct {
	digest string
	mode   model.OutputMode
}

type result struct {
	transcript *model.Transcript
	formatted  model.FormattedTranscript
}

// Session is the per-user context passed to every orchestration step.
// Only one action runs at a time (TryBegin/End); reads use snapshots and
// never wait for a running action.
type Session struct {
	ID         string
	CreatedAt  time.Time
	scratchDir string

	work sync.Mutex

	mu         sync.RWMutex
	state      State
	apiKey     string
	upload     *model.UploadIdentity
	audio      *model.ExtractedAudio
	mode       model.OutputMode
	transcript *model.Transcript
	formatted  *model.FormattedTranscript
	results    map[resultKey]result
	lastError  string
	updatedAt  time.Time
	lastSeen   time.Time
	closed     bool
}

// New creates an idle session whose scratch data lives in scratchDir
func New(id, scratchDir string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		CreatedAt:  now,
		scratchDir: scratchDir,
		state:      StateIdle,
		mode:       model.OutputModeSegmented,
		results:    make(map[resultKey]result),
		updatedAt:  now,
		lastSeen:   now,
	}
}

// ScratchDir is the directory reserved for this session's temporary files
func (s *Session) ScratchDir() string {
	return s.scratchDir
}

// TryBegin claims the session for one action. An ended session can no
// longer be claimed.
func (s *Session) TryBegin() error {
	if !s.work.TryLock() {
		return errors.ErrSessionBusy
	}
	if s.isClosed() {
		s.work.Unlock()
		return errors.ErrSessionNotFound
	}
	return nil
}

// End releases the claim taken by TryBegin
func (s *Session) End() {
	s.work.Unlock()
}

// State returns the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Transition moves to a new state if the transition is defined.
// Leaving Errored for a non-error state clears the last error.
func (s *Session) Transition(to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkTransition(s.state, to); err != nil {
		return err
	}
	s.state = to
	if to != StateErrored {
		s.lastError = ""
	}
	s.touch()
	return nil
}

// Fail moves to Errored and records a user-facing message. Cached audio and
// the last formatted transcript are left untouched.
func (s *Session) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateErrored
	s.lastError = message
	s.touch()
}

// SetCredential caches the API credential for the rest of the session
func (s *Session) SetCredential(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = apiKey
	s.touch()
}

// Credential returns the cached API credential, if any
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// Upload returns the identity of the upload the cached audio came from
func (s *Session) Upload() *model.UploadIdentity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.upload == nil {
		return nil
	}
	u := *s.upload
	return &u
}

// Audio returns the cached extracted audio
func (s *Session) Audio() *model.ExtractedAudio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.audio == nil {
		return nil
	}
	a := *s.audio
	return &a
}

// SetAudio replaces the cache entry and returns the superseded audio so the
// caller can release its scratch file. Cached transcription results of other
// uploads are dropped; the last formatted text stays visible.
func (s *Session) SetAudio(identity model.UploadIdentity, audio model.ExtractedAudio) *model.ExtractedAudio {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.audio
	s.upload = &identity
	s.audio = &audio
	for k := range s.results {
		if k.digest != identity.Digest {
			delete(s.results, k)
		}
	}
	s.touch()
	return prev
}

// Mode returns the selected output mode
func (s *Session) Mode() model.OutputMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode records the selected output mode. The last formatted text is kept
// until a new transcription replaces it.
func (s *Session) SetMode(mode model.OutputMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != mode {
		s.mode = mode
		s.touch()
	}
}

// CachedResult returns an earlier result for the same audio and mode
func (s *Session) CachedResult(digest string, mode model.OutputMode) (*model.Transcript, *model.FormattedTranscript, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[resultKey{digest: digest, mode: mode}]
	if !ok {
		return nil, nil, false
	}
	f := r.formatted
	return r.transcript, &f, true
}

// SetResult stores a finished transcription as the current one
func (s *Session) SetResult(digest string, transcript *model.Transcript, formatted model.FormattedTranscript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[resultKey{digest: digest, mode: formatted.Mode}] = result{transcript: transcript, formatted: formatted}
	s.transcript = transcript
	s.formatted = &formatted
	s.touch()
}

// Formatted returns the last formatted transcript
func (s *Session) Formatted() *model.FormattedTranscript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.formatted == nil {
		return nil
	}
	f := *s.formatted
	return &f
}

// Reset drops every slot except the credential and returns to Idle.
// It returns the audio that was cached so the caller can release it.
func (s *Session) Reset() *model.ExtractedAudio {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.audio
	s.state = StateIdle
	s.upload = nil
	s.audio = nil
	s.transcript = nil
	s.formatted = nil
	s.results = make(map[resultKey]result)
	s.lastError = ""
	s.touch()
	return prev
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

func (s *Session) markSeen(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// lastActive is the later of the last request and the last slot change
func (s *Session) lastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.updatedAt.After(s.lastSeen) {
		return s.updatedAt
	}
	return s.lastSeen
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Snapshot is a read-only copy of the session slots
type Snapshot struct {
	ID            string                     `json:"id"`
	State         State                      `json:"state"`
	Busy          bool                       `json:"busy"`
	HasCredential bool                       `json:"has_credential"`
	Upload        *model.UploadIdentity      `json:"upload,omitempty"`
	AudioReady    bool                       `json:"audio_ready"`
	Mode          model.OutputMode           `json:"mode"`
	Transcript    *model.Transcript          `json:"transcript,omitempty"`
	Formatted     *model.FormattedTranscript `json:"formatted,omitempty"`
	LastError     string                     `json:"last_error,omitempty"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// Snapshot copies the current slots
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		ID:            s.ID,
		State:         s.state,
		Busy:          s.state.Busy(),
		HasCredential: s.apiKey != "",
		AudioReady:    s.audio != nil,
		Mode:          s.mode,
		Transcript:    s.transcript,
		LastError:     s.lastError,
		UpdatedAt:     s.updatedAt,
	}
	if s.upload != nil {
		u := *s.upload
		snap.Upload = &u
	}
	if s.formatted != nil {
		f := *s.formatted
		snap.Formatted = &f
	}
	return snap
}
