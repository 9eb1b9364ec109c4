package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"subtitle-whisper/internal/app/errors"
)

// Store keeps the sessions of this process. Sessions never share state or
// scratch directories.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	scratchRoot string
	logger      *zap.Logger
	now         func() time.Time
}

// NewStore creates a store whose sessions keep scratch files under scratchRoot
func NewStore(scratchRoot string, logger *zap.Logger) (*Store, error) {
	if scratchRoot == "" {
		scratchRoot = filepath.Join(os.TempDir(), "subtitle-whisper")
	}
	if err := os.MkdirAll(scratchRoot, 0o700); err != nil {
		return nil, errors.Wrapf(err, "failed to create scratch root %s", scratchRoot)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions:    make(map[string]*Session),
		scratchRoot: scratchRoot,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Create starts a new session with a fresh ID
func (st *Store) Create() *Session {
	id := uuid.New().String()
	s := New(id, filepath.Join(st.scratchRoot, id))

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	st.logger.Debug("session created", zap.String("session_id", id))
	return s
}

// Get looks up a session by ID and records the access
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.markSeen(st.now())
	}
	return s, ok
}

// GetOrCreate returns the session for id, or a new one when id is unknown
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}
	return st.Create(), true
}

// Delete ends a session and releases its scratch directory
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}
	s.close()
	if err := os.RemoveAll(s.ScratchDir()); err != nil {
		return fmt.Errorf("failed to release scratch data for session %s: %w", id, err)
	}
	st.logger.Debug("session deleted", zap.String("session_id", id))
	return nil
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close ends every session
func (st *Store) Close() error {
	st.mu.RLock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	st.mu.RUnlock()

	var firstErr error
	for _, id := range ids {
		if err := st.Delete(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Sweep ends every session with no request or slot change for longer than
// idle. Sessions in the middle of an action are left alone.
func (st *Store) Sweep(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := st.now().Add(-idle)

	st.mu.RLock()
	var stale []*Session
	for _, s := range st.sessions {
		if s.lastActive().Before(cutoff) {
			stale = append(stale, s)
		}
	}
	st.mu.RUnlock()

	removed := 0
	for _, s := range stale {
		if err := s.TryBegin(); err != nil {
			continue
		}
		if s.lastActive().Before(cutoff) {
			if err := st.Delete(s.ID); err != nil {
				st.logger.Warn("failed to expire session", zap.String("session_id", s.ID), zap.Error(err))
			} else {
				removed++
			}
		}
		s.End()
	}
	if removed > 0 {
		st.logger.Info("idle sessions expired", zap.Int("count", removed), zap.Duration("idle", idle))
	}
	return removed
}

// Expire sweeps idle sessions periodically until ctx is cancelled
func (st *Store) Expire(ctx context.Context, idle time.Duration) {
	if idle <= 0 {
		return
	}
	interval := idle / 4
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep(idle)
		}
	}
}
