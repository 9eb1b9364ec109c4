package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtitle-whisper/internal/app/errors"
	"subtitle-whisper/internal/app/model"
)

func TestSession_TryBegin(t *testing.T) {
	s := New("id", t.TempDir())

	require.NoError(t, s.TryBegin())
	assert.True(t, errors.Is(s.TryBegin(), errors.ErrSessionBusy))

	// reads do not wait for the running action
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)

	s.End()
	require.NoError(t, s.TryBegin())
	s.End()
}

func TestSession_SetAudioReturnsSuperseded(t *testing.T) {
	s := New("id", t.TempDir())

	prev := s.SetAudio(model.UploadIdentity{Digest: "a"}, model.ExtractedAudio{Path: "/scratch/a.mp3"})
	assert.Nil(t, prev)

	prev = s.SetAudio(model.UploadIdentity{Digest: "b"}, model.ExtractedAudio{Path: "/scratch/b.mp3"})
	require.NotNil(t, prev)
	assert.Equal(t, "/scratch/a.mp3", prev.Path)
	assert.Equal(t, "b", s.Upload().Digest)
	assert.Equal(t, "/scratch/b.mp3", s.Audio().Path)
}

func TestSession_Results(t *testing.T) {
	s := New("id", t.TempDir())
	tr := &model.Transcript{Mode: model.OutputModeSegmented}
	f := model.FormattedTranscript{Mode: model.OutputModeSegmented, Text: "[00:00 – 00:01] hi"}

	_, _, ok := s.CachedResult("digest", model.OutputModeSegmented)
	assert.False(t, ok)

	s.SetResult("digest", tr, f)

	gotT, gotF, ok := s.CachedResult("digest", model.OutputModeSegmented)
	require.True(t, ok)
	assert.Same(t, tr, gotT)
	assert.Equal(t, f, *gotF)

	_, _, ok = s.CachedResult("digest", model.OutputModeSubtitle)
	assert.False(t, ok)

	assert.Equal(t, "[00:00 – 00:01] hi", s.Formatted().Text)
}

func TestSession_ResetKeepsCredential(t *testing.T) {
	s := New("id", t.TempDir())
	s.SetCredential("sk-session-key")
	s.SetAudio(model.UploadIdentity{Digest: "a"}, model.ExtractedAudio{Path: "/scratch/a.mp3"})
	s.SetResult("a", &model.Transcript{}, model.FormattedTranscript{Mode: model.OutputModeSegmented})

	prev := s.Reset()
	require.NotNil(t, prev)

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.True(t, snap.HasCredential)
	assert.Nil(t, snap.Upload)
	assert.Nil(t, snap.Formatted)
	assert.False(t, snap.AudioReady)
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := New("id", t.TempDir())
	s.SetAudio(model.UploadIdentity{Digest: "a", Filename: "a.mp3"}, model.ExtractedAudio{Path: "/a"})

	snap := s.Snapshot()
	snap.Upload.Filename = "changed"

	assert.Equal(t, "a.mp3", s.Upload().Filename)
}

func TestStore_Isolation(t *testing.T) {
	root := t.TempDir()
	st, err := NewStore(root, nil)
	require.NoError(t, err)

	a := st.Create()
	b := st.Create()
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ScratchDir(), b.ScratchDir())
	assert.Equal(t, filepath.Join(root, a.ID), a.ScratchDir())

	a.SetCredential("sk-a")
	assert.Empty(t, b.Credential())
	assert.Equal(t, 2, st.Len())
}

func TestStore_GetOrCreate(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	s, created := st.GetOrCreate("")
	assert.True(t, created)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := st.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.NotEqual(t, "unknown-id", other.ID)
}

func TestStore_DeleteReleasesScratch(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	s := st.Create()
	require.NoError(t, os.MkdirAll(s.ScratchDir(), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(s.ScratchDir(), "x.mp3"), []byte("x"), 0o600))

	require.NoError(t, st.Delete(s.ID))
	_, statErr := os.Stat(s.ScratchDir())
	assert.True(t, os.IsNotExist(statErr))

	_, ok := st.Get(s.ID)
	assert.False(t, ok)
	assert.True(t, errors.Is(st.Delete(s.ID), errors.ErrSessionNotFound))
}

func TestStore_ConcurrentCreate(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Create()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, st.Len())
	require.NoError(t, st.Close())
	assert.Equal(t, 0, st.Len())
}

func TestSession_NewUploadDropsOtherResults(t *testing.T) {
	s := New("id", t.TempDir())
	s.SetAudio(model.UploadIdentity{Digest: "a"}, model.ExtractedAudio{Path: "/a"})
	s.SetResult("a", &model.Transcript{}, model.FormattedTranscript{Mode: model.OutputModeSegmented, Text: "old"})

	s.SetAudio(model.UploadIdentity{Digest: "b"}, model.ExtractedAudio{Path: "/b"})

	_, _, ok := s.CachedResult("a", model.OutputModeSegmented)
	assert.False(t, ok)
	assert.Equal(t, "old", s.Formatted().Text)
}

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	idle := st.Create()
	active := st.Create()
	busy := st.Create()
	require.NoError(t, os.MkdirAll(idle.ScratchDir(), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(idle.ScratchDir(), "x.mp3"), []byte("x"), 0o600))

	later := time.Now().Add(2 * time.Hour)
	st.now = func() time.Time { return later }

	_, ok := st.Get(active.ID)
	require.True(t, ok)
	require.NoError(t, busy.TryBegin())

	assert.Equal(t, 1, st.Sweep(time.Hour))
	assert.Equal(t, 2, st.Len())

	_, ok = st.Get(idle.ID)
	assert.False(t, ok)
	_, statErr := os.Stat(idle.ScratchDir())
	assert.True(t, os.IsNotExist(statErr))
	assert.True(t, errors.Is(idle.TryBegin(), errors.ErrSessionNotFound))

	_, ok = st.Get(active.ID)
	assert.True(t, ok)

	// the running action is not interrupted; the session goes once it ends
	busy.End()
	assert.Equal(t, 1, st.Sweep(time.Hour))
	_, ok = st.Get(busy.ID)
	assert.False(t, ok)
}

func TestStore_SweepDisabled(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	st.Create()
	st.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

	assert.Zero(t, st.Sweep(0))
	assert.Zero(t, st.Sweep(-time.Minute))
	assert.Equal(t, 1, st.Len())
}

func TestStore_ExpireStopsWithContext(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Expire(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expire did not return after cancel")
	}
}
