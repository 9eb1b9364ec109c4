//go:build integration
// +build integration

package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: go test -tags=integration ./internal/app/audio/

func TestExtractAudioIntegration(t *testing.T) {
	c := NewFFmpegConverter("", nil)
	if !c.Available() {
		t.Skip("FFmpeg not available, skipping integration tests")
	}

	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	gen := exec.Command("ffmpeg", "-y", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=c=black:s=64x64:d=2",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=2",
		"-shortest", "-c:v", "libx264", "-c:a", "aac", video)
	require.NoError(t, gen.Run())

	out := filepath.Join(dir, "clip.mp3")
	require.NoError(t, c.ExtractAudio(context.Background(), video, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExtractAudioIntegration_CorruptInput(t *testing.T) {
	c := NewFFmpegConverter("", nil)
	if !c.Available() {
		t.Skip("FFmpeg not available, skipping integration tests")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.mp4")
	require.NoError(t, os.WriteFile(bad, []byte("definitely not a video"), 0o600))

	out := filepath.Join(dir, "broken.mp3")
	err := c.ExtractAudio(context.Background(), bad, out)
	assert.Error(t, err)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
