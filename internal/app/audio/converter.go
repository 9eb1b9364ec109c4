package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// TargetExtension is the container every extracted track is encoded into
const TargetExtension = "mp3"

// Converter extracts an audio track from a media file
type Converter interface {
	ExtractAudio(ctx context.Context, inputPath string, outputPath string) error
}

// FFmpegConverter runs the ffmpeg binary to extract audio
type FFmpegConverter struct {
	binary string
	logger *zap.Logger
}

// NewFFmpegConverter creates a converter; an empty binary means "ffmpeg" on PATH
func NewFFmpegConverter(binary string, logger *zap.Logger) *FFmpegConverter {
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegConverter{binary: binary, logger: logger}
}

// Binary returns the ffmpeg executable in use
func (c *FFmpegConverter) Binary() string {
	return c.binary
}

// Available reports whether the ffmpeg binary can be found
func (c *FFmpegConverter) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// ExtractAudio drops the video stream and encodes the audio as MP3.
// A partially written output is removed on failure.
func (c *FFmpegConverter) ExtractAudio(ctx context.Context, inputPath string, outputPath string) error {
	c.logger.Debug("extracting audio", zap.String("input", inputPath), zap.String("output", outputPath))

	cmd := exec.CommandContext(ctx, c.binary, mp3Args(inputPath, outputPath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, lastLines(stderr.String(), 5))
	}

	c.logger.Info("audio extraction completed", zap.String("output", outputPath))
	return nil
}

func mp3Args(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		outputPath,
	}
}

// lastLines keeps ffmpeg error output short enough to show to a user
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
