// Package formatter renders transcripts for display and download.
package formatter

import (
	"fmt"
	"math"
	"strings"

	"subtitle-whisper/internal/app/model"
)

const (
	// ContentType is used for both downloadable documents
	ContentType = "text/plain; charset=utf-8"

	textFilename     = "transcription.txt"
	subtitleFilename = "transcription.srt"
)

// Timestamped renders one "[MM:SS – MM:SS] text" line per segment, in input order.
func Timestamped(segments []model.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("[%s – %s] %s", clock(s.Start), clock(s.End), strings.TrimSpace(s.Text)))
	}
	return strings.Join(lines, "\n")
}

// clock truncates fractional seconds; 75.9 becomes 01:15
func clock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	whole := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}

// Filename returns the download name offered for a mode
func Filename(mode model.OutputMode) string {
	if mode == model.OutputModeSubtitle {
		return subtitleFilename
	}
	return textFilename
}

// Format turns a transcription result into its displayable form.
// Subtitle documents pass through untouched.
func Format(t *model.Transcript) model.FormattedTranscript {
	out := model.FormattedTranscript{
		Mode:        t.Mode,
		Filename:    Filename(t.Mode),
		ContentType: ContentType,
	}
	if t.Mode == model.OutputModeSubtitle {
		out.Text = t.Document
	} else {
		out.Text = Timestamped(t.Segments)
	}
	return out
}
