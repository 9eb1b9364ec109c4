package model

import (
	"fmt"
	"strings"
)

// OutputMode selects between a timestamped text block and a subtitle track
type OutputMode string

const (
	OutputModeSegmented OutputMode = "segmented"
	OutputModeSubtitle  OutputMode = "subtitle"
)

// ParseOutputMode accepts the two known modes; an empty string means segmented
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputModeSegmented:
		return OutputModeSegmented, nil
	case OutputModeSubtitle, "srt":
		return OutputModeSubtitle, nil
	default:
		return "", fmt.Errorf("unknown output mode %q", s)
	}
}

// Segment is a timed span of transcript text. Start and End are seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is what the transcription service returned for one request.
// Segments is filled in segmented mode, Document in subtitle mode.
type Transcript struct {
	Mode     OutputMode `json:"mode"`
	Text     string     `json:"text,omitempty"`
	Language string     `json:"language,omitempty"`
	Duration float64    `json:"duration,omitempty"`
	Segments []Segment  `json:"segments,omitempty"`
	Document string     `json:"document,omitempty"`
}

// FormattedTranscript is the rendered result offered for display and download
type FormattedTranscript struct {
	Mode        OutputMode `json:"mode"`
	Text        string     `json:"text"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
}
