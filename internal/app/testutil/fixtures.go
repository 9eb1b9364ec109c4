package testutil

import (
	"subtitle-whisper/internal/app/model"
)

// TestAPIKey passes the credential format checks
const TestAPIKey = "sk-test-1234567890abcdefghij"

// SegmentedTranscript returns a two-segment transcript
func SegmentedTranscript() *model.Transcript {
	return &model.Transcript{
		Mode: model.OutputModeSegmented,
		Text: "Hello there. General Kenobi.",
		Segments: []model.Segment{
			{Start: 0, End: 4.2, Text: "Hello there."},
			{Start: 75.9, End: 125.4, Text: "General Kenobi."},
		},
	}
}

// SubtitleTranscript returns an SRT document transcript
func SubtitleTranscript() *model.Transcript {
	return &model.Transcript{
		Mode:     model.OutputModeSubtitle,
		Document: "1\n00:00:00,000 --> 00:00:04,200\nHello there.\n\n2\n00:01:15,900 --> 00:02:05,400\nGeneral Kenobi.\n",
	}
}

// SilentTranscript is what the service returns for ten seconds of silence
func SilentTranscript() *model.Transcript {
	return &model.Transcript{
		Mode:     model.OutputModeSegmented,
		Segments: []model.Segment{{Start: 0.0, End: 10.0, Text: ""}},
	}
}

// SilentMP3 is a stand-in for a ten second silent MP3 upload
func SilentMP3() []byte {
	data := append([]byte("ID3"), make([]byte, 4096)...)
	return data
}

// FakeVideo returns distinct bytes per seed, all declared as mp4
func FakeVideo(seed string) []byte {
	return append([]byte("\x00\x00\x00\x18ftypmp42"), []byte(seed)...)
}
