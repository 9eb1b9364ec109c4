package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		input string
		kind  MediaKind
		ok    bool
	}{
		{"mp3", MediaKindAudio, true},
		{".M4A", MediaKindAudio, true},
		{"talk.wav", MediaKindAudio, true},
		{"clip.mp4", MediaKindVideo, true},
		{"CLIP.MOV", MediaKindVideo, true},
		{"clip.avi", "", false},
		{"", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := KindOf(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestNewUploadedMedia(t *testing.T) {
	m := NewUploadedMedia("../../etc/Lecture.MP4", []byte{1, 2, 3})

	assert.Equal(t, "Lecture.MP4", m.Filename)
	assert.Equal(t, "mp4", m.Extension)
	kind, ok := m.Kind()
	assert.True(t, ok)
	assert.Equal(t, MediaKindVideo, kind)
	assert.False(t, m.IsEmpty())
	assert.True(t, NewUploadedMedia("a.mp3", nil).IsEmpty())
}

func TestSupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{"mp3", "mp4", "m4a", "wav", "mov"}, SupportedExtensions())
}

func TestParseOutputMode(t *testing.T) {
	for input, want := range map[string]OutputMode{
		"":          OutputModeSegmented,
		"segmented": OutputModeSegmented,
		"Subtitle":  OutputModeSubtitle,
		"srt":       OutputModeSubtitle,
	} {
		got, err := ParseOutputMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseOutputMode("vtt")
	assert.Error(t, err)
}
