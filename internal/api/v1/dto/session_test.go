package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"subtitle-whisper/internal/app/session"
)

func TestStatusMessage(t *testing.T) {
	testCases := []struct {
		state session.State
		want  string
	}{
		{session.StateIdle, ""},
		{session.StateConverting, "Converting video to audio, please wait..."},
		{session.StateReadyToTranscribe, "Audio was extracted."},
		{session.StateTranscribing, "Transcribing audio, please wait..."},
		{session.StateDone, ""},
		{session.StateErrored, ""},
	}

	for _, tc := range testCases {
		t.Run(string(tc.state), func(t *testing.T) {
			assert.Equal(t, tc.want, StatusMessage(tc.state))
		})
	}
}
