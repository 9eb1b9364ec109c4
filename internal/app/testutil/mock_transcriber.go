package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"subtitle-whisper/internal/app/api"
	"subtitle-whisper/internal/app/model"
)

// MockTranscriber is a testify mock of api.Transcriber that also records the
// audio it was sent and the credential it was built with.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	Credentials []string
	Received    [][]byte
}

// NewMockTranscriber creates an empty MockTranscriber
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Factory returns an api.TranscriberFactory handing out this mock
func (m *MockTranscriber) Factory() api.TranscriberFactory {
	return func(apiKey string) api.Transcriber {
		m.mu.Lock()
		m.Credentials = append(m.Credentials, apiKey)
		m.mu.Unlock()
		return m
	}
}

// Transcribe implements api.Transcriber
func (m *MockTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string, mode model.OutputMode) (*model.Transcript, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.Received = append(m.Received, data)
	m.mu.Unlock()

	args := m.Called(ctx, filename, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	t := *args.Get(0).(*model.Transcript)
	return &t, args.Error(1)
}
