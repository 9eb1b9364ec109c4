package testutil

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"
)

// MockConverter is a testify mock of audio.Converter. When the expectation
// returns no error it writes OutputPayload to the output path so callers see
// a real file.
type MockConverter struct {
	mock.Mock
	OutputPayload []byte
}

// NewMockConverter creates a MockConverter writing a small fake MP3
func NewMockConverter() *MockConverter {
	return &MockConverter{OutputPayload: []byte("ID3-fake-mp3")}
}

// ExtractAudio implements audio.Converter
func (m *MockConverter) ExtractAudio(ctx context.Context, inputPath string, outputPath string) error {
	args := m.Called(ctx, inputPath, outputPath)
	if err := args.Error(0); err != nil {
		return err
	}
	return os.WriteFile(outputPath, m.OutputPayload, 0o600)
}
