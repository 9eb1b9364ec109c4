package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"subtitle-whisper/internal/app/api"
	"subtitle-whisper/internal/app/model"
)

const providerName = "openai"

// Options configures the requests sent to the transcription endpoint
type Options struct {
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	Prompt   string `yaml:"prompt"`
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client  *openai.Client
	options Options
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, options Options) *RemoteTranscriber {
	if options.Model == "" {
		options.Model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, options: options}
}

// Transcribe uploads audio and asks for either timed segments or an SRT track.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string, mode model.OutputMode) (*model.Transcript, error) {
	if audio == nil {
		return nil, &api.TranscriptionError{
			Code:     "invalid_input",
			Message:  "no audio to transcribe",
			Provider: providerName,
		}
	}

	req := openai.AudioRequest{
		Model:    rt.options.Model,
		FilePath: filename,
		Reader:   audio,
		Language: rt.options.Language,
		Prompt:   rt.options.Prompt,
		Format:   responseFormat(mode),
	}
	if mode == model.OutputModeSegmented {
		req.TimestampGranularities = []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
		}
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, handleAPIError(err)
	}

	if mode == model.OutputModeSubtitle {
		return &model.Transcript{
			Mode:     model.OutputModeSubtitle,
			Document: resp.Text,
		}, nil
	}

	return &model.Transcript{
		Mode:     model.OutputModeSegmented,
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: convertSegments(resp),
	}, nil
}

func responseFormat(mode model.OutputMode) openai.AudioResponseFormat {
	if mode == model.OutputModeSubtitle {
		return openai.AudioResponseFormatSRT
	}
	return openai.AudioResponseFormatVerboseJSON
}

// convertSegments keeps upstream order; it is not re-sorted or validated here
func convertSegments(resp openai.AudioResponse) []model.Segment {
	segments := make([]model.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, model.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return segments
}

// handleAPIError converts OpenAI API errors to TranscriptionError
func handleAPIError(err error) error {
	status := 0
	message := err.Error()

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		message = apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	te := &api.TranscriptionError{
		Provider:   providerName,
		StatusCode: status,
		Cause:      err,
	}

	switch status {
	case 401:
		te.Code = "authentication_failed"
		te.Message = "OpenAI API key is invalid or missing"
		te.Suggestions = []string{"Check your OPENAI_API_KEY or enter a new key"}
	case 429:
		te.Code = "rate_limit_exceeded"
		te.Message = "OpenAI API rate limit or quota exceeded"
		te.Suggestions = []string{"Wait a moment and press transcribe again", "Check your OpenAI plan and billing"}
	case 413:
		te.Code = "file_too_large"
		te.Message = "Audio file is too large for OpenAI API"
		te.Suggestions = []string{"Upload a shorter recording"}
	case 400:
		te.Code = "invalid_file"
		te.Message = fmt.Sprintf("OpenAI rejected the audio: %s", message)
		te.Suggestions = []string{"Check file format", "Try converting to a supported format"}
	case 0:
		te.Code = "network_error"
		te.Message = fmt.Sprintf("Transcription request failed: %v", err)
	default:
		te.Code = "api_error"
		te.Message = fmt.Sprintf("OpenAI API error (%d): %s", status, message)
	}
	return te
}
