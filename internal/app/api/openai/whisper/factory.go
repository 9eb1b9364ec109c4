package whisper

import (
	"subtitle-whisper/internal/app/api"
	oaiclient "subtitle-whisper/internal/app/api/openai"
)

// NewFactory returns a TranscriberFactory that builds one client per credential
func NewFactory(options Options, clientOptions oaiclient.ClientOptions) api.TranscriberFactory {
	return func(apiKey string) api.Transcriber {
		return NewRemoteTranscriber(oaiclient.NewClient(apiKey, clientOptions), options)
	}
}
