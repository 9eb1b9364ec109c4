package openai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ClientOptions tunes the OpenAI client beyond the API key
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates an OpenAI client for one credential.
// Credentials come from the caller because they may be supplied per session.
func NewClient(apiKey string, opts ClientOptions) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	return openai.NewClientWithConfig(config)
}
