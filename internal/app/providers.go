package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"subtitle-whisper/internal/api/server"
	"subtitle-whisper/internal/app/api"
	oaiclient "subtitle-whisper/internal/app/api/openai"
	"subtitle-whisper/internal/app/api/openai/whisper"
	"subtitle-whisper/internal/app/audio"
	"subtitle-whisper/internal/app/metrics"
	"subtitle-whisper/internal/app/orchestrator"
	"subtitle-whisper/internal/app/session"
	"subtitle-whisper/internal/config"
)

// provideRegistry creates the registry served on /metrics, with the Go
// runtime and process collectors attached
func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// provideConverter shells out to ffmpeg; a missing binary only matters once
// a video is uploaded
func provideConverter(cfg *config.Config, logger *zap.Logger) audio.Converter {
	converter := audio.NewFFmpegConverter(cfg.Media.FFmpegPath, logger)
	if !converter.Available() {
		logger.Warn("ffmpeg not found, video uploads will fail", zap.String("binary", converter.Binary()))
	}
	return converter
}

// provideTranscriberFactory builds OpenAI transcribers bound to a credential
func provideTranscriberFactory(cfg *config.Config) api.TranscriberFactory {
	return whisper.NewFactory(
		whisper.Options{
			Model:    cfg.Transcription.Model,
			Language: cfg.Transcription.Language,
			Prompt:   cfg.Transcription.Prompt,
		},
		oaiclient.ClientOptions{
			BaseURL: cfg.Transcription.BaseURL,
			Timeout: cfg.Transcription.Timeout,
		},
	)
}

func provideOrchestrator(
	cfg *config.Config,
	converter audio.Converter,
	transcribers api.TranscriberFactory,
	m *metrics.Metrics,
	logger *zap.Logger,
) *orchestrator.Orchestrator {
	return orchestrator.New(converter, transcribers,
		orchestrator.WithDefaultCredential(cfg.OpenAIAPIKey),
		orchestrator.WithMetrics(m),
		orchestrator.WithLogger(logger),
	)
}

func provideStore(cfg *config.Config, logger *zap.Logger) (*session.Store, error) {
	return session.NewStore(cfg.Media.ScratchDir, logger)
}

// OrchestratorSet builds the orchestrator and everything beneath it
var OrchestratorSet = wire.NewSet(
	provideConverter,
	provideTranscriberFactory,
	metrics.New,
	provideOrchestrator,
)

// ServerSet builds the HTTP server
var ServerSet = wire.NewSet(
	OrchestratorSet,
	provideRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	provideStore,
	server.NewServer,
)
