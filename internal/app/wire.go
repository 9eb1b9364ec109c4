//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"subtitle-whisper/internal/api/server"
	"subtitle-whisper/internal/app/orchestrator"
	"subtitle-whisper/internal/config"
)

// InitializeServer wires the HTTP server from configuration
func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(ServerSet)
	return &server.Server{}, nil
}

// InitializeOrchestrator wires a standalone orchestrator for the CLI.
// Metrics go to a throwaway registry.
func InitializeOrchestrator(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer) *orchestrator.Orchestrator {
	wire.Build(OrchestratorSet)
	return &orchestrator.Orchestrator{}
}
