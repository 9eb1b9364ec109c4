package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvPaths are searched in order; the first existing file wins
var DefaultEnvPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error: variables may be set system-wide.
// Variables already present in the environment are never overwritten.
func LoadEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = DefaultEnvPaths
	}
	for _, envPath := range paths {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("error loading %s file: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", nil
}

// GetAPIKey retrieves and validates OPENAI_API_KEY. An empty key is allowed;
// users can then supply one per session.
func GetAPIKey() (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return "", nil
	}
	if err := ValidateAPIKey(apiKey); err != nil {
		return "", fmt.Errorf("OPENAI_API_KEY: %w", err)
	}
	return apiKey, nil
}

// applyEnvOverrides lets SUBGEN_* variables win over the YAML file
func applyEnvOverrides(cfg *Config) error {
	cfg.Server.Host = getEnvOrDefault("SUBGEN_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvOrDefault("SUBGEN_PORT", cfg.Server.Port)
	cfg.Server.Environment = getEnvOrDefault("SUBGEN_ENV", cfg.Server.Environment)
	cfg.Transcription.Model = getEnvOrDefault("SUBGEN_MODEL", cfg.Transcription.Model)
	cfg.Transcription.Language = getEnvOrDefault("SUBGEN_LANGUAGE", cfg.Transcription.Language)
	cfg.Transcription.BaseURL = getEnvOrDefault("SUBGEN_BASE_URL", cfg.Transcription.BaseURL)
	cfg.Media.FFmpegPath = getEnvOrDefault("SUBGEN_FFMPEG", cfg.Media.FFmpegPath)
	cfg.Media.ScratchDir = getEnvOrDefault("SUBGEN_SCRATCH_DIR", cfg.Media.ScratchDir)

	if v := os.Getenv("SUBGEN_MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SUBGEN_MAX_UPLOAD_MB %q: %w", v, err)
		}
		cfg.Media.MaxUploadMB = mb
	}

	if v := os.Getenv("SUBGEN_SESSION_IDLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SUBGEN_SESSION_IDLE_TIMEOUT %q: %w", v, err)
		}
		cfg.Media.SessionIdleTimeout = d
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
