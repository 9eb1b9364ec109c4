package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultHost        = "127.0.0.1"
	DefaultHTTPPort    = "8501"
	DefaultModel       = "whisper-1"
	DefaultFFmpegPath  = "ffmpeg"
	DefaultMaxUploadMB = 200

	DefaultSessionIdleTimeout = time.Hour
)

// Config is the complete runtime configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Media         MediaConfig         `yaml:"media"`

	// OpenAIAPIKey comes from the environment only, never from YAML
	OpenAIAPIKey string `yaml:"-"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              string        `yaml:"port"`
	Environment       string        `yaml:"environment"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout,omitempty"`
	ReadTimeout       time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout      time.Duration `yaml:"write_timeout,omitempty"`
	IdleTimeout       time.Duration `yaml:"idle_timeout,omitempty"`
}

// TranscriptionConfig configures the OpenAI transcription endpoint
type TranscriptionConfig struct {
	Model    string        `yaml:"model"`
	Language string        `yaml:"language,omitempty"`
	Prompt   string        `yaml:"prompt,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// MediaConfig configures audio extraction and scratch storage
type MediaConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	ScratchDir  string `yaml:"scratch_dir,omitempty"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`

	// SessionIdleTimeout ends sessions, and releases their scratch files,
	// after this long without a request. Negative disables expiry.
	SessionIdleTimeout time.Duration `yaml:"session_idle_timeout,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing priority.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		configPath = os.ExpandEnv(configPath)
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.setDefaults()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	apiKey, err := GetAPIKey()
	if err != nil {
		return nil, err
	}
	cfg.OpenAIAPIKey = apiKey

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults fills every unset field
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == "" {
		c.Server.Port = DefaultHTTPPort
	}
	if c.Server.Environment == "" {
		c.Server.Environment = EnvDevelopment
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = DefaultModel
	}
	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = DefaultFFmpegPath
	}
	if c.Media.MaxUploadMB == 0 {
		c.Media.MaxUploadMB = DefaultMaxUploadMB
	}
	if c.Media.SessionIdleTimeout == 0 {
		c.Media.SessionIdleTimeout = DefaultSessionIdleTimeout
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return err
	}
	if c.Server.Environment != EnvDevelopment && c.Server.Environment != EnvProduction {
		return fmt.Errorf("server environment must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Server.Environment)
	}
	for name, d := range map[string]time.Duration{
		"server read header": c.Server.ReadHeaderTimeout,
		"server read":        c.Server.ReadTimeout,
		"server write":       c.Server.WriteTimeout,
		"server idle":        c.Server.IdleTimeout,
		"transcription":      c.Transcription.Timeout,
	} {
		if err := ValidateTimeout(d, name); err != nil {
			return err
		}
	}
	if c.Transcription.BaseURL != "" {
		if err := ValidateURL(c.Transcription.BaseURL, "transcription base"); err != nil {
			return err
		}
	}
	if c.Media.MaxUploadMB < 0 {
		return fmt.Errorf("media max_upload_mb cannot be negative")
	}
	return nil
}

// Address is the host:port the server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// MaxUploadBytes is the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Media.MaxUploadMB << 20
}

// IsDevelopment reports whether development logging and gin debug mode apply
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}
