package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"subtitle-whisper/internal/app"
	"subtitle-whisper/internal/app/common"
	"subtitle-whisper/internal/config"
)

var (
	configPath string
	host       string
	port       string
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	Cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web page for uploading and transcribing media",
	Long: `Start the web page for uploading and transcribing media

- Upload an mp3, m4a, wav, mp4 or mov file
- Video is converted to MP3 once per distinct upload
- Transcripts are shown as timestamped text or SRT and can be downloaded
- OPENAI_API_KEY is read from the environment or .env; without it each
  browser session is asked for a key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadEnv(); err != nil {
			return err
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if host != "" {
			cfg.Server.Host = host
		}
		if port != "" {
			if err := config.ValidatePort(port, "--port"); err != nil {
				return err
			}
			cfg.Server.Port = port
		}

		logger, err := common.NewLogger(cfg.IsDevelopment())
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		if cfg.OpenAIAPIKey == "" {
			logger.Info("OPENAI_API_KEY not set, sessions must supply a key")
		}

		srv, err := app.InitializeServer(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx, 10*time.Second); err != nil {
			logger.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}
