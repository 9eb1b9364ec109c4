package transcribe

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"subtitle-whisper/internal/app"
	"subtitle-whisper/internal/app/common"
	"subtitle-whisper/internal/app/errors"
	"subtitle-whisper/internal/app/model"
	"subtitle-whisper/internal/app/progress"
	"subtitle-whisper/internal/app/session"
	"subtitle-whisper/internal/config"
)

var (
	configPath string
	subtitle   bool
	outPath    string
	language   string
	noProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	Cmd.Flags().BoolVar(&subtitle, "srt", false, "produce an SRT subtitle track instead of timestamped text")
	Cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to this file or directory instead of stdout")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "language hint (ISO-639-1), overrides config")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not show progress spinners")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe one local video or audio file",
	Long: `Transcribe one local video or audio file

- mp4 and mov are converted to MP3 with ffmpeg first
- mp3, m4a and wav are sent as they are
- Output is "[MM:SS – MM:SS] text" lines, or SRT with --srt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadEnv(); err != nil {
			return err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if language != "" {
			cfg.Transcription.Language = language
		}

		logger := zap.NewNop()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			if logger, err = common.NewLogger(true); err != nil {
				return err
			}
		}
		defer logger.Sync() //nolint:errcheck

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		store, err := session.NewStore(cfg.Media.ScratchDir, logger)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck
		sess := store.Create()

		orch := app.InitializeOrchestrator(cfg, logger, prometheus.NewRegistry())

		mode := model.OutputModeSegmented
		if subtitle {
			mode = model.OutputModeSubtitle
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bars := progress.NewManager(progress.Config{
			Enabled: !noProgress && progress.ShouldShowProgress(false),
			Writer:  cmd.ErrOrStderr(),
		})
		result, err := orch.Process(ctx, sess, model.NewUploadedMedia(args[0], data), mode, bars)
		bars.Wait()
		if err != nil {
			if errors.Is(err, errors.ErrMissingCredential) {
				return fmt.Errorf("%w: set OPENAI_API_KEY in the environment or a .env file", err)
			}
			return err
		}

		return writeResult(cmd, result)
	},
}

func writeResult(cmd *cobra.Command, result *model.FormattedTranscript) error {
	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		return err
	}

	target := outPath
	if info, err := os.Stat(outPath); err == nil && info.IsDir() {
		target = filepath.Join(outPath, result.Filename)
	}
	if err := os.WriteFile(target, []byte(result.Text), 0o644); err != nil {
		return errors.Kind(errors.ErrFileWriteFailed, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", target)
	return nil
}
