package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"subtitle-whisper/cmd/subgen/cmd/serve"
	"subtitle-whisper/cmd/subgen/cmd/transcribe"
	"subtitle-whisper/cmd/subgen/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "subgen",
	Short: "Turn a video or audio file into timestamped text or SRT subtitles",
	Long: `Turn a video or audio file into timestamped text or SRT subtitles.
- serve starts the web page: upload, transcribe, download
- transcribe processes a single local file from the command line
- Audio is extracted with ffmpeg and transcribed by the OpenAI API.`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
