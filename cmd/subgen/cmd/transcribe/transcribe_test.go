package transcribe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtitle-whisper/internal/app/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func TestWriteResult_Stdout(t *testing.T) {
	outPath = ""
	cmd, stdout, _ := newTestCommand()

	err := writeResult(cmd, &model.FormattedTranscript{Text: "[00:00 – 00:10] hi", Filename: "transcription.txt"})
	require.NoError(t, err)
	assert.Equal(t, "[00:00 – 00:10] hi\n", stdout.String())
}

func TestWriteResult_Directory(t *testing.T) {
	dir := t.TempDir()
	outPath = dir
	t.Cleanup(func() { outPath = "" })
	cmd, _, stderr := newTestCommand()

	err := writeResult(cmd, &model.FormattedTranscript{Text: "1\n00:00:00,000 --> 00:00:01,000\nhi\n", Filename: "transcription.srt"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "transcription.srt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "-->")
	assert.Contains(t, stderr.String(), "transcription.srt")
}

func TestWriteResult_File(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")
	outPath = target
	t.Cleanup(func() { outPath = "" })
	cmd, _, _ := newTestCommand()

	require.NoError(t, writeResult(cmd, &model.FormattedTranscript{Text: "x", Filename: "transcription.txt"}))
	assert.FileExists(t, target)
}
