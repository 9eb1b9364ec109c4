// Package progress renders orchestrator steps as terminal spinners.
package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"subtitle-whisper/internal/app/orchestrator"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Manager shows one spinner per running step. A disabled Manager is a no-op.
type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
	bars      map[orchestrator.Stage]*mpb.Bar
}

var labels = map[orchestrator.Stage]string{
	orchestrator.StageConverting:   "Preparing audio",
	orchestrator.StageTranscribing: "Transcribing",
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWidth(16),
	)

	return &Manager{
		container: container,
		enabled:   true,
		bars:      make(map[orchestrator.Stage]*mpb.Bar),
	}
}

// Begin implements orchestrator.Progress
func (m *Manager) Begin(stage orchestrator.Stage) {
	if !m.enabled {
		return
	}

	label, ok := labels[stage]
	if !ok {
		label = string(stage)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.bars[stage] = m.container.New(0,
		mpb.SpinnerStyle(),
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(
			decor.Name(label+" ", decor.WC{W: len(label) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncSpace), "done"),
				"failed",
			),
		),
	)
}

// End implements orchestrator.Progress
func (m *Manager) End(stage orchestrator.Stage, err error) {
	if !m.enabled {
		return
	}

	m.mu.Lock()
	bar, ok := m.bars[stage]
	delete(m.bars, stage)
	m.mu.Unlock()
	if !ok {
		return
	}

	if err != nil {
		bar.Abort(false)
		return
	}
	bar.SetTotal(-1, true)
}

// Wait blocks until every spinner has been rendered for the last time
func (m *Manager) Wait() {
	if m.enabled && m.container != nil {
		m.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
