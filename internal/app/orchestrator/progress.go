package orchestrator

// Stage names a long-running step
type Stage string

const (
	StageConverting   Stage = "converting"
	StageTranscribing Stage = "transcribing"
)

// Progress is told right before and right after each long-running step so
// the caller can show a wait indication.
type Progress interface {
	Begin(stage Stage)
	End(stage Stage, err error)
}

type nopProgress struct{}

func (nopProgress) Begin(Stage)      {}
func (nopProgress) End(Stage, error) {}

// NopProgress discards progress notifications
var NopProgress Progress = nopProgress{}
