package session

import (
	"subtitle-whisper/internal/app/errors"
)

// State is where a session is in the upload → transcribe sequence
type State string

const (
	StateIdle              State = "idle"
	StateConverting        State = "converting"
	StateReadyToTranscribe State = "ready_to_transcribe"
	StateTranscribing      State = "transcribing"
	StateDone              State = "done"
	StateErrored           State = "errored"
)

// transitions lists the states reachable from each state. Reset to Idle is
// always allowed and handled separately.
var transitions = map[State][]State{
	StateIdle:              {StateConverting},
	StateConverting:        {StateReadyToTranscribe, StateErrored},
	StateReadyToTranscribe: {StateConverting, StateTranscribing},
	StateTranscribing:      {StateDone, StateErrored},
	StateDone:              {StateConverting, StateTranscribing},
	StateErrored:           {StateConverting, StateTranscribing, StateReadyToTranscribe},
}

// CanTransition reports whether from → to is a defined transition
func CanTransition(from, to State) bool {
	if to == StateIdle {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return errors.Wrapf(errors.ErrInvalidTransition, "%s -> %s", from, to)
	}
	return nil
}

// Busy reports whether a long-running call is in flight
func (s State) Busy() bool {
	return s == StateConverting || s == StateTranscribing
}
