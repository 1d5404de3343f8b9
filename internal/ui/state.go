// Package ui holds the form/result state machine behind the single-page UI.
//
// A State moves Idle -> Loading on submit, Loading -> Success or Error on
// resolve, and back to Idle on reset. Nothing else changes the phase.
package ui

import (
	"errors"
	"strings"

	"github.com/jonathan/resumate/internal/types"
)

// Phase is the current stage of the page.
type Phase string

// Phases
const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// FallbackErrorMessage is shown when a failed result carries no message.
const FallbackErrorMessage = "Something went wrong. Please try again."

var (
	// ErrNotReady is returned by Submit when the inputs fail the minimum-length check.
	ErrNotReady = errors.New("inputs do not meet the minimum length")
	// ErrBusy is returned when an action is attempted outside the phase that allows it.
	ErrBusy = errors.New("a request is already in flight")
)

// State is one page's form and result. It is not safe for concurrent use.
type State struct {
	phase   Phase
	inputs  types.GenerationRequest
	bullets []string
	message string
}

// NewState returns an Idle state with empty inputs.
func NewState() *State {
	return &State{phase: PhaseIdle}
}

// Restore returns an Idle state carrying previously entered inputs.
func Restore(inputs types.GenerationRequest) *State {
	return &State{phase: PhaseIdle, inputs: inputs}
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// Inputs returns the entered inputs.
func (s *State) Inputs() types.GenerationRequest { return s.inputs }

// Bullets returns the bullets shown in Success, nil otherwise.
func (s *State) Bullets() []string { return s.bullets }

// ErrorMessage returns the message shown in Error, "" otherwise.
func (s *State) ErrorMessage() string { return s.message }

// Editable reports whether the inputs accept edits. They are locked while Loading.
func (s *State) Editable() bool {
	return s.phase != PhaseLoading
}

// SetInputs records the current input text.
func (s *State) SetInputs(jobDescription, resumeText string) error {
	if !s.Editable() {
		return ErrBusy
	}
	s.inputs = types.GenerationRequest{JobDescription: jobDescription, ResumeText: resumeText}
	return nil
}

// CanSubmit reports whether Submit would succeed.
func (s *State) CanSubmit() bool {
	return s.phase == PhaseIdle && s.inputs.Ready()
}

// Submit moves Idle -> Loading and returns the request to send.
func (s *State) Submit() (types.GenerationRequest, error) {
	if s.phase != PhaseIdle {
		return types.GenerationRequest{}, ErrBusy
	}
	if !s.inputs.Ready() {
		return types.GenerationRequest{}, ErrNotReady
	}
	s.phase = PhaseLoading
	return s.inputs, nil
}

// Resolve moves Loading -> Success when the result has bullets, otherwise Loading -> Error.
func (s *State) Resolve(result types.GenerationResult) error {
	if s.phase != PhaseLoading {
		return ErrBusy
	}

	if len(result.Bullets) > 0 {
		s.phase = PhaseSuccess
		s.bullets = append([]string(nil), result.Bullets...)
		s.message = ""
		return nil
	}

	s.phase = PhaseError
	s.bullets = nil
	s.message = strings.TrimSpace(result.Error)
	if s.message == "" {
		s.message = FallbackErrorMessage
	}
	return nil
}

// Reset returns to Idle, clearing bullets and the error. Inputs are kept.
func (s *State) Reset() {
	s.phase = PhaseIdle
	s.bullets = nil
	s.message = ""
}

// CopyAll returns every bullet joined by line breaks, in display order.
func (s *State) CopyAll() string {
	return strings.Join(s.bullets, "\n")
}
