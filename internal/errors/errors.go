package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes
var (
	ErrNoParams        = errors.New("session leader returned no parameters")
	ErrMissingAPIKey   = errors.New("API key not configured")
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// Pipeline stages
const (
	StageConfig  = "config"
	StageSeed    = "seed"
	StageParams  = "params"
	StageRender  = "render"
	StageMixdown = "mixdown"
)

// StageError represents a failure at one stage of the compose pipeline
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// NewStageError creates a StageError
func NewStageError(stage string, cause error) *StageError {
	return &StageError{Stage: stage, Cause: cause}
}
