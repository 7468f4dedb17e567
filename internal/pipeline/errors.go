package pipeline

import (
	"fmt"

	"github.com/nikhilbhutani/slidepilot/internal/reasoning"
)

// Pipeline stages, used for failure attribution.
const (
	StageTranscription = "transcription"
	StageReasoning     = "reasoning"
	StageSynthesis     = "synthesis"
)

// TranscriptionError reports a failed or empty transcription.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
func (e *TranscriptionError) Stage() string { return StageTranscription }

// SchemaViolationError is re-exported so callers attribute reasoning
// failures without importing the reasoning package.
type SchemaViolationError = reasoning.SchemaViolationError

// SynthesisError reports a failed speech synthesis. It is produced by the
// relay handler rather than Process; it lives here so the whole taxonomy
// is in one place.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("speech synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
func (e *SynthesisError) Stage() string { return StageSynthesis }
