package harness

import (
	"errors"
	"fmt"
)

// Stage names a step of a harness run.
type Stage string

const (
	StageFixture   Stage = "fixture"   // noise fixture generation
	StageIdentify  Stage = "identify"  // fixture metadata (never fatal)
	StageReference Stage = "reference" // reference conversion pipeline
	StageCandidate Stage = "candidate" // binary under test
	StageCompare   Stage = "compare"   // byte comparison
)

// ErrMismatch is returned when reference and candidate outputs differ.
var ErrMismatch = errors.New("files differ")

// StageError reports a failed step. Err is the underlying exec or I/O error.
type StageError struct {
	Stage    Stage
	ExitCode int // -1 when no exit status was produced
	Err      error
}

func (e *StageError) Error() string {
	switch e.Stage {
	case StageFixture:
		return fmt.Sprintf("fixture generation failed: %v", e.Err)
	case StageReference:
		return fmt.Sprintf("reference conversion failed: %v", e.Err)
	case StageCandidate:
		return fmt.Sprintf("binary under test failed: %v", e.Err)
	default:
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, ExitCode: ExitCode(err), Err: err}
}

// FailedStage returns the stage an error belongs to, or "" if err did not
// come from a harness run. ErrMismatch maps to StageCompare.
func FailedStage(err error) Stage {
	if errors.Is(err, ErrMismatch) {
		return StageCompare
	}
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
