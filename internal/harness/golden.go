package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the stable part of a Result: run IDs, durations and command
// lines (which embed tool and binary paths) are left out.
type Snapshot struct {
	Size          int            `json:"size"`
	Fixture       string         `json:"fixture"`
	FixtureReused bool           `json:"fixture_reused"`
	Steps         []SnapshotStep `json:"steps"`
	Comparison    *Comparison    `json:"comparison,omitempty"`
	Pass          bool           `json:"pass"`
	FailedStage   Stage          `json:"failed_stage,omitempty"`
}

// SnapshotStep is the stable part of a Step.
type SnapshotStep struct {
	Seq      int   `json:"seq"`
	Stage    Stage `json:"stage"`
	ExitCode int   `json:"exit_code"`
}

// NewSnapshot extracts the stable fields of a result.
func NewSnapshot(r *Result) Snapshot {
	steps := make([]SnapshotStep, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = SnapshotStep{Seq: s.Seq, Stage: s.Stage, ExitCode: s.ExitCode}
	}
	return Snapshot{
		Size:          r.Size,
		Fixture:       r.Fixture,
		FixtureReused: r.FixtureReused,
		Steps:         steps,
		Comparison:    r.Comparison,
		Pass:          r.Pass,
		FailedStage:   r.FailedStage,
	}
}

// MarshalSnapshot renders a snapshot as indented JSON with a trailing
// newline.
func MarshalSnapshot(r *Result) ([]byte, error) {
	data, err := json.MarshalIndent(NewSnapshot(r), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares a result's snapshot against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
