package harness

import "time"

// Step records one external command executed during a run.
type Step struct {
	Seq      int           `json:"seq"`
	Stage    Stage         `json:"stage"`
	Command  string        `json:"command"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`
}

// Result is the outcome of a single harness run.
type Result struct {
	RunID string `json:"run_id"`
	Size  int    `json:"size"`

	Fixture   string `json:"fixture"`
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`

	// FixtureReused is true when the fixture already existed and was not
	// regenerated.
	FixtureReused bool `json:"fixture_reused"`

	// Steps lists executed commands in order.
	Steps []Step `json:"steps"`

	// Comparison is nil when the run stopped before comparing.
	Comparison *Comparison `json:"comparison,omitempty"`

	// Pass is true only when both outputs are byte-identical.
	Pass bool `json:"pass"`

	// FailedStage is empty on success.
	FailedStage Stage `json:"failed_stage,omitempty"`
}

// NewResult creates an empty result for the given size.
func NewResult(runID string, size int) *Result {
	fixture := FixtureName(size)
	return &Result{
		RunID:     runID,
		Size:      size,
		Fixture:   fixture,
		Reference: ReferencePath(fixture),
		Candidate: CandidatePath(fixture),
		Steps:     []Step{},
	}
}

// AddStep appends a step with the next sequence number.
func (r *Result) AddStep(stage Stage, command string, exitCode int, d time.Duration) {
	r.Steps = append(r.Steps, Step{
		Seq:      len(r.Steps) + 1,
		Stage:    stage,
		Command:  command,
		ExitCode: exitCode,
		Duration: d,
	})
}

// Fail marks the result as failed at the given stage.
func (r *Result) Fail(stage Stage) {
	r.Pass = false
	r.FailedStage = stage
}
