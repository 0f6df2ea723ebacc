package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Harness runs comparisons of a binary under test against the reference
// tool. A Harness holds no per-run state; Run may be called repeatedly.
type Harness struct {
	cfg    Config
	runner Runner
	ids    RunIDGenerator
	logger *slog.Logger
	stderr io.Writer
}

// Option configures a Harness.
type Option func(*Harness)

// WithRunner replaces the os/exec runner.
func WithRunner(r Runner) Option {
	return func(h *Harness) { h.runner = r }
}

// WithLogger sets the structured logger. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithRunIDGenerator sets the run ID source. Defaults to UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(h *Harness) { h.ids = g }
}

// WithStderr sets where external commands' diagnostics go. Defaults to
// os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(h *Harness) { h.stderr = w }
}

// New creates a Harness. Empty config fields take their defaults.
func New(cfg Config, opts ...Option) *Harness {
	cfg = cfg.withDefaults()
	h := &Harness{
		cfg:    cfg,
		ids:    UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.runner == nil {
		h.runner = NewExecRunner(cfg)
	}
	return h
}

// Config returns the effective configuration.
func (h *Harness) Config() Config {
	return h.cfg
}

// Run performs one comparison for a size x size fixture.
//
// The returned Result is non-nil whenever the run got past argument checks,
// including on failure, and records every command executed. The error is
// nil on a byte-identical match, ErrMismatch when the outputs differ, and a
// *StageError for any other failed step.
func (h *Harness) Run(ctx context.Context, binary string, size int) (*Result, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	bin, err := resolveBinary(binary)
	if err != nil {
		return nil, err
	}

	result := NewResult(h.ids.Generate(), size)
	log := h.logger.With("run_id", result.RunID, "size", size)

	// Fixture: generated once per size, reused afterwards.
	exists, err := fixtureExists(h.path(result.Fixture))
	if err != nil {
		result.Fail(StageFixture)
		return result, stageError(StageFixture, err)
	}
	if exists {
		result.FixtureReused = true
		log.Info("reusing fixture", "fixture", result.Fixture)
	} else {
		log.Info("generating fixture", "fixture", result.Fixture)
		line := generateCommand(h.cfg.Tool, size, result.Fixture)
		if err := h.shell(ctx, result, StageFixture, line); err != nil {
			result.Fail(StageFixture)
			return result, stageError(StageFixture, err)
		}
	}

	if err := h.shell(ctx, result, StageIdentify, identifyCommand(h.cfg.Tool, result.Fixture)); err != nil {
		log.Warn("identify failed", "fixture", result.Fixture, "error", err)
	}

	if err := h.shell(ctx, result, StageReference, convertCommand(h.cfg.Tool, result.Fixture)); err != nil {
		result.Fail(StageReference)
		return result, stageError(StageReference, err)
	}

	if err := h.runCandidate(ctx, result, bin); err != nil {
		result.Fail(StageCandidate)
		return result, stageError(StageCandidate, err)
	}

	cmp, err := CompareFiles(h.path(result.Reference), h.path(result.Candidate))
	if err != nil {
		result.Fail(StageCompare)
		return result, stageError(StageCompare, err)
	}
	result.Comparison = &cmp

	if !cmp.Identical {
		log.Info("outputs differ", "offset", cmp.Offset,
			"reference_size", cmp.ReferenceSize, "candidate_size", cmp.CandidateSize)
		result.Fail(StageCompare)
		return result, ErrMismatch
	}

	log.Info("outputs identical", "bytes", cmp.ReferenceSize)
	result.Pass = true
	return result, nil
}

// shell runs a reference tool command line and records it. Both output
// streams of the tool go to the diagnostic writer.
func (h *Harness) shell(ctx context.Context, result *Result, stage Stage, line string) error {
	h.logger.Debug("running", "stage", stage, "command", line)
	start := time.Now()
	err := h.runner.Shell(ctx, line, h.stderr, h.stderr)
	result.AddStep(stage, line, ExitCode(err), time.Since(start))
	return err
}

// runCandidate executes the binary under test with its stdout captured into
// a freshly truncated candidate file.
func (h *Harness) runCandidate(ctx context.Context, result *Result, bin string) error {
	out, err := os.Create(h.path(result.Candidate))
	if err != nil {
		return fmt.Errorf("failed to create candidate output: %w", err)
	}

	line := bin + " " + result.Fixture
	h.logger.Debug("running", "stage", StageCandidate, "command", line)
	start := time.Now()
	runErr := h.runner.Exec(ctx, bin, []string{result.Fixture}, out, h.stderr)
	result.AddStep(StageCandidate, line, ExitCode(runErr), time.Since(start))

	closeErr := out.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close candidate output: %w", closeErr)
	}
	return nil
}

// path joins a run artifact name onto the working directory.
func (h *Harness) path(name string) string {
	return filepath.Join(h.cfg.Dir, name)
}

// resolveBinary makes a relative path with a directory component absolute,
// since commands run inside Config.Dir. Bare names are left for PATH lookup.
func resolveBinary(binary string) (string, error) {
	if binary == "" {
		return "", fmt.Errorf("binary path is required")
	}
	if filepath.IsAbs(binary) || !strings.ContainsAny(binary, "/"+string(filepath.Separator)) {
		return binary, nil
	}
	abs, err := filepath.Abs(binary)
	if err != nil {
		return "", fmt.Errorf("failed to resolve binary path: %w", err)
	}
	return abs, nil
}
