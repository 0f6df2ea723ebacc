package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/goblin/internal/harness"
)

// Error codes used in JSON responses.
const (
	ErrCodeUsage     = "E_USAGE"
	ErrCodeFixture   = "E_FIXTURE"
	ErrCodeReference = "E_REFERENCE"
	ErrCodeCandidate = "E_CANDIDATE"
	ErrCodeMismatch  = "E_MISMATCH"
	ErrCodeCompare   = "E_COMPARE"
	ErrCodeSuite     = "E_SUITE"
)

func runCompare(opts *RootOptions, binary, sizeArg string, cmd *cobra.Command) error {
	size, err := parseSize(sizeArg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	h := newHarness(opts, cmd)
	result, runErr := h.Run(ctx, binary, size)
	if result == nil {
		return WrapExitError(ExitFailure, "", runErr)
	}

	out := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.ErrOrStderr(),
		Verbose: opts.Verbose,
		TraceID: result.RunID,
	}
	return reportResult(out, result, runErr)
}

// reportResult writes the verdict. On success the confirmation is printed
// here; failures are returned as an ExitError whose message is the
// one-line diagnostic (or, for JSON, a Reported error after the envelope).
func reportResult(out *OutputFormatter, result *harness.Result, runErr error) error {
	if runErr == nil {
		if out.Format == "json" {
			return out.Success(result)
		}
		return out.Success(fmt.Sprintf("files are identical (%s)", formatBytes(result.Comparison.ReferenceSize)))
	}

	code, message := describeFailure(result, runErr)
	exitErr := &ExitError{Code: ExitFailure, Message: message}
	if !errors.Is(runErr, harness.ErrMismatch) {
		// Keep the harness error reachable for errors.As; its text is the message.
		exitErr = &ExitError{Code: ExitFailure, Err: runErr}
	}
	if out.Format == "json" {
		if err := out.Error(code, message, result); err != nil {
			return err
		}
		exitErr.Reported = true
	}
	return exitErr
}

// describeFailure maps a harness failure to a JSON code and a one-line
// message.
func describeFailure(result *harness.Result, err error) (string, string) {
	switch harness.FailedStage(err) {
	case harness.StageCompare:
		if errors.Is(err, harness.ErrMismatch) && result.Comparison != nil {
			c := result.Comparison
			return ErrCodeMismatch, fmt.Sprintf("files differ: first difference at byte %s (reference %s, candidate %s)",
				formatOffset(c.Offset), formatBytes(c.ReferenceSize), formatBytes(c.CandidateSize))
		}
		return ErrCodeCompare, err.Error()
	case harness.StageFixture:
		return ErrCodeFixture, err.Error()
	case harness.StageReference:
		return ErrCodeReference, err.Error()
	case harness.StageCandidate:
		return ErrCodeCandidate, err.Error()
	default:
		return ErrCodeUsage, err.Error()
	}
}

// parseSize converts the size argument, treating anything that is not a
// usable edge length as a usage error.
func parseSize(arg string) (int, error) {
	size, err := strconv.Atoi(arg)
	if err != nil {
		return 0, NewExitError(ExitFailure, fmt.Sprintf("invalid size %q: must be an integer", arg))
	}
	if err := harness.ValidateSize(size); err != nil {
		return 0, WrapExitError(ExitFailure, "", err)
	}
	return size, nil
}

func newHarness(opts *RootOptions, cmd *cobra.Command) *harness.Harness {
	return harness.New(opts.Config,
		harness.WithLogger(opts.Logger),
		harness.WithStderr(cmd.ErrOrStderr()),
	)
}

// signalContext derives a context cancelled on SIGINT/SIGTERM so child
// processes are killed when the harness is interrupted.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
