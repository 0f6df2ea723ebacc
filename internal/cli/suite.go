package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/goblin/internal/harness"
)

// NewSuiteCommand creates the suite command.
func NewSuiteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite [binary] <suite.yaml>",
		Short: "Compare several fixture sizes listed in a suite file",
		Long: `Run one comparison per size listed in a suite file.

Sizes run in order; a failing size does not stop the suite. The binary
under test comes from the command line or, if omitted, from the suite's
binary field.

Suite file:
  name: smoke
  binary: ./png2tga
  sizes: [1, 16, 128, 255]

Exit codes:
  0 - all sizes passed
  1 - one or more sizes failed
  2 - command error (suite file missing or invalid)

Examples:
  square suite ./png2tga smoke.yaml
  square suite smoke.yaml --format json`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			binary, suitePath := "", args[0]
			if len(args) == 2 {
				binary, suitePath = args[0], args[1]
			}
			return runSuite(rootOpts, binary, suitePath, cmd)
		},
	}

	return cmd
}

func runSuite(opts *RootOptions, binary, suitePath string, cmd *cobra.Command) error {
	suite, err := harness.LoadSuite(suitePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	w := cmd.ErrOrStderr()
	report := func(c harness.CaseResult) {
		if opts.Format == "json" {
			return
		}
		name := harness.FixtureName(c.Size)
		if c.Pass {
			fmt.Fprintf(w, "%s %s\n", passMark(), name)
			return
		}
		fmt.Fprintf(w, "%s %s\n", failMark(), name)
		fmt.Fprintf(w, "  %s\n", c.Error)
	}

	h := newHarness(opts, cmd)
	result, err := h.RunSuite(ctx, binary, suite, report)
	if err != nil && result == nil {
		return WrapExitError(ExitCommandError, "failed to run suite", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "suite interrupted", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: w, Verbose: opts.Verbose}
	if opts.Format == "json" {
		if result.Failed > 0 {
			if err := out.Error(ErrCodeSuite, fmt.Sprintf("%d size(s) failed", result.Failed), result); err != nil {
				return err
			}
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d size(s) failed", result.Failed), Reported: true}
		}
		return out.Success(result)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Suite %s: %d passed, %d failed, %d total\n", result.Name, result.Passed, result.Failed, result.Total)
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d size(s) failed", result.Failed))
	}
	fmt.Fprintf(w, "%s All sizes passed\n", passMark())
	return nil
}
