package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/goblin/internal/harness"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Tool       string
	Dir        string
	Shell      string

	// Config and Logger are resolved in PersistentPreRunE.
	Config harness.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Invoked with a binary and a size
// it performs one comparison.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "square <binary> <size>",
		Short: "square - compare goblin output against GraphicsMagick",
		Long: `Check a goblin build against a reference image tool.

Generates (once) a size x size random-noise 8-bit palette PNG, converts it
to uncompressed TGA with the reference tool, runs the binary under test on
the same PNG and compares both TGA files byte for byte.

Files written to the working directory and kept afterwards:
  NNN.png             fixture, reused on later runs
  NNN.png.tga         reference output
  NNN.png.goblin.tga  binary under test output

Exit codes:
  0 - outputs are identical
  1 - usage error, tool failure, binary failure or mismatch

Examples:
  square ./png2tga 128
  square --tool magick --dir /tmp/fixtures ./png2tga 64
  square --format json ./png2tga 16`,
		Args:          usageArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := resolveConfig(opts, cmd)
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, args[0], args[1], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Tool, "tool", harness.DefaultTool, "reference tool command")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", harness.DefaultDir, "working directory for fixtures and outputs")
	cmd.PersistentFlags().StringVar(&opts.Shell, "shell", harness.DefaultShell, "shell used to run reference tool commands")

	cmd.AddCommand(NewSuiteCommand(opts))

	return cmd
}

// usageArgs rejects invocations with fewer than two positional arguments
// before any hook runs, so no file or process is touched. Extra arguments
// are ignored.
func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return NewExitError(ExitFailure, fmt.Sprintf("usage: %s <binary> <size>", cmd.Name()))
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// resolveConfig merges defaults, the optional config file and explicitly
// set flags, in increasing order of precedence.
func resolveConfig(opts *RootOptions, cmd *cobra.Command) (harness.Config, error) {
	cfg := harness.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := harness.LoadConfig(opts.ConfigPath)
		if err != nil {
			return cfg, WrapExitError(ExitFailure, "failed to load config", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("tool") {
		cfg.Tool = opts.Tool
	}
	if flags.Changed("dir") {
		cfg.Dir = opts.Dir
	}
	if flags.Changed("shell") {
		cfg.Shell = opts.Shell
	}
	return cfg, nil
}

// newLogger builds the stderr logger. Only warnings are shown unless
// verbose is set, keeping the diagnostic stream to the tool output and
// the verdict.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
