package harness

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Runner executes external commands for the harness.
//
// Shell runs a command line through the configured shell. Exec runs a
// program directly. Both block until the process exits and return a non-nil
// error when it cannot be started or exits non-zero.
type Runner interface {
	Shell(ctx context.Context, line string, stdout, stderr io.Writer) error
	Exec(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// ExecRunner runs commands with os/exec inside Dir.
type ExecRunner struct {
	ShellPath string // invoked as "<ShellPath> -c <line>"
	Dir       string
}

// NewExecRunner creates a Runner for the given config.
func NewExecRunner(cfg Config) *ExecRunner {
	cfg = cfg.withDefaults()
	return &ExecRunner{ShellPath: cfg.Shell, Dir: cfg.Dir}
}

// Shell implements Runner.
func (r *ExecRunner) Shell(ctx context.Context, line string, stdout, stderr io.Writer) error {
	return r.Exec(ctx, r.ShellPath, []string{"-c", line}, stdout, stderr)
}

// Exec implements Runner.
func (r *ExecRunner) Exec(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// ExitCode extracts the process exit status from a Runner error.
// It returns 0 for nil and -1 when the process never produced a status
// (e.g. it could not be started).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
