package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/goblin/internal/harness"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "square", cmd.Name())
	assert.Contains(t, cmd.Long, "byte for byte")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	subCmd, _, err := cmd.Find([]string{"suite"})
	require.NoError(t, err)
	assert.Equal(t, "suite", subCmd.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	assert.Equal(t, "gm", cmd.PersistentFlags().Lookup("tool").DefValue)
	assert.Equal(t, ".", cmd.PersistentFlags().Lookup("dir").DefValue)
	assert.Equal(t, "/bin/sh", cmd.PersistentFlags().Lookup("shell").DefValue)
	assert.Equal(t, "", cmd.PersistentFlags().Lookup("config").DefValue)
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{{}, {"./goblin"}} {
		t.Run("args", func(t *testing.T) {
			dir := t.TempDir()
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			cmd := NewRootCommand()
			cmd.SetOut(stdout)
			cmd.SetErr(stderr)
			// A broken config path proves the pre-run hook never ran.
			cmd.SetArgs(append([]string{"--dir", dir, "--config", filepath.Join(dir, "missing.yaml")}, args...))

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, "usage: square <binary> <size>", err.Error())
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Empty(t, stdout.String())

			entries, readErr := os.ReadDir(dir)
			require.NoError(t, readErr)
			assert.Empty(t, entries, "usage errors must not touch the filesystem")
		})
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "invalid", "./goblin", "8"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "square.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tool: magick\ndir: /from/file\nshell: /bin/bash\n"), 0644))

	opts := &RootOptions{}
	cmd := NewRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--dir", "/from/flag"}))

	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Dir, _ = cmd.Flags().GetString("dir")
	opts.Tool, _ = cmd.Flags().GetString("tool")
	opts.Shell, _ = cmd.Flags().GetString("shell")

	cfg, err := resolveConfig(opts, cmd)
	require.NoError(t, err)
	assert.Equal(t, harness.Config{Tool: "magick", Shell: "/bin/bash", Dir: "/from/flag"}, cfg)
}

func TestResolveConfig_Defaults(t *testing.T) {
	cmd := NewRootCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := resolveConfig(&RootOptions{}, cmd)
	require.NoError(t, err)
	assert.Equal(t, harness.DefaultConfig(), cfg)
}

func TestResolveConfig_BadFile(t *testing.T) {
	cmd := NewRootCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	_, err := resolveConfig(&RootOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
