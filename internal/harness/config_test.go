package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gm", cfg.Tool)
	assert.Equal(t, "/bin/sh", cfg.Shell)
	assert.Equal(t, ".", cfg.Dir)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "square.yaml", "tool: magick\ndir: /tmp/fixtures\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "magick", cfg.Tool)
	assert.Equal(t, "/tmp/fixtures", cfg.Dir)
	assert.Equal(t, DefaultShell, cfg.Shell, "unset fields keep defaults")
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "square.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_UnknownField(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "square.yaml", "tool: gm\ntimeout: 5s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNew_FillsDefaults(t *testing.T) {
	h := New(Config{Tool: "magick"})
	assert.Equal(t, Config{Tool: "magick", Shell: DefaultShell, Dir: DefaultDir}, h.Config())
}
