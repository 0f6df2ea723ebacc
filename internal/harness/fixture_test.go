package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureName(t *testing.T) {
	assert.Equal(t, "001.png", FixtureName(1))
	assert.Equal(t, "064.png", FixtureName(64))
	assert.Equal(t, "128.png", FixtureName(128))
	assert.Equal(t, "1024.png", FixtureName(1024))
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, "128.png.tga", ReferencePath("128.png"))
	assert.Equal(t, "128.png.goblin.tga", CandidatePath("128.png"))
}

func TestFixtureExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "008.png")

	ok, err := fixtureExists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
	ok, err = fixtureExists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(1))
	assert.NoError(t, ValidateSize(MaxSize))
	assert.Error(t, ValidateSize(0))
	assert.Error(t, ValidateSize(-8))
	assert.Error(t, ValidateSize(MaxSize+1))
}

func TestCommandLines(t *testing.T) {
	assert.Equal(t, "gm convert -size 8x8 xc: +noise Random PNG8:008.png", generateCommand("gm", 8, "008.png"))
	assert.Equal(t, "gm identify 008.png", identifyCommand("gm", "008.png"))
	assert.Equal(t, "gm convert 008.png PNG24:- | gm convert - 008.png.tga", convertCommand("gm", "008.png"))
}
