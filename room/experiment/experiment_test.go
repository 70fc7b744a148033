package experiment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()
	parts := strings.Split(id, "-")
	require.Len(t, parts, 3)
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, nouns, parts[1])
	assert.Len(t, parts[2], 8)

	assert.NotEqual(t, id, GenerateRunID())
}

func TestCreateRunDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "runs")

	first, err := CreateRunDirectory(base)
	require.NoError(t, err)
	assert.DirExists(t, first.Path)
	assert.True(t, filepath.IsAbs(first.Path))

	second, err := CreateRunDirectory(base)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	target, err := os.Readlink(filepath.Join(base, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(t, second.ID, target)
}

func TestRunDirFiles(t *testing.T) {
	dir := t.TempDir()
	run, err := CreateRunDirectory(filepath.Join(dir, "runs"))
	require.NoError(t, err)

	require.NoError(t, run.WriteFile("room.json", []byte(`{"points":[]}`)))
	assert.FileExists(t, run.FilePath("room.json"))

	src := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(src, []byte("scan:\n  samples: 5\n"), 0644))
	require.NoError(t, run.CopyFile(src))

	content, err := os.ReadFile(run.FilePath("config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "scan:\n  samples: 5\n", string(content))

	assert.Error(t, run.CopyFile(filepath.Join(dir, "missing.yaml")))
}
