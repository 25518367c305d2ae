package defaults

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureExtractsAssets(t *testing.T) {
	dir := t.TempDir()

	paths, err := Ensure(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "defaults", "metadata.xml"), paths.Metadata)
	assert.Equal(t, filepath.Join(dir, "defaults", "templates"), paths.Templates)

	raw, err := os.ReadFile(paths.Metadata)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<configurator>")

	_, err = os.Stat(filepath.Join(paths.Templates, "genloom.yaml"))
	assert.NoError(t, err)
}

func TestEnsureIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Ensure(dir)
	require.NoError(t, err)

	// A stale on-disk copy is overwritten by the embedded version.
	require.NoError(t, os.WriteFile(first.Metadata, []byte("tampered"), 0o644))

	second, err := Ensure(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	raw, err := os.ReadFile(second.Metadata)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<configurator>")
}
