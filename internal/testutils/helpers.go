// Package testutils holds shared fixtures for the genloom test suites:
// schema-initialized temp databases, metadata files and template packages.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom/internal/store"
)

// MetadataXML is a small two-cluster device model covering attributes,
// commands and hex code parsing.
const MetadataXML = `<?xml version="1.0"?>
<configurator>
  <cluster code="0x0006" define="ON_OFF" name="On/Off">
    <attribute code="0x0000" name="OnOff" type="boolean" side="server" writable="false" default="0"/>
    <command code="0x00" name="Off" source="client"/>
    <command code="0x01" name="On" source="client"/>
    <command code="0x02" name="Toggle" source="client"/>
  </cluster>
  <cluster code="0x0008" define="LEVEL_CONTROL" name="Level Control">
    <attribute code="0x0000" name="CurrentLevel" type="int8u" side="server" writable="false" default="0"/>
    <command code="0x00" name="MoveToLevel" source="client"/>
  </cluster>
</configurator>
`

// OpenTestDB opens a fresh database in a temp dir with the schema applied.
// The handle is closed automatically when the test finishes.
func OpenTestDB(t *testing.T) *store.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "genloom.sqlite")
	db, err := store.Open(path)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.ApplySchema(context.Background(), store.SchemaVersion),
		"Failed to apply schema")
	return db
}

// WriteMetadata writes a metadata XML fixture into a temp dir and returns
// its path.
func WriteMetadata(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteTemplatePackage materializes a template package directory from a
// manifest and a set of named documents and returns its path.
func WriteTemplatePackage(t *testing.T, manifest string, docs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genloom.yaml"), []byte(manifest), 0o644))
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}
