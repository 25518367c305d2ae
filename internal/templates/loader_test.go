package templates_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/templates"
	"github.com/weftworks/genloom/internal/testutils"
)

const manifestFixture = `name: test-pack
version: "1.2"
category: sample
options:
  package: model
  retries: 3
  verbose: true
`

const clusterDoc = `---
name: constants
output: "{{ snake .Cluster.Name }}_constants.go"
scope: cluster
---
package {{ .Options.package }}

const {{ pascal .Cluster.Define }}ID = {{ .Cluster.Code }}
`

const summaryDoc = `---
name: summary
output: "SUMMARY.md"
scope: package
---
# {{ .Package }}

{{ len .Clusters }} clusters.
`

func TestOpenPackage(t *testing.T) {
	dir := testutils.WriteTemplatePackage(t, manifestFixture, map[string]string{
		"constants.md": clusterDoc,
		"summary.md":   summaryDoc,
	})

	pkg, err := templates.Open(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "test-pack", pkg.Manifest.Name)
	assert.Equal(t, "1.2", pkg.Manifest.Version)
	assert.Equal(t, map[string]string{
		"package": "model",
		"retries": "3",
		"verbose": "true",
	}, pkg.Manifest.Options, "Options decode weakly to strings")

	require.Len(t, pkg.Templates, 2)
	assert.Equal(t, "constants", pkg.Templates[0].Name, "Templates are sorted by name")
	assert.Equal(t, templates.ScopeCluster, pkg.Templates[0].Scope)
	assert.Equal(t, "summary", pkg.Templates[1].Name)
	assert.Equal(t, templates.ScopePackage, pkg.Templates[1].Scope)
}

func TestOpenDefaultsToClusterScope(t *testing.T) {
	dir := testutils.WriteTemplatePackage(t, manifestFixture, map[string]string{
		"plain.md": `---
output: "plain.txt"
---
no scope declared
`,
	})

	pkg, err := templates.Open(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, pkg.Templates, 1)
	assert.Equal(t, templates.ScopeCluster, pkg.Templates[0].Scope)
	assert.Equal(t, "plain", pkg.Templates[0].Name, "Name falls back to the file stem")
}

func TestOpenRejectsUnknownScope(t *testing.T) {
	dir := testutils.WriteTemplatePackage(t, manifestFixture, map[string]string{
		"bad.md": `---
output: "bad.txt"
scope: galaxy
---
body
`,
	})

	_, err := templates.Open(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope")
}

func TestOpenRejectsBadTemplateSyntax(t *testing.T) {
	dir := testutils.WriteTemplatePackage(t, manifestFixture, map[string]string{
		"broken.md": `---
output: "broken.txt"
---
{{ .Unclosed
`,
	})

	_, err := templates.Open(context.Background(), dir)
	require.Error(t, err)

	var loadErr *faults.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestOpenRejectsMissingManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte(clusterDoc), 0o644))

	_, err := templates.Open(context.Background(), dir)
	assert.Error(t, err)
}

func TestOpenRejectsEmptyPackage(t *testing.T) {
	dir := testutils.WriteTemplatePackage(t, manifestFixture, nil)

	_, err := templates.Open(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no templates")
}

func TestLoadUnchangedDirectoryReturnsExistingPackage(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	dir := testutils.WriteTemplatePackage(t, manifestFixture, map[string]string{
		"constants.md": clusterDoc,
	})

	first, err := templates.Load(ctx, db, dir)
	require.NoError(t, err)
	second, err := templates.Load(ctx, db, dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	pkgs, err := db.Packages(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "1.2", pkgs[0].Version, "Manifest version is recorded on the package row")
}

func TestLoadChangedDirectoryBecomesNewPackage(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	dir := testutils.WriteTemplatePackage(t, manifestFixture, map[string]string{
		"constants.md": clusterDoc,
	})

	first, err := templates.Load(ctx, db, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary.md"), []byte(summaryDoc), 0o644))

	second, err := templates.Load(ctx, db, dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
