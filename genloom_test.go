package genloom_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom"
	"github.com/weftworks/genloom/internal/pipeline"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/testutils"
)

func newTestRunner(t *testing.T) *genloom.Runner {
	t.Helper()
	runner, err := genloom.NewRunner(genloom.WithDataDir(t.TempDir()))
	require.NoError(t, err)
	return runner
}

func TestGenerateEndToEndWithBuiltins(t *testing.T) {
	runner := newTestRunner(t)
	outDir := t.TempDir()

	pc, err := runner.Generate(context.Background(), genloom.GenerationOptions{
		OutputDir: outDir,
		Config:    pipeline.DefaultConfig(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pc.SessionID)
	assert.NotZero(t, pc.MetadataPackageID)
	assert.NotZero(t, pc.TemplatePackageID)

	summary, err := os.ReadFile(filepath.Join(outDir, "model_summary.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Clusters: 4")
	assert.Contains(t, string(summary), pc.SessionID)

	onOff, err := os.ReadFile(filepath.Join(outDir, "on_off_constants.go"))
	require.NoError(t, err)
	assert.Contains(t, string(onOff), "OnOffClusterID = 0x0006")

	_, err = os.Stat(filepath.Join(outDir, "basic_constants.go"))
	assert.NoError(t, err)
}

func TestGenerateWithManufacturerSpecificModel(t *testing.T) {
	runner := newTestRunner(t)
	outDir := t.TempDir()

	metadataPath := testutils.WriteMetadata(t, `<?xml version="1.0"?>
<configurator>
  <cluster code="0x0006" define="ON_OFF" name="On/Off">
    <command code="0x02" name="Toggle" source="client"/>
  </cluster>
  <cluster code="0xFC00" manufacturerCode="0x1002" define="VENDOR_TUNING" name="Vendor Tuning">
    <attribute code="0x0000" name="TuningLevel" type="int8u" side="server"/>
  </cluster>
</configurator>
`)
	templatePath := testutils.WriteTemplatePackage(t, "name: vendor-pack\n", map[string]string{
		"listing.md": `---
name: listing
output: "clusters.txt"
scope: package
---
{{ range .Clusters }}{{ .Define }} {{ .ManufacturerCode }}
{{ end }}`,
	})

	pc, err := runner.Generate(context.Background(), genloom.GenerationOptions{
		OutputDir:           outDir,
		DomainMetadataPath:  metadataPath,
		TemplatePackagePath: templatePath,
		Config:              pipeline.DefaultConfig(),
	})
	require.NoError(t, err)

	listing, err := os.ReadFile(filepath.Join(outDir, "clusters.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(listing), "ON_OFF 0")
	assert.Contains(t, string(listing), "VENDOR_TUNING 4098")

	// The run's database persists after the handle is closed; reopen it to
	// inspect the manufacturer-scoped slice of the session's model.
	db, err := store.Open(runner.DatabasePath(genloom.SuffixGenerate))
	require.NoError(t, err)
	defer db.Close()

	stats, err := db.ManufacturerStats(context.Background(), pc.SessionID, 0x1002)
	require.NoError(t, err)
	assert.Equal(t, store.ModelStats{Clusters: 1, Attributes: 1, Commands: 0}, stats)
}

func TestGenerateSeedsInputState(t *testing.T) {
	runner := newTestRunner(t)

	statePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte(`{"target": "zigbee"}`), 0o644))

	pc, err := runner.Generate(context.Background(), genloom.GenerationOptions{
		OutputDir:      t.TempDir(),
		InputStatePath: statePath,
		Config:         pipeline.DefaultConfig(),
	})
	require.NoError(t, err)

	db, err := store.Open(runner.DatabasePath(genloom.SuffixGenerate))
	require.NoError(t, err)
	defer db.Close()

	values, err := db.SessionValues(context.Background(), pc.SessionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"target": `"zigbee"`}, values)
}

func TestSelfCheckRunsAreIndependent(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()
	cfg := pipeline.DefaultConfig()

	_, err := runner.SelfCheck(ctx, cfg)
	require.NoError(t, err)

	// A second run deletes and recreates the self-check database.
	_, err = runner.SelfCheck(ctx, cfg)
	require.NoError(t, err)

	db, err := store.Open(runner.DatabasePath(genloom.SuffixSelfCheck))
	require.NoError(t, err)
	defer db.Close()

	packages, sessions, _, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, packages, "Each run loads the built-ins exactly once")
	assert.Equal(t, 0, sessions, "Self-check leaves no session behind")
}

func TestRegenerateSDKEndToEnd(t *testing.T) {
	runner := newTestRunner(t)
	outDir := t.TempDir()

	_, err := runner.RegenerateSDK(context.Background(), genloom.SDKOptions{
		OutputDir: outDir,
		Config:    pipeline.DefaultConfig(),
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "sdk_manifest.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "on_off_sdk.go"))
	assert.NoError(t, err)
}

func TestClearDatabase(t *testing.T) {
	runner := newTestRunner(t)

	primary := runner.DatabasePath("")
	require.NoError(t, os.WriteFile(primary, []byte("previous model"), 0o644))

	require.NoError(t, runner.ClearDatabase())

	_, err := os.Stat(primary)
	assert.True(t, os.IsNotExist(err), "Primary database should have been moved aside")

	raw, err := os.ReadFile(primary + "~")
	require.NoError(t, err)
	assert.Equal(t, "previous model", string(raw))
}

func TestDatabasePathsArePerMode(t *testing.T) {
	runner := newTestRunner(t)

	paths := map[string]string{
		"":                      runner.DatabasePath(""),
		genloom.SuffixGenerate:  runner.DatabasePath(genloom.SuffixGenerate),
		genloom.SuffixSDKRegen:  runner.DatabasePath(genloom.SuffixSDKRegen),
		genloom.SuffixSelfCheck: runner.DatabasePath(genloom.SuffixSelfCheck),
	}

	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], "Modes must not share a database file")
		seen[p] = true
	}
	assert.Equal(t, filepath.Base(paths[genloom.SuffixGenerate]), "genloom.generate.sqlite")
}
