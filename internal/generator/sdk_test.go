package generator_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom/internal/generator"
	"github.com/weftworks/genloom/internal/logging"
	"github.com/weftworks/genloom/internal/metadata"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/testutils"
)

func TestRegenerateSDK(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	_, err := metadata.Load(ctx, db, testutils.WriteMetadata(t, testutils.MetadataXML))
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, generator.RegenerateSDK(ctx, db, outDir, logging.NewNop()))

	raw, err := os.ReadFile(filepath.Join(outDir, "sdk_manifest.json"))
	require.NoError(t, err)

	var manifest struct {
		Clusters []store.Cluster `json:"clusters"`
	}
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Len(t, manifest.Clusters, 2)

	onOff, err := os.ReadFile(filepath.Join(outDir, "on_off_sdk.go"))
	require.NoError(t, err)
	assert.Contains(t, string(onOff), "OnOffClusterID = 0x0006")
	assert.Contains(t, string(onOff), "OnOffCmdToggle = 0x02")

	_, err = os.Stat(filepath.Join(outDir, "level_control_sdk.go"))
	assert.NoError(t, err)
}

func TestRegenerateSDKRequiresLoadedModel(t *testing.T) {
	db := testutils.OpenTestDB(t)

	err := generator.RegenerateSDK(context.Background(), db, t.TempDir(), logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no clusters loaded")
}
