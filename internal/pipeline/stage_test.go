package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/testutils"
)

func TestOpenAndSchemaStages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genloom.sqlite")
	pc := &Context{}
	ctx := context.Background()

	require.NoError(t, OpenDatabaseStage(path).Run(ctx, pc))
	require.NotNil(t, pc.DB)
	defer pc.DB.Close()

	require.NoError(t, ApplySchemaStage(store.SchemaVersion).Run(ctx, pc))
	assert.Equal(t, store.SchemaVersion, pc.SchemaVersion)
}

func TestEnsureFreshStageRejectsOpenHandle(t *testing.T) {
	pc := &Context{}
	require.NoError(t, pc.setDB(&store.DB{}))

	err := EnsureFreshStage("anywhere.sqlite", true).Run(context.Background(), pc)
	assert.Error(t, err, "Fresh-start removal must precede opening the database")
}

func TestSeedSessionStateStage(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	sessionID, err := db.CreateBlankSession(ctx)
	require.NoError(t, err)

	statePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(statePath,
		[]byte(`{"endpoint": "light-1", "retries": 3, "debug": true}`), 0o644))

	pc := &Context{}
	require.NoError(t, pc.setDB(db))
	require.NoError(t, pc.setSession(sessionID))

	require.NoError(t, SeedSessionStateStage(statePath).Run(ctx, pc))

	values, err := db.SessionValues(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"endpoint": `"light-1"`,
		"retries":  "3",
		"debug":    "true",
	}, values)
}

func TestSeedSessionStateStageNoopWithoutPath(t *testing.T) {
	pc := &Context{}
	assert.NoError(t, SeedSessionStateStage("").Run(context.Background(), pc))
}

func TestSeedSessionStateStageRejectsMalformedJSON(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	sessionID, err := db.CreateBlankSession(ctx)
	require.NoError(t, err)

	statePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte(`{not json`), 0o644))

	pc := &Context{}
	require.NoError(t, pc.setDB(db))
	require.NoError(t, pc.setSession(sessionID))

	assert.Error(t, SeedSessionStateStage(statePath).Run(ctx, pc))
}
