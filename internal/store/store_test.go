package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/testutils"
)

func TestApplySchemaIsIdempotent(t *testing.T) {
	db := testutils.OpenTestDB(t)
	// Reapplying the same version verifies the stamp and changes nothing.
	assert.NoError(t, db.ApplySchema(context.Background(), store.SchemaVersion))
}

func TestApplySchemaRejectsVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genloom.sqlite")
	db, err := store.Open(path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.ApplySchema(ctx, "1"))

	err = db.ApplySchema(ctx, "2")
	require.Error(t, err)

	var schemaErr *faults.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "2", schemaErr.Want)
	assert.Equal(t, "1", schemaErr.Got)
}

func TestPackageLifecycle(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	id, err := db.CreatePackage(ctx, store.Package{
		Path: "/models/base.xml",
		Type: store.PackageMetadata,
		CRC:  0xDEADBEEF,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := db.FindPackage(ctx, "/models/base.xml", store.PackageMetadata, 0xDEADBEEF)
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)

	// A different checksum is a different package identity.
	_, err = db.FindPackage(ctx, "/models/base.xml", store.PackageMetadata, 0x12345678)
	assert.ErrorIs(t, err, store.ErrPackageNotFound)

	byID, err := db.PackageByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/models/base.xml", byID.Path)
	assert.Equal(t, uint32(0xDEADBEEF), byID.CRC)

	_, err = db.PackageByID(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrPackageNotFound)

	pkgs, err := db.Packages(ctx)
	require.NoError(t, err)
	assert.Len(t, pkgs, 1)
}

func TestSessionLifecycle(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	sessionID, err := db.CreateBlankSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	// A blank session is valid before any packages are bound.
	bound, err := db.SessionPackages(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, bound)

	pkgA, err := db.CreatePackage(ctx, store.Package{Path: "a.xml", Type: store.PackageMetadata, CRC: 1})
	require.NoError(t, err)
	pkgB, err := db.CreatePackage(ctx, store.Package{Path: "b", Type: store.PackageTemplate, CRC: 2})
	require.NoError(t, err)

	returned, err := db.InitializeSessionPackages(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, returned)

	bound, err = db.SessionPackages(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, []int64{pkgA, pkgB}, bound)

	// Rebinding an already bound package is a no-op.
	require.NoError(t, db.AddSessionPackage(ctx, sessionID, pkgA))
	bound, err = db.SessionPackages(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, bound, 2)

	sessions, err := db.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{sessionID}, sessions)
}

func TestSessionOperationsRejectUnknownSession(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	_, err := db.InitializeSessionPackages(ctx, "no-such-session")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	var sessionErr *faults.SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, "no-such-session", sessionErr.SessionID)

	assert.ErrorIs(t, db.PutSessionValue(ctx, "no-such-session", "k", "v"), store.ErrSessionNotFound)
}

func TestSessionValuesUpsert(t *testing.T) {
	db := testutils.OpenTestDB(t)
	ctx := context.Background()

	sessionID, err := db.CreateBlankSession(ctx)
	require.NoError(t, err)

	require.NoError(t, db.PutSessionValue(ctx, sessionID, "mode", "draft"))
	require.NoError(t, db.PutSessionValue(ctx, sessionID, "mode", "final"))
	require.NoError(t, db.PutSessionValue(ctx, sessionID, "owner", "qa"))

	values, err := db.SessionValues(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mode": "final", "owner": "qa"}, values)
}
