package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weftworks/genloom/internal/metadata"
	"github.com/weftworks/genloom/internal/server"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/testutils"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.DB) {
	t.Helper()

	db := testutils.OpenTestDB(t)
	_, err := metadata.Load(context.Background(), db, testutils.WriteMetadata(t, testutils.MetadataXML))
	require.NoError(t, err)

	handler := server.NewHandler(db, server.Info{
		Version:       "test",
		DBPath:        db.Path(),
		SchemaVersion: store.SchemaVersion,
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, db
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var status struct {
		Version       string `json:"version"`
		SchemaVersion string `json:"schemaVersion"`
		Packages      int    `json:"packages"`
		Sessions      int    `json:"sessions"`
		Clusters      int    `json:"clusters"`
	}
	getJSON(t, srv.URL+"/status", &status)

	assert.Equal(t, "test", status.Version)
	assert.Equal(t, store.SchemaVersion, status.SchemaVersion)
	assert.Equal(t, 1, status.Packages)
	assert.Equal(t, 0, status.Sessions)
	assert.Equal(t, 2, status.Clusters)
}

func TestPackagesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var pkgs []struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
	getJSON(t, srv.URL+"/packages", &pkgs)

	require.Len(t, pkgs, 1)
	assert.Equal(t, store.PackageMetadata, pkgs[0].Type)
}

func TestCreateSessionEndpoint(t *testing.T) {
	srv, db := newTestServer(t)

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       string  `json:"id"`
		Packages []int64 `json:"packages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.Packages, 1, "The default package set is bound on creation")

	sessions, err := db.Sessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, sessions)

	var listed []string
	getJSON(t, srv.URL+"/sessions", &listed)
	assert.Equal(t, []string{created.ID}, listed)
}

func TestModelGraphEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/model/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "graph TD")
	assert.Contains(t, string(raw), "On/Off")
}

func TestSessionsEndpointEmptyList(t *testing.T) {
	srv, _ := newTestServer(t)

	var listed []string
	getJSON(t, srv.URL+"/sessions", &listed)
	assert.Empty(t, listed)
}
