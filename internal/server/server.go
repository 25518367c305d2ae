// Package server exposes the interactive-mode JSON API over HTTP: database
// status, loaded packages, and on-demand session creation. The pipeline
// must have settled successfully before the handler is constructed; the
// server borrows the invocation's database handle for the process lifetime.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weftworks/genloom/internal/presentation/graph"
	"github.com/weftworks/genloom/internal/store"
)

// Info describes the running instance for the status endpoint.
type Info struct {
	Version       string `json:"version"`
	DBPath        string `json:"dbPath"`
	SchemaVersion string `json:"schemaVersion"`
}

// Server serves the interactive API against one open database.
type Server struct {
	db   *store.DB
	info Info
}

// NewHandler builds the HTTP handler for the interactive mode.
func NewHandler(db *store.DB, info Info) http.Handler {
	s := &Server{db: db, info: info}

	r := chi.NewRouter()
	r.Get("/status", s.status)
	r.Get("/packages", s.packages)
	r.Get("/sessions", s.sessions)
	r.Post("/sessions", s.createSession)
	r.Get("/model/graph", s.modelGraph)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type statusResponse struct {
	Info
	Packages int `json:"packages"`
	Sessions int `json:"sessions"`
	Clusters int `json:"clusters"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	packages, sessions, clusters, err := s.db.Counts(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Status error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, statusResponse{
		Info:     s.info,
		Packages: packages,
		Sessions: sessions,
		Clusters: clusters,
	})
}

type packageResponse struct {
	ID      int64  `json:"id"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	Version string `json:"version,omitempty"`
	CRC     uint32 `json:"crc"`
}

func (s *Server) packages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.db.Packages(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Package listing error: %v", err), http.StatusInternalServerError)
		return
	}
	resp := make([]packageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		resp = append(resp, packageResponse{ID: p.ID, Path: p.Path, Type: p.Type, Version: p.Version, CRC: p.CRC})
	}
	writeJSON(w, resp)
}

func (s *Server) sessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.db.Sessions(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Session listing error: %v", err), http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, ids)
}

type sessionResponse struct {
	ID       string  `json:"id"`
	Packages []int64 `json:"packages"`
}

// createSession creates a blank session and binds the default package set,
// mirroring the headless pipeline's session stages.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := s.db.CreateBlankSession(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		return
	}
	if _, err := s.db.InitializeSessionPackages(ctx, id); err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		return
	}
	bound, err := s.db.SessionPackages(ctx, id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, sessionResponse{ID: id, Packages: bound})
}

// modelGraph renders the loaded device model as a Mermaid diagram.
func (s *Server) modelGraph(w http.ResponseWriter, r *http.Request) {
	clusters, err := s.db.AllClusters(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Model graph error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(clusters)))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; nothing left to do but note it.
		fmt.Printf("Response encode error: %v\n", err)
	}
}
