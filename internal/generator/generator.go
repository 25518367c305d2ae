// Package generator renders the templates of a bound package against a
// session's device model and writes the resulting artifacts to disk.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/templates"
)

var filesGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "genloom_generated_files_total",
	Help: "Number of artifact files written by the generator.",
})

// Data is the value rendered into every template.
type Data struct {
	Session  string
	Package  string
	Options  map[string]string
	Clusters []store.Cluster
	Cluster  *store.Cluster // set only for cluster-scoped renders
}

// Generate renders every template of the package bound to the session and
// writes the artifacts under outDir. Generation either completes all
// templates or fails; there is no partial-success state.
func Generate(ctx context.Context, db *store.DB, sessionID string, templatePkgID int64, outDir string, logger *slog.Logger) error {
	pkgRow, err := db.PackageByID(ctx, templatePkgID)
	if err != nil {
		return &faults.GenerationError{Err: fmt.Errorf("resolving template package %d: %w", templatePkgID, err)}
	}
	if pkgRow.Type != store.PackageTemplate {
		return &faults.GenerationError{Err: fmt.Errorf("package %d is %q, not a template package", templatePkgID, pkgRow.Type)}
	}

	pkg, err := templates.Open(ctx, pkgRow.Path)
	if err != nil {
		return &faults.GenerationError{Err: err}
	}

	clusters, err := db.SessionClusters(ctx, sessionID)
	if err != nil {
		return &faults.GenerationError{Err: err}
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return &faults.GenerationError{Err: fmt.Errorf("creating output directory: %w", err)}
	}

	base := Data{
		Session:  sessionID,
		Package:  pkg.Manifest.Name,
		Options:  pkg.Manifest.Options,
		Clusters: clusters,
	}

	for _, tpl := range pkg.Templates {
		switch tpl.Scope {
		case templates.ScopePackage:
			if err := renderOne(tpl, base, outDir, logger); err != nil {
				return err
			}
		case templates.ScopeCluster:
			for i := range clusters {
				data := base
				data.Cluster = &clusters[i]
				if err := renderOne(tpl, data, outDir, logger); err != nil {
					return err
				}
			}
		}
	}

	logger.Info("Generation complete",
		"session", sessionID,
		"package", pkg.Manifest.Name,
		"clusters", len(clusters),
		"out", outDir,
	)
	return nil
}

func renderOne(tpl templates.Template, data Data, outDir string, logger *slog.Logger) error {
	name, err := renderString(tpl.Name+":output", tpl.Output, data)
	if err != nil {
		return &faults.GenerationError{Template: tpl.Name, Err: err}
	}
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "" || name == "." || strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
		return &faults.GenerationError{Template: tpl.Name, Err: fmt.Errorf("output path %q escapes the output directory", name)}
	}

	content, err := renderString(tpl.Name, tpl.Source, data)
	if err != nil {
		return &faults.GenerationError{Template: tpl.Name, Err: err}
	}

	target := filepath.Join(outDir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return &faults.GenerationError{Template: tpl.Name, Err: err}
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return &faults.GenerationError{Template: tpl.Name, Err: err}
	}

	filesGenerated.Inc()
	logger.Info("Generated file", "template", tpl.Name, "path", target)
	return nil
}

func renderString(name, source string, data Data) (string, error) {
	t, err := texttemplate.New(name).Funcs(templates.Funcs()).Parse(source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
