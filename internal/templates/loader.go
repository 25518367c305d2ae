// Package templates loads generation template packages. A package is a
// directory holding a genloom.yaml manifest and markdown template documents
// whose frontmatter declares the output path and scope; document bodies are
// text/template sources. Documents are read through a Loam repository so the
// same frontmatter conventions apply as everywhere else in the toolchain.
package templates

import (
	"context"
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	texttemplate "text/template"

	"github.com/aretw0/loam"
	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/store"
)

// Scopes controlling how often a template is rendered.
const (
	ScopeCluster = "cluster" // once per cluster in the session's model
	ScopePackage = "package" // once per generation run
)

// DocMeta is the frontmatter of a template document.
type DocMeta struct {
	Name   string `json:"name" mapstructure:"name"`
	Output string `json:"output" mapstructure:"output"`
	Scope  string `json:"scope" mapstructure:"scope"`
}

// Template is one parse-checked generation template.
type Template struct {
	Name   string
	Output string // text/template producing the output file path
	Scope  string
	Source string // text/template producing the file content
}

// Package is a fully loaded template package.
type Package struct {
	Manifest  Manifest
	Dir       string
	Templates []Template
}

// Load opens the template package at path, parse-checks every template,
// and registers the package in the database. Re-loading an unchanged
// directory returns the existing package id.
func Load(ctx context.Context, db *store.DB, path string) (int64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, &faults.LoadError{Source: path, Err: err}
	}

	crc, err := dirChecksum(abs)
	if err != nil {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}

	if existing, err := db.FindPackage(ctx, abs, store.PackageTemplate, crc); err == nil {
		return existing.ID, nil
	} else if err != store.ErrPackageNotFound {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}

	pkg, err := Open(ctx, abs)
	if err != nil {
		return 0, err
	}

	pkgID, err := db.CreatePackage(ctx, store.Package{
		Path:    abs,
		Type:    store.PackageTemplate,
		Version: pkg.Manifest.Version,
		CRC:     crc,
	})
	if err != nil {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}
	return pkgID, nil
}

// Open reads and parse-checks a template package without touching the
// database. The generator uses it to materialize a package registered
// earlier in the run.
func Open(ctx context.Context, dir string) (*Package, error) {
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, &faults.LoadError{Source: dir, Err: err}
	}

	repo, err := loam.Init(dir,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, &faults.LoadError{Source: dir, Err: fmt.Errorf("opening template repository: %w", err)}
	}
	typed := loam.NewTypedRepository[DocMeta](repo)

	docs, err := typed.List(ctx)
	if err != nil {
		return nil, &faults.LoadError{Source: dir, Err: fmt.Errorf("listing templates: %w", err)}
	}

	pkg := &Package{Manifest: *manifest, Dir: dir}
	for _, doc := range docs {
		if doc.Data.Output == "" {
			// Not a template document (e.g. the manifest itself).
			continue
		}

		tpl := Template{
			Name:   doc.Data.Name,
			Output: doc.Data.Output,
			Scope:  doc.Data.Scope,
			Source: doc.Content,
		}
		if tpl.Name == "" {
			tpl.Name = strings.TrimSuffix(filepath.Base(doc.ID), filepath.Ext(doc.ID))
		}
		if tpl.Scope == "" {
			tpl.Scope = ScopeCluster
		}
		if tpl.Scope != ScopeCluster && tpl.Scope != ScopePackage {
			return nil, &faults.LoadError{Source: dir, Err: fmt.Errorf("template %q: unknown scope %q", tpl.Name, tpl.Scope)}
		}

		// Parse-check now so generation never discovers syntax errors.
		if _, err := texttemplate.New(tpl.Name).Funcs(Funcs()).Parse(tpl.Source); err != nil {
			return nil, &faults.LoadError{Source: dir, Err: fmt.Errorf("template %q: %w", tpl.Name, err)}
		}
		if _, err := texttemplate.New(tpl.Name + ":output").Funcs(Funcs()).Parse(tpl.Output); err != nil {
			return nil, &faults.LoadError{Source: dir, Err: fmt.Errorf("template %q output: %w", tpl.Name, err)}
		}

		pkg.Templates = append(pkg.Templates, tpl)
	}

	if len(pkg.Templates) == 0 {
		return nil, &faults.LoadError{Source: dir, Err: fmt.Errorf("package %q contains no templates", manifest.Name)}
	}

	sort.Slice(pkg.Templates, func(i, j int) bool {
		return pkg.Templates[i].Name < pkg.Templates[j].Name
	})
	return pkg, nil
}

// dirChecksum hashes the package contents (manifest and documents) in a
// stable order, so an unchanged directory always produces the same crc.
func dirChecksum(dir string) (uint32, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml", ".json":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking package: %w", err)
	}
	sort.Strings(files)

	h := crc32.NewIEEE()
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("reading %q: %w", f, err)
		}
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return 0, err
		}
		_, _ = h.Write([]byte(rel))
		_, _ = h.Write(raw)
	}
	return h.Sum32(), nil
}
