// Package defaults ships the built-in domain metadata and template package
// used by interactive and self-check runs when the caller supplies none.
// The assets are embedded in the binary and extracted into the data
// directory on demand, so the regular file-based loaders can consume them.
package defaults

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed assets
var assets embed.FS

// Paths locates the extracted built-in inputs.
type Paths struct {
	Metadata  string // built-in domain metadata XML
	Templates string // built-in template package directory
}

// Ensure extracts the embedded assets under dir and returns their paths.
// Extraction overwrites previous copies so the on-disk defaults always
// match the running binary; the operation is idempotent.
func Ensure(dir string) (Paths, error) {
	root := filepath.Join(dir, "defaults")

	err := fs.WalkDir(assets, "assets", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("assets", path)
		if err != nil {
			return err
		}
		target := filepath.Join(root, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		data, err := assets.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		return Paths{}, fmt.Errorf("extracting built-in assets: %w", err)
	}

	return Paths{
		Metadata:  filepath.Join(root, "metadata.xml"),
		Templates: filepath.Join(root, "templates"),
	}, nil
}
