package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ManifestName is the fixed manifest file of a template package.
const ManifestName = "genloom.yaml"

// Manifest describes a template package: identity plus free-form options
// made available to every template under .Options.
type Manifest struct {
	Name     string            `yaml:"name"`
	Version  string            `yaml:"version"`
	Category string            `yaml:"category"`
	Options  map[string]string `yaml:"-"`
}

// rawManifest accepts arbitrary YAML values under options (numbers,
// booleans); they are weakly decoded to strings for template consumption.
type rawManifest struct {
	Name     string         `yaml:"name"`
	Version  string         `yaml:"version"`
	Category string         `yaml:"category"`
	Options  map[string]any `yaml:"options"`
}

func readManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var rm rawManifest
	if err := yaml.Unmarshal(raw, &rm); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if rm.Name == "" {
		return nil, fmt.Errorf("manifest missing package name")
	}

	m := Manifest{
		Name:     rm.Name,
		Version:  rm.Version,
		Category: rm.Category,
		Options:  map[string]string{},
	}
	if len(rm.Options) > 0 {
		if err := mapstructure.WeakDecode(rm.Options, &m.Options); err != nil {
			return nil, fmt.Errorf("decoding manifest options: %w", err)
		}
	}
	return &m, nil
}
