package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/store"
	"github.com/weftworks/genloom/internal/templates"
)

// RegenerateSDK is the legacy regeneration routine kept for backward
// compatibility. It bypasses template packages and sessions entirely,
// dumping the loaded device model as a JSON manifest plus one Go constants
// file per cluster. It deliberately shares no machinery with Generate;
// callers should migrate to the template-driven pipeline.
func RegenerateSDK(ctx context.Context, db *store.DB, outDir string, logger *slog.Logger) error {
	clusters, err := db.AllClusters(ctx)
	if err != nil {
		return &faults.GenerationError{Err: err}
	}
	if len(clusters) == 0 {
		return &faults.GenerationError{Err: fmt.Errorf("no clusters loaded; nothing to regenerate")}
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return &faults.GenerationError{Err: fmt.Errorf("creating output directory: %w", err)}
	}

	manifest := struct {
		Clusters []store.Cluster `json:"clusters"`
	}{Clusters: clusters}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return &faults.GenerationError{Err: err}
	}
	manifestPath := filepath.Join(outDir, "sdk_manifest.json")
	if err := os.WriteFile(manifestPath, append(raw, '\n'), 0o644); err != nil {
		return &faults.GenerationError{Err: err}
	}
	filesGenerated.Inc()
	logger.Info("Generated file", "path", manifestPath)

	for i := range clusters {
		if err := writeSDKCluster(outDir, &clusters[i], logger); err != nil {
			return err
		}
	}

	logger.Info("SDK regeneration complete", "clusters", len(clusters), "out", outDir)
	return nil
}

func writeSDKCluster(outDir string, c *store.Cluster, logger *slog.Logger) error {
	data := Data{
		Package:  "sdk",
		Options:  map[string]string{"package": "sdk"},
		Clusters: []store.Cluster{*c},
		Cluster:  c,
	}

	content, err := renderString("sdk-cluster", sdkClusterTemplate, data)
	if err != nil {
		return &faults.GenerationError{Template: "sdk-cluster", Err: err}
	}

	target := filepath.Join(outDir, templates.Snake(c.Define)+"_sdk.go")
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return &faults.GenerationError{Template: "sdk-cluster", Err: err}
	}
	filesGenerated.Inc()
	logger.Info("Generated file", "template", "sdk-cluster", "path", target)
	return nil
}

const sdkClusterTemplate = `// Code generated by genloom (legacy SDK mode). DO NOT EDIT.

package sdk

// {{ .Cluster.Name }} cluster (0x{{ printf "%04X" .Cluster.Code }}).
const (
	{{ pascal .Cluster.Define }}ClusterID = 0x{{ printf "%04X" .Cluster.Code }}
{{- range .Cluster.Attributes }}
	{{ pascal $.Cluster.Define }}Attr{{ pascal .Name }} = 0x{{ printf "%04X" .Code }}
{{- end }}
{{- range .Cluster.Commands }}
	{{ pascal $.Cluster.Define }}Cmd{{ pascal .Name }} = 0x{{ printf "%02X" .Code }}
{{- end }}
)
`
