// Package metadata loads declarative device-model files (clusters with
// their attributes and commands) into the database as versioned packages.
package metadata

import (
	"context"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/weftworks/genloom/internal/faults"
	"github.com/weftworks/genloom/internal/store"
)

// Load parses the metadata file at path and registers it as a package,
// inserting its clusters, attributes and commands. Loading the same
// unchanged file again returns the already assigned package id without
// touching the model tables; a changed file becomes a new package.
func Load(ctx context.Context, db *store.DB, path string) (int64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, &faults.LoadError{Source: path, Err: err}
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}
	crc := crc32.ChecksumIEEE(raw)

	if existing, err := db.FindPackage(ctx, abs, store.PackageMetadata, crc); err == nil {
		return existing.ID, nil
	} else if err != store.ErrPackageNotFound {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}

	model, err := parse(raw)
	if err != nil {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}

	pkgID, err := db.CreatePackage(ctx, store.Package{
		Path: abs,
		Type: store.PackageMetadata,
		CRC:  crc,
	})
	if err != nil {
		return 0, &faults.LoadError{Source: abs, Err: err}
	}

	for _, cl := range model.Clusters {
		if err := insertCluster(ctx, db, pkgID, cl); err != nil {
			return 0, &faults.LoadError{Source: abs, Err: err}
		}
	}

	return pkgID, nil
}

func insertCluster(ctx context.Context, db *store.DB, pkgID int64, cl xmlCluster) error {
	code, err := parseCode(cl.Code)
	if err != nil {
		return fmt.Errorf("cluster %q: %w", cl.Name, err)
	}
	manufacturer := int64(0)
	if cl.ManufacturerCode != "" {
		manufacturer, err = parseCode(cl.ManufacturerCode)
		if err != nil {
			return fmt.Errorf("cluster %q manufacturer code: %w", cl.Name, err)
		}
	}

	clusterID, err := db.InsertCluster(ctx, store.Cluster{
		PackageID:        pkgID,
		Code:             code,
		ManufacturerCode: manufacturer,
		Name:             cl.Name,
		Define:           cl.Define,
	})
	if err != nil {
		return err
	}

	for _, at := range cl.Attributes {
		attrCode, err := parseCode(at.Code)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", at.Name, err)
		}
		side := at.Side
		if side == "" {
			side = "server"
		}
		err = db.InsertAttribute(ctx, store.Attribute{
			ClusterID:    clusterID,
			Code:         attrCode,
			Name:         at.Name,
			Type:         at.Type,
			Side:         side,
			Writable:     at.Writable,
			DefaultValue: at.Default,
		})
		if err != nil {
			return err
		}
	}

	for _, cm := range cl.Commands {
		cmdCode, err := parseCode(cm.Code)
		if err != nil {
			return fmt.Errorf("command %q: %w", cm.Name, err)
		}
		source := cm.Source
		if source == "" {
			source = "client"
		}
		err = db.InsertCommand(ctx, store.Command{
			ClusterID: clusterID,
			Code:      cmdCode,
			Name:      cm.Name,
			Source:    source,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
