package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreatePackage registers a new package and returns its assigned id.
func (d *DB) CreatePackage(ctx context.Context, pkg Package) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		`INSERT INTO package (path, type, version, crc) VALUES (?, ?, ?, ?)`,
		pkg.Path, pkg.Type, pkg.Version, pkg.CRC)
	if err != nil {
		return 0, fmt.Errorf("inserting package %q: %w", pkg.Path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading package id: %w", err)
	}
	return id, nil
}

// FindPackage looks up a package by path, type and content checksum.
// Loaders use it to make re-loading an unchanged package a no-op.
func (d *DB) FindPackage(ctx context.Context, path, typ string, crc uint32) (*Package, error) {
	pkg := Package{Path: path, Type: typ, CRC: crc}
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, version FROM package WHERE path = ? AND type = ? AND crc = ?`,
		path, typ, crc).Scan(&pkg.ID, &pkg.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying package %q: %w", path, err)
	}
	return &pkg, nil
}

// PackageByID looks up a single package row.
func (d *DB) PackageByID(ctx context.Context, id int64) (*Package, error) {
	pkg := Package{ID: id}
	err := d.sql.QueryRowContext(ctx,
		`SELECT path, type, version, crc FROM package WHERE id = ?`,
		id).Scan(&pkg.Path, &pkg.Type, &pkg.Version, &pkg.CRC)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying package %d: %w", id, err)
	}
	return &pkg, nil
}

// Packages lists every loaded package, oldest first.
func (d *DB) Packages(ctx context.Context) ([]Package, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, path, type, version, crc FROM package ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var pkgs []Package
	for rows.Next() {
		var p Package
		if err := rows.Scan(&p.ID, &p.Path, &p.Type, &p.Version, &p.CRC); err != nil {
			return nil, fmt.Errorf("scanning package: %w", err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}

// InsertCluster stores a cluster under a package and returns its id.
func (d *DB) InsertCluster(ctx context.Context, c Cluster) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		`INSERT INTO cluster (package_id, code, manufacturer_code, name, define)
		 VALUES (?, ?, ?, ?, ?)`,
		c.PackageID, c.Code, c.ManufacturerCode, c.Name, c.Define)
	if err != nil {
		return 0, fmt.Errorf("inserting cluster %q: %w", c.Name, err)
	}
	return res.LastInsertId()
}

// InsertAttribute stores an attribute under a cluster.
func (d *DB) InsertAttribute(ctx context.Context, a Attribute) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO attribute (cluster_id, code, name, type, side, writable, default_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ClusterID, a.Code, a.Name, a.Type, a.Side, a.Writable, a.DefaultValue)
	if err != nil {
		return fmt.Errorf("inserting attribute %q: %w", a.Name, err)
	}
	return nil
}

// InsertCommand stores a command under a cluster.
func (d *DB) InsertCommand(ctx context.Context, c Command) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO command (cluster_id, code, name, source) VALUES (?, ?, ?, ?)`,
		c.ClusterID, c.Code, c.Name, c.Source)
	if err != nil {
		return fmt.Errorf("inserting command %q: %w", c.Name, err)
	}
	return nil
}
