package store

import (
	"context"
	"fmt"
)

// SessionClusters returns the clusters visible to a session (those owned by
// its bound packages), with attributes and commands attached, ordered by
// cluster code. This is the generator's working set.
func (d *DB) SessionClusters(ctx context.Context, sessionID string) ([]Cluster, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT c.id, c.package_id, c.code, c.manufacturer_code, c.name, c.define
		 FROM cluster c
		 JOIN session_package sp ON sp.package_id = c.package_id
		 WHERE sp.session_id = ?
		 ORDER BY c.code, c.manufacturer_code`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session clusters: %w", err)
	}
	defer rows.Close()

	var clusters []Cluster
	for rows.Next() {
		var c Cluster
		if err := rows.Scan(&c.ID, &c.PackageID, &c.Code, &c.ManufacturerCode, &c.Name, &c.Define); err != nil {
			return nil, fmt.Errorf("scanning cluster: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range clusters {
		if err := d.attachChildren(ctx, &clusters[i]); err != nil {
			return nil, err
		}
	}
	return clusters, nil
}

// AllClusters returns every loaded cluster with children attached,
// regardless of sessions. Used by the legacy SDK regeneration path.
func (d *DB) AllClusters(ctx context.Context) ([]Cluster, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, package_id, code, manufacturer_code, name, define
		 FROM cluster ORDER BY code, manufacturer_code`)
	if err != nil {
		return nil, fmt.Errorf("querying clusters: %w", err)
	}
	defer rows.Close()

	var clusters []Cluster
	for rows.Next() {
		var c Cluster
		if err := rows.Scan(&c.ID, &c.PackageID, &c.Code, &c.ManufacturerCode, &c.Name, &c.Define); err != nil {
			return nil, fmt.Errorf("scanning cluster: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range clusters {
		if err := d.attachChildren(ctx, &clusters[i]); err != nil {
			return nil, err
		}
	}
	return clusters, nil
}

func (d *DB) attachChildren(ctx context.Context, c *Cluster) error {
	attrRows, err := d.sql.QueryContext(ctx,
		`SELECT id, cluster_id, code, name, type, side, writable, default_value
		 FROM attribute WHERE cluster_id = ? ORDER BY code`, c.ID)
	if err != nil {
		return fmt.Errorf("querying attributes for cluster %q: %w", c.Name, err)
	}
	defer attrRows.Close()

	for attrRows.Next() {
		var a Attribute
		if err := attrRows.Scan(&a.ID, &a.ClusterID, &a.Code, &a.Name, &a.Type, &a.Side, &a.Writable, &a.DefaultValue); err != nil {
			return fmt.Errorf("scanning attribute: %w", err)
		}
		c.Attributes = append(c.Attributes, a)
	}
	if err := attrRows.Err(); err != nil {
		return err
	}

	cmdRows, err := d.sql.QueryContext(ctx,
		`SELECT id, cluster_id, code, name, source
		 FROM command WHERE cluster_id = ? ORDER BY code`, c.ID)
	if err != nil {
		return fmt.Errorf("querying commands for cluster %q: %w", c.Name, err)
	}
	defer cmdRows.Close()

	for cmdRows.Next() {
		var cmd Command
		if err := cmdRows.Scan(&cmd.ID, &cmd.ClusterID, &cmd.Code, &cmd.Name, &cmd.Source); err != nil {
			return fmt.Errorf("scanning command: %w", err)
		}
		c.Commands = append(c.Commands, cmd)
	}
	return cmdRows.Err()
}

// ManufacturerStats counts the model rows scoped to one manufacturer code
// within a session's visible packages.
func (d *DB) ManufacturerStats(ctx context.Context, sessionID string, manufacturerCode int64) (ModelStats, error) {
	var stats ModelStats
	err := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cluster c
		 JOIN session_package sp ON sp.package_id = c.package_id
		 WHERE sp.session_id = ? AND c.manufacturer_code = ?`,
		sessionID, manufacturerCode).Scan(&stats.Clusters)
	if err != nil {
		return stats, fmt.Errorf("counting clusters: %w", err)
	}

	err = d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attribute a
		 JOIN cluster c ON c.id = a.cluster_id
		 JOIN session_package sp ON sp.package_id = c.package_id
		 WHERE sp.session_id = ? AND c.manufacturer_code = ?`,
		sessionID, manufacturerCode).Scan(&stats.Attributes)
	if err != nil {
		return stats, fmt.Errorf("counting attributes: %w", err)
	}

	err = d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM command cm
		 JOIN cluster c ON c.id = cm.cluster_id
		 JOIN session_package sp ON sp.package_id = c.package_id
		 WHERE sp.session_id = ? AND c.manufacturer_code = ?`,
		sessionID, manufacturerCode).Scan(&stats.Commands)
	if err != nil {
		return stats, fmt.Errorf("counting commands: %w", err)
	}
	return stats, nil
}

// Counts returns database-wide totals for the status API.
func (d *DB) Counts(ctx context.Context) (packages, sessions, clusters int, err error) {
	if err = d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM package`).Scan(&packages); err != nil {
		return 0, 0, 0, fmt.Errorf("counting packages: %w", err)
	}
	if err = d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM session`).Scan(&sessions); err != nil {
		return 0, 0, 0, fmt.Errorf("counting sessions: %w", err)
	}
	if err = d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM cluster`).Scan(&clusters); err != nil {
		return 0, 0, 0, fmt.Errorf("counting clusters: %w", err)
	}
	return packages, sessions, clusters, nil
}
