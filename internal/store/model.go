package store

// Package types.
const (
	PackageMetadata = "metadata"
	PackageTemplate = "template"
)

// Package is a loaded, identified bundle of domain metadata or generation
// templates. The id is assigned at load time and never changes; reloading
// a path whose content changed produces a new package row.
type Package struct {
	ID      int64
	Path    string
	Type    string
	Version string
	CRC     uint32
}

// Cluster is one functional unit of the device model, owned by a package.
type Cluster struct {
	ID               int64
	PackageID        int64
	Code             int64
	ManufacturerCode int64
	Name             string
	Define           string

	Attributes []Attribute
	Commands   []Command
}

// Attribute is a named data field of a cluster.
type Attribute struct {
	ID           int64
	ClusterID    int64
	Code         int64
	Name         string
	Type         string
	Side         string
	Writable     bool
	DefaultValue string
}

// Command is an invokable operation of a cluster.
type Command struct {
	ID        int64
	ClusterID int64
	Code      int64
	Name      string
	Source    string
}

// ModelStats aggregates row counts for a slice of the device model,
// typically scoped to one manufacturer code.
type ModelStats struct {
	Clusters   int
	Attributes int
	Commands   int
}
