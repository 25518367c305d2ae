package pipeline

import (
	"fmt"

	"github.com/weftworks/genloom/internal/store"
)

// Context is the accumulating record threaded through one pipeline
// invocation. Stages only append: a field, once set, is never replaced
// within a run. The struct is owned exclusively by the in-flight
// invocation and must not be shared across concurrent runs.
type Context struct {
	DB                *store.DB
	SchemaVersion     string
	MetadataPackageID int64
	TemplatePackageID int64
	SessionID         string
	OutputDir         string
}

func (c *Context) setDB(db *store.DB) error {
	if c.DB != nil {
		return fmt.Errorf("pipeline context: database handle already set")
	}
	c.DB = db
	return nil
}

func (c *Context) setSchemaVersion(v string) error {
	if c.SchemaVersion != "" {
		return fmt.Errorf("pipeline context: schema version already set")
	}
	c.SchemaVersion = v
	return nil
}

func (c *Context) setMetadataPackage(id int64) error {
	if c.MetadataPackageID != 0 {
		return fmt.Errorf("pipeline context: metadata package already set")
	}
	c.MetadataPackageID = id
	return nil
}

func (c *Context) setTemplatePackage(id int64) error {
	if c.TemplatePackageID != 0 {
		return fmt.Errorf("pipeline context: template package already set")
	}
	c.TemplatePackageID = id
	return nil
}

func (c *Context) setSession(id string) error {
	if c.SessionID != "" {
		return fmt.Errorf("pipeline context: session already set")
	}
	c.SessionID = id
	return nil
}

func (c *Context) setOutputDir(dir string) error {
	if c.OutputDir != "" {
		return fmt.Errorf("pipeline context: output directory already set")
	}
	c.OutputDir = dir
	return nil
}

func (c *Context) requireDB() (*store.DB, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("pipeline context: stage ran before the database was opened")
	}
	return c.DB, nil
}
