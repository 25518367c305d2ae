/*
Package genloom turns a declarative device model (clusters, attributes and
commands, bundled into versioned packages of domain metadata and generation
templates) into generated source artifacts, backed by a persistent SQLite
database that holds the schema, the loaded model, and per-run session state.

# Concept

Every run mode is a fixed, strictly ordered pipeline of stages threaded
through an accumulating context: initialize the database file, open a
handle, apply the versioned schema, load domain metadata, load a template
package, create an isolated session, bind packages to it, and finally
render templates into output files. Any stage failure short-circuits the
remainder and fails the whole invocation; there is no partial success.

# Run Modes

  - Interactive: loads the built-in packages into the primary database and
    stays resident behind the serving interface.
  - Generation: headless end-to-end run against caller-supplied metadata
    and templates, writing artifacts to an output directory.
  - SDK regeneration: deprecated degenerate pipeline kept for backward
    compatibility.
  - Self-check: exercises the load path against a throwaway database.

# Usage

	runner, err := genloom.NewRunner()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	_, err = runner.Generate(ctx, genloom.GenerationOptions{
		OutputDir:           "./out",
		TemplatePackagePath: "./my-templates",
		DomainMetadataPath:  "./model.xml",
		Config:              pipeline.DefaultConfig(),
	})
	if err != nil {
		log.Fatal(err)
	}

The genloom CLI under cmd/genloom exposes the same modes as commands.
*/
package genloom
