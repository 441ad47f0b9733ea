// Package configs manages the global, project and experiment configuration
// documents.
//
// Configuration is stored as YAML at three levels:
//
//   - Global: <config dir>/globals.yml (project roots, experiment owners,
//     archived containers, current project and experiment)
//   - Project: <root>/.project/.project.yml (identity, timestamps, a summary
//     of experiments and archive metadata)
//   - Experiment: <root>/.project/<id>.yml (owner, directory, timestamps and
//     any user-set values)
//
// Paths under a document's root are written as "." or "./a/b" and expanded
// again on load, so a project directory can be moved or unpacked elsewhere.
// Global paths are relative to the home directory.
//
// # Store
//
// A Store is opened once per invocation. Load reads the global document;
// Project and Experiment read their documents on first use. Save writes every
// cached document through a temporary file and a rename.
//
// # Settings
//
// Tool preferences live in <config dir>/settings.toml:
//
//	[naming]
//	project_prefix = "project"
//	experiment_prefix = "experiment"
//
//	[archive]
//	format = "tar"
//	exclude = ["**/*.tmp"]
package configs
