// Package cmd implements the smf subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// CatalogIdentifier is the kong variable identifier containing the default
	// path of the catalog database.
	CatalogIdentifier = "catalog"
)
