// Package cmd implements the pcalc commands: run (the default), fmt, and
// init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// PathEnvIdentifier is the kong variable identifier containing the name
	// of the script search path environment variable.
	PathEnvIdentifier = "pathEnv"
)
