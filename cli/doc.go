// Package cli contains the command line interface for smf.
//
// # Usage
//
// With no command, smf builds the material named on the command line (or
// read from stdin) and prints its report:
//
//	smf UnlitGeneric.smf
//	smf fmt json --indent=4 UnlitGeneric.smf
//	smf query 'vars.basetexture' UnlitGeneric.smf
//	smf repl UnlitGeneric.smf
//
// # Configuration
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory. Nested YAML mappings name prefixed flags:
//
//	log:
//	  level: debug
//	  format: text
//	db: /path/to/catalog.db
//
// The init command writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o smf .
//
// It adds --pprof-mode (allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, trace) and --pprof-dir, which defaults to a pprof directory
// under the user cache directory.
package cli
