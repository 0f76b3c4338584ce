// Package cli contains the command line interface for pcalc.
//
// # Usage
//
//	pcalc [flags] [run] [-e EXPR]... [-f FILE]... [-i] [-b] [-q] [--plain]
//	pcalc fmt [--yaml|--json] FILE...
//	pcalc init [--force]
//
// With no expressions or files, run starts the interactive REPL when stdin is
// a terminal and evaluates stdin line by line otherwise.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/pcalc/config.yaml), and from config.json
// next to it. Keys are flag names; underscores may stand in for hyphens:
//
//	config:
//	  log-level: debug
//	  log_format: json
//	  path: [~/calc]
//
// Use "pcalc init" to write the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o pcalc .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/pcalc/pprof)
package cli
