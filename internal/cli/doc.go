// Package cli implements the liveline command line.
//
// liveline has a single root command. Flag parsing stops at the first
// positional argument, so everything after it belongs to the child:
//
//	liveline [--label TEXT] [flags] <command> [args...]
//
// Settings come from, in increasing precedence, built-in defaults, a config
// file (.liveline.yaml or ~/.config/liveline/config.yaml), LIVELINE_*
// environment variables, and flags.
//
// Run wires the pieces together: the process runner produces output chunks,
// the output buffer tracks the latest line and keeps the full log, and the
// live display redraws the status line once per chunk. The process exits
// with the child's exit code, 127 when the child can't be started, or 2 for
// usage and config errors.
package cli
