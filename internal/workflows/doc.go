// Package workflows provides high-level orchestration for keysmith
// commands.
//
// Workflows coordinate the pipeline packages (sources, keys, agekey,
// format, sopsfile) to implement complete user-facing features,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Building sources from options and configuration
//   - Aggregating, converting, and rendering the key set
//   - Merging into policy documents and writing atomically
//
// # Available Workflows
//
//   - ImportKeys: one aggregation → conversion → render/merge pass
//   - Refresh: ImportKeys applied in place to every managed document
//     in a working tree, from one shared fetch of the sources
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, so
// the CLI layer can match conditions with errors.Is() instead of string
// matching. Per-file failures during Refresh are collected in the
// result rather than returned, so one malformed document never aborts
// the run.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first
// parameter for cancellation and timeouts of the network-bound source
// fetches.
package workflows
