// Package logger provides leveled logging for keysmith CLI commands.
//
// Everything goes to stderr: stdout is reserved for generated key
// material so the commands compose with shell pipelines
// (`keysmith import-keys ... > .sops.yaml` must not capture log lines).
//
// # Verbosity Levels
//
//   - Logger.Infof()  // shown with --verbose or --debug
//   - Logger.Debugf() // shown only with --debug
//   - Logger.Warnf()  // always shown (degraded sources, skipped keys)
//   - Logger.Errorf() // always shown
//
// Commands create a logger from their flags and pass it down:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Warnf("known-hosts file missing: %v", err)
package logger
