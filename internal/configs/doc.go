// Package configs handles keysmith's user-level configuration.
//
// Configuration is optional: the tool runs with built-in defaults. The
// config file at ~/.config/keysmith/config.toml can pin a default
// key-type filter and redirect the GitHub endpoints (for GitHub
// Enterprise). The GITHUB_TOKEN is read from the environment, with a
// project-local .env file honored as a convenience.
package configs
