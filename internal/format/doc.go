// Package format renders canonical key sets into their output
// representations: flat authorized_keys lines, a structured YAML
// listing, bare age recipients, or the sops policy fragment consumed by
// the document merger.
//
// Rendering is pure: a given set and format always produce the same
// bytes, so refresh runs against unchanged sources yield zero diffs.
package format
