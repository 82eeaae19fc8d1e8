// Package ui provides semantic text formatting for CLI output.
//
// Formatters pair a color with a plain-text fallback so output stays
// readable when colors are disabled (NO_COLOR, dumb terminals, pipes):
//
//	ui.Path.Sprint(".sops.yaml")     // yellow, or bare path
//	ui.Code.Sprint("keysmith refresh-secrets") // yellow, or `backticks`
package ui
