// Package errors provides typed error values for keysmith.
//
// Using sentinel errors allows callers to handle specific error
// conditions programmatically with errors.Is() rather than string
// matching. This makes error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Source errors: a key source failed (ErrSourceUnavailable)
//   - Conversion errors: a key has no age mapping (ErrUnsupportedKeyType)
//   - Document errors: a policy document is unusable (ErrDocumentParse)
//
// # Usage
//
// Return errors from internal packages:
//
//	return fmt.Errorf("%w: %s", errors.ErrSourceUnavailable, src.Name())
//
// Handle errors in the CLI layer:
//
//	_, err := workflows.ImportKeys(ctx, opts)
//	if errors.Is(err, kerrors.ErrSourceUnavailable) {
//	    // Suggest setting GITHUB_TOKEN
//	}
package errors
