package workflows

import (
	"context"
	"fmt"

	"keysmith/internal/keys"
	logger "keysmith/internal/logging"
	"keysmith/internal/sopsfile"
	"keysmith/internal/sources"
)

// RefreshOptions configures the bulk refresh workflow.
type RefreshOptions struct {
	// Root is the working tree to refresh. Defaults to ".".
	Root string

	// Files overrides document discovery with an explicit list.
	Files []string

	// KeyTypes filters accepted key types for every file.
	KeyTypes []string

	// Sources overrides source construction. Defaults to the local
	// checkout at Root.
	Sources []keys.Source

	// Verbose and Debug control logging.
	Verbose bool
	Debug   bool
}

// FileResult is the outcome of refreshing one policy document.
type FileResult struct {
	Path string
	Err  error
}

// RefreshResult contains the outcome of a bulk refresh.
type RefreshResult struct {
	// Files holds one result per processed document, in processing
	// order.
	Files []FileResult

	// Failed is the number of documents that could not be refreshed.
	Failed int
}

// Refresh re-imports keys into every managed policy document in the
// working tree. Sources are fetched once and shared across files
// through a memoizing cache; each file is an independent unit of work,
// so a malformed document fails alone while the rest of the run
// continues. The caller decides the process exit status from Failed.
func Refresh(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	log := logger.Logger{Verbose: opts.Verbose, Debug: opts.Debug}

	root := opts.Root
	if root == "" {
		root = "."
	}

	files := opts.Files
	if files == nil {
		var err error
		files, err = sopsfile.Discover(ctx, root)
		if err != nil {
			return nil, err
		}
	}
	log.Infof("found %d managed policy document(s)", len(files))

	srcs := opts.Sources
	if srcs == nil {
		var err error
		srcs, err = BuildSources(ImportOptions{LocalCheckout: root})
		if err != nil {
			return nil, err
		}
	}
	// One fetch for the whole run; every per-file merge reads from the
	// same cached records.
	cached := make([]keys.Source, len(srcs))
	for i, src := range srcs {
		cached[i] = sources.NewCached(src)
	}

	result := &RefreshResult{}
	for _, file := range files {
		_, err := ImportKeys(ctx, ImportOptions{
			Sources:     cached,
			InplacePath: file,
			KeyTypes:    opts.KeyTypes,
			Verbose:     opts.Verbose,
			Debug:       opts.Debug,
		})
		if err != nil {
			log.Errorf("refresh of %s failed: %v", file, err)
			result.Failed++
		}
		result.Files = append(result.Files, FileResult{Path: file, Err: err})
	}
	return result, nil
}

// Summary renders a one-line human summary of the refresh.
func (r *RefreshResult) Summary() string {
	if r.Failed == 0 {
		return fmt.Sprintf("refreshed %d file(s)", len(r.Files))
	}
	return fmt.Sprintf("refreshed %d of %d file(s), %d failed",
		len(r.Files)-r.Failed, len(r.Files), r.Failed)
}
