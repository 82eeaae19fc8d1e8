package sources

import (
	"context"
	"sync"

	"keysmith/internal/keys"
)

// Cached memoizes another source's first result so a bulk refresh can
// merge many policy documents from a single fetch. The wrapper is safe
// to share across concurrent per-file workers; the wrapped source is
// drained at most once and the cached records are treated as immutable
// for the duration of the run.
type Cached struct {
	src keys.Source

	once    sync.Once
	records []keys.Record
	err     error
}

// NewCached wraps src in a memoizing source.
func NewCached(src keys.Source) *Cached {
	return &Cached{src: src}
}

func (c *Cached) Name() string { return c.src.Name() }

func (c *Cached) Optional() bool { return c.src.Optional() }

// Degradations passes through the wrapped source's skip reports.
func (c *Cached) Degradations() []keys.Warning {
	if degraded, ok := c.src.(keys.Degraded); ok {
		return degraded.Degradations()
	}
	return nil
}

func (c *Cached) Records(ctx context.Context) ([]keys.Record, error) {
	c.once.Do(func() {
		c.records, c.err = c.src.Records(ctx)
	})
	return c.records, c.err
}
