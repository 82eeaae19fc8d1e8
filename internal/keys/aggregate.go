package keys

import (
	"context"
	"fmt"

	kerrors "keysmith/internal/errors"
)

// Source is the capability the aggregator depends on. Concrete
// implementations (GitHub repo contributors, explicit user lists,
// known-hosts files, local checkouts) live in the sources package.
type Source interface {
	// Name identifies the source in warnings and error messages.
	Name() string

	// Optional reports whether a failure of this source should degrade
	// to a warning instead of aborting the aggregation.
	Optional() bool

	// Records produces the source's key records. A source is drained
	// exactly once per aggregation; it may block on network or file I/O.
	Records(ctx context.Context) ([]Record, error)
}

// Degraded is implemented by sources that can succeed partially,
// reporting the pieces they had to skip. The aggregator collects these
// after draining the source so partial coverage is never silent.
type Degraded interface {
	Degradations() []Warning
}

// Warning records a non-fatal condition encountered during
// aggregation, such as an optional source that could not be read or a
// source that skipped part of its population.
type Warning struct {
	Source string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Source, w.Err)
}

// Aggregate merges records from every source into one deduplicated,
// canonically ordered set.
//
// typeFilter restricts the accepted key types; an empty filter accepts
// all types. Filtering happens before deduplication.
//
// A failing required source aborts with an error wrapping
// ErrSourceUnavailable. Failures of optional sources are returned as
// warnings and contribute no records.
func Aggregate(ctx context.Context, srcs []Source, typeFilter []string) (Set, []Warning, error) {
	accept := make(map[string]bool, len(typeFilter))
	for _, t := range typeFilter {
		accept[t] = true
	}

	var warnings []Warning
	byIdentity := make(map[identity]Record)
	var order []identity

	for _, src := range srcs {
		records, err := src.Records(ctx)
		if err != nil {
			if src.Optional() {
				warnings = append(warnings, Warning{Source: src.Name(), Err: err})
				continue
			}
			return nil, warnings, fmt.Errorf("%w: %s: %v", kerrors.ErrSourceUnavailable, src.Name(), err)
		}
		if degraded, ok := src.(Degraded); ok {
			warnings = append(warnings, degraded.Degradations()...)
		}

		for _, rec := range records {
			if len(accept) > 0 && !accept[rec.Type] {
				continue
			}
			id := identity{principal: rec.Principal, keyType: rec.Type, material: rec.Material}
			if existing, ok := byIdentity[id]; ok {
				existing.Origins = mergeOrigins(existing.Origins, rec.Origins)
				byIdentity[id] = existing
				continue
			}
			byIdentity[id] = rec
			order = append(order, id)
		}
	}

	set := make(Set, 0, len(order))
	for _, id := range order {
		set = append(set, byIdentity[id])
	}
	set.Sort()
	return set, warnings, nil
}
