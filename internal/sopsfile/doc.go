// Package sopsfile reads, merges, and writes sops policy documents.
//
// A policy document is plain structured YAML owned by its authors; this
// package owns exactly one part of it, the management region: a marker
// comment containing the ManagedTag followed by a run of age-recipient
// sequence entries at the marker's indentation. Each owned entry ends
// with a `# principal` annotation that doubles as human documentation
// and as the signal that keysmith may rewrite or prune the entry on the
// next refresh. Entries without the annotation are someone's hand-work
// and are never touched.
//
// Merging is deliberately line-based rather than a YAML round-trip: a
// re-serialize-everything approach would churn formatting of sections
// this tool has no business touching. The document is still parsed as
// YAML first, purely to reject malformed files before editing them.
//
// Writes go through WriteFileAtomic (temp file + rename in the same
// directory) so an interrupted run cannot corrupt a document.
package sopsfile
