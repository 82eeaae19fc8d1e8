// Package keys defines the canonical in-memory model for contributor
// public keys and the aggregation pipeline that merges keys from
// multiple sources.
//
// # Key Records
//
// A Record holds one principal's one public key plus provenance: which
// source(s) contributed it. The identity of a record is the
// (principal, type, material) triple. The same key material under two
// different type tags is two distinct records; the same triple reported
// by two sources is one record whose origin set is the union of both.
//
// # Aggregation
//
// Aggregate drains a list of Source collaborators exactly once each,
// applies an optional key-type filter, deduplicates on the identity
// triple, and returns a Set sorted by (principal, type, material) so
// that repeated runs against an unchanged source population produce
// byte-identical downstream output.
//
// Sources mark themselves Optional. A failing optional source degrades
// to "contributes nothing" and is surfaced as a Warning; a failing
// required source aborts the aggregation with ErrSourceUnavailable.
package keys
