package keys

import (
	"sort"
	"strings"
)

// Well-known SSH key algorithm names, as they appear in authorized_keys
// and known_hosts files. TypeAge is the type of a record after
// conversion to an age recipient.
const (
	TypeEd25519 = "ssh-ed25519"
	TypeRSA     = "ssh-rsa"
	TypeECDSA   = "ecdsa-sha2-nistp256"
	TypeAge     = "age"
)

// Origin identifies which kind of source contributed a key record.
// The zero value has the highest display priority.
type Origin int

const (
	// OriginGithubUser marks keys fetched from a GitHub account.
	OriginGithubUser Origin = iota

	// OriginKnownHosts marks keys read from a known-hosts file or a
	// live ssh-keyscan.
	OriginKnownHosts

	// OriginLocalCheckout marks keys for principals mined from commit
	// history of a local git checkout.
	OriginLocalCheckout
)

// String returns the origin name used in provenance comments.
func (o Origin) String() string {
	switch o {
	case OriginGithubUser:
		return "github"
	case OriginKnownHosts:
		return "known-hosts"
	case OriginLocalCheckout:
		return "local-checkout"
	default:
		return "unknown"
	}
}

// Record is one principal's one public key plus provenance.
type Record struct {
	// Principal is the identity that owns the key: a GitHub username
	// or a host identifier.
	Principal string

	// Type is the key algorithm name (TypeEd25519, TypeRSA, ...), or
	// TypeAge after conversion.
	Type string

	// Material is the base64 key blob as it appears in an
	// authorized_keys line, or the bech32 recipient string for TypeAge.
	Material string

	// Origins is the set of sources that contributed this record,
	// sorted by display priority. Never empty.
	Origins []Origin
}

// DisplayOrigin returns the highest-priority origin of the record:
// github beats known-hosts beats local-checkout.
func (r Record) DisplayOrigin() Origin {
	display := r.Origins[0]
	for _, o := range r.Origins[1:] {
		if o < display {
			display = o
		}
	}
	return display
}

// HasOrigin reports whether o is among the record's origins.
func (r Record) HasOrigin(o Origin) bool {
	for _, have := range r.Origins {
		if have == o {
			return true
		}
	}
	return false
}

// identity is the dedup key for a record. Type is part of identity:
// identical material under different type tags never collapses.
type identity struct {
	principal string
	keyType   string
	material  string
}

// Set is an ordered sequence of records. A canonical set contains
// exactly one record per identity triple and is sorted by
// (principal, type, material), principals compared case-insensitively
// so output ordering matches what users expect from a name listing.
type Set []Record

// Sort orders the set per the canonical ordering.
func (s Set) Sort() {
	sort.Slice(s, func(i, j int) bool {
		pi, pj := strings.ToLower(s[i].Principal), strings.ToLower(s[j].Principal)
		if pi != pj {
			return pi < pj
		}
		if s[i].Type != s[j].Type {
			return s[i].Type < s[j].Type
		}
		return s[i].Material < s[j].Material
	})
}

// Principals returns the distinct principal names in set order.
func (s Set) Principals() []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range s {
		if !seen[r.Principal] {
			seen[r.Principal] = true
			names = append(names, r.Principal)
		}
	}
	return names
}

// SharedMaterial returns, for every key material that appears under
// more than one principal, the list of principals sharing it. Two
// accounts publishing the same key is suspicious enough to mention in
// diagnostics, but records stay independent.
func (s Set) SharedMaterial() map[string][]string {
	byMaterial := make(map[string][]string)
	for _, r := range s {
		k := r.Type + " " + r.Material
		if !containsString(byMaterial[k], r.Principal) {
			byMaterial[k] = append(byMaterial[k], r.Principal)
		}
	}
	shared := make(map[string][]string)
	for material, principals := range byMaterial {
		if len(principals) > 1 {
			shared[material] = principals
		}
	}
	return shared
}

func containsString(list []string, s string) bool {
	for _, have := range list {
		if have == s {
			return true
		}
	}
	return false
}

func mergeOrigins(a, b []Origin) []Origin {
	merged := append([]Origin{}, a...)
	for _, o := range b {
		found := false
		for _, have := range merged {
			if have == o {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, o)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	return merged
}
