package format

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

// Kind selects an output representation for a key set.
type Kind string

const (
	// AuthorizedKeys renders one `<type> <material> <principal>` line
	// per record, byte-compatible with an authorized_keys consumer.
	AuthorizedKeys Kind = "authorized_keys"

	// List renders a machine-parsable YAML listing of
	// {principal, type, material} triples.
	List Kind = "list"

	// Age renders bare age recipients, one per line. Requires a
	// converted set.
	Age Kind = "age"

	// Sops renders the policy fragment spliced into a document's
	// management region: `- <recipient> # <principal>` entries.
	// Requires a converted set.
	Sops Kind = "sops"
)

// Kinds lists the accepted format names for flag help and validation.
func Kinds() []string {
	return []string{string(AuthorizedKeys), string(List), string(Age), string(Sops)}
}

// Parse validates a format name from the command line.
func Parse(name string) (Kind, error) {
	switch Kind(name) {
	case AuthorizedKeys, List, Age, Sops:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of %s)",
			kerrors.ErrUnknownFormat, name, strings.Join(Kinds(), ", "))
	}
}

// NeedsConversion reports whether the format renders age recipients and
// therefore needs the key set converted first.
func (k Kind) NeedsConversion() bool {
	return k == Age || k == Sops
}

// listEntry is the YAML shape of one record in the List format.
type listEntry struct {
	Principal string `yaml:"principal"`
	Type      string `yaml:"type"`
	Material  string `yaml:"material"`
}

// Render produces the textual representation of the set. It is a pure
// function of its inputs: the set is never mutated and identical inputs
// produce byte-identical text.
func Render(set keys.Set, kind Kind) (string, error) {
	switch kind {
	case AuthorizedKeys:
		var b strings.Builder
		for _, rec := range set {
			fmt.Fprintf(&b, "%s %s %s\n", rec.Type, rec.Material, rec.Principal)
		}
		return b.String(), nil

	case List:
		entries := make([]listEntry, 0, len(set))
		for _, rec := range set {
			entries = append(entries, listEntry{
				Principal: rec.Principal,
				Type:      rec.Type,
				Material:  rec.Material,
			})
		}
		out, err := yaml.Marshal(entries)
		if err != nil {
			return "", fmt.Errorf("marshaling key listing: %w", err)
		}
		return string(out), nil

	case Age:
		if err := requireConverted(set); err != nil {
			return "", err
		}
		var b strings.Builder
		for _, rec := range set {
			b.WriteString(rec.Material)
			b.WriteString("\n")
		}
		return b.String(), nil

	case Sops:
		if err := requireConverted(set); err != nil {
			return "", err
		}
		var b strings.Builder
		for _, rec := range set {
			fmt.Fprintf(&b, "- %s # %s\n", rec.Material, rec.Principal)
		}
		return b.String(), nil

	default:
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnknownFormat, kind)
	}
}

func requireConverted(set keys.Set) error {
	for _, rec := range set {
		if rec.Type != keys.TypeAge {
			return fmt.Errorf("%w: %s key for %s", kerrors.ErrNotConverted, rec.Type, rec.Principal)
		}
	}
	return nil
}
