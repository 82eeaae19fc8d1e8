package sopsfile

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

// ManagedTag is the substring that identifies the marker line of a
// document's management region. The marker survives refresh runs
// untouched, so hand-edits to its wording are preserved as long as the
// tag itself remains.
const ManagedTag = "managed by keysmith"

// markerComment is the canonical marker line written when a region is
// created from scratch.
const markerComment = "# Keys below are " + ManagedTag + "; annotated entries are rewritten on refresh"

// Entry is one principal-key binding in the management region.
type Entry struct {
	Recipient string
	Principal string
}

// EntriesFromSet builds the management-region entries from a converted
// key set, in set order.
func EntriesFromSet(set keys.Set) ([]Entry, error) {
	entries := make([]Entry, 0, len(set))
	for _, rec := range set {
		if rec.Type != keys.TypeAge {
			return nil, fmt.Errorf("%w: %s key for %s", kerrors.ErrNotConverted, rec.Type, rec.Principal)
		}
		entries = append(entries, Entry{Recipient: rec.Material, Principal: rec.Principal})
	}
	return entries, nil
}

// entryPattern matches one region line: `- <value>` with an optional
// trailing `# <principal>` annotation. Group 2 is the value, group 3
// the principal (empty for hand-authored entries).
var entryPattern = regexp.MustCompile(`^\s*- +(\S+)(?:\s+#\s*(\S.*?)\s*)?$`)

// Merge splices the fragment entries into an existing policy document,
// replacing only the management region and preserving every other byte.
//
// Semantics inside the region:
//   - entries carrying a principal annotation are owned by keysmith:
//     their key material is replaced, and entries for principals absent
//     from the fragment are pruned;
//   - entries without an annotation are hand-authored and kept verbatim
//     (those before the first owned entry keep their place ahead of the
//     block, the rest follow it);
//   - fragment principals not yet present are appended in fragment order.
//
// Merging the same fragment twice yields the same document, so a
// refresh against unchanged sources is a zero-diff operation.
//
// A nil or empty doc produces a minimal new document. A document that
// parses but has no marker line gets a fresh region appended at the end.
func Merge(doc []byte, entries []Entry) ([]byte, error) {
	if len(doc) == 0 {
		return NewDocument(entries), nil
	}

	var parsed yaml.Node
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDocumentParse, err)
	}

	lines := strings.Split(string(doc), "\n")

	marker := -1
	for i, line := range lines {
		if strings.Contains(line, ManagedTag) {
			marker = i
			break
		}
	}
	if marker == -1 {
		return appendRegion(doc, entries), nil
	}

	indent := leadingWhitespace(lines[marker])

	// The region is the run of sequence-entry lines directly under the
	// marker, at the marker's own indentation.
	end := marker + 1
	for end < len(lines) && isRegionLine(lines[end], indent) {
		end++
	}

	var head, tail []string
	seenOwned := false
	for _, line := range lines[marker+1 : end] {
		m := entryPattern.FindStringSubmatch(line)
		if m == nil || m[2] == "" {
			// Hand-authored entry, kept verbatim.
			if seenOwned {
				tail = append(tail, line)
			} else {
				head = append(head, line)
			}
			continue
		}
		seenOwned = true
	}

	region := make([]string, 0, len(head)+len(entries)+len(tail))
	region = append(region, head...)
	for _, e := range entries {
		region = append(region, formatEntry(indent, e))
	}
	region = append(region, tail...)

	merged := make([]string, 0, len(lines)-(end-marker-1)+len(region))
	merged = append(merged, lines[:marker+1]...)
	merged = append(merged, region...)
	merged = append(merged, lines[end:]...)
	return []byte(strings.Join(merged, "\n")), nil
}

// NewDocument builds a minimal policy document whose only content is
// the management region.
func NewDocument(entries []Entry) []byte {
	var b strings.Builder
	b.WriteString("creation_rules:\n")
	b.WriteString("  - key_groups:\n")
	b.WriteString("      - age:\n")
	indent := strings.Repeat(" ", 10)
	b.WriteString(indent + markerComment + "\n")
	for _, e := range entries {
		b.WriteString(formatEntry(indent, e) + "\n")
	}
	return []byte(b.String())
}

// appendRegion adds a fresh management region at the end of a document
// that has no marker yet, leaving the existing content untouched.
func appendRegion(doc []byte, entries []Entry) []byte {
	var b strings.Builder
	b.Write(doc)
	if len(doc) > 0 && doc[len(doc)-1] != '\n' {
		b.WriteString("\n")
	}
	b.WriteString(markerComment + "\n")
	for _, e := range entries {
		b.WriteString(formatEntry("", e) + "\n")
	}
	return []byte(b.String())
}

func formatEntry(indent string, e Entry) string {
	return indent + "- " + e.Recipient + " # " + e.Principal
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func isRegionLine(line, indent string) bool {
	if leadingWhitespace(line) != indent {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "- ")
}
