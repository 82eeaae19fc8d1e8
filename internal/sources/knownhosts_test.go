package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"keysmith/internal/keys"
)

const hostKeyLine = "github.example.com ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIO1JKMYo0cLG6ukDOJBZlWEpWSc6XGP5NjbBRhSshzfR\n"

func TestKnownHostsParsesHostEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_hosts")
	content := hostKeyLine +
		"# a comment line\n" +
		"\n" +
		"other.example.com,10.0.0.4 ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIO1JKMYo0cLG6ukDOJBZlWEpWSc6XGP5NjbBRhSshzfR\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	src := &KnownHosts{Path: path}
	records, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}

	first := records[0]
	if first.Principal != "github.example.com" {
		t.Errorf("principal = %s", first.Principal)
	}
	if first.Type != keys.TypeEd25519 {
		t.Errorf("type = %s", first.Type)
	}
	if first.Material != "AAAAC3NzaC1lZDI1NTE5AAAAIO1JKMYo0cLG6ukDOJBZlWEpWSc6XGP5NjbBRhSshzfR" {
		t.Errorf("material = %s", first.Material)
	}
	if len(first.Origins) != 1 || first.Origins[0] != keys.OriginKnownHosts {
		t.Errorf("origins = %v", first.Origins)
	}

	// Multi-pattern entries take the first host pattern as principal.
	if records[1].Principal != "other.example.com" {
		t.Errorf("principal = %s", records[1].Principal)
	}
}

func TestKnownHostsMissingFileErrors(t *testing.T) {
	src := &KnownHosts{Path: filepath.Join(t.TempDir(), "nope")}
	if _, err := src.Records(context.Background()); err == nil {
		t.Error("expected an error for a missing file")
	}
	if !src.Optional() {
		t.Error("a known-hosts file should be an optional source")
	}
}

type countingSource struct {
	calls   int
	records []keys.Record
}

func (c *countingSource) Name() string   { return "counting" }
func (c *countingSource) Optional() bool { return false }
func (c *countingSource) Records(ctx context.Context) ([]keys.Record, error) {
	c.calls++
	return c.records, nil
}

func TestCachedDrainsWrappedSourceOnce(t *testing.T) {
	inner := &countingSource{records: []keys.Record{
		{Principal: "alice", Type: keys.TypeEd25519, Material: "AAAAC3alice", Origins: []keys.Origin{keys.OriginGithubUser}},
	}}
	cached := NewCached(inner)

	for i := 0; i < 3; i++ {
		records, err := cached.Records(context.Background())
		if err != nil {
			t.Fatalf("Records() error = %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
	}
	if inner.calls != 1 {
		t.Errorf("wrapped source drained %d times, want 1", inner.calls)
	}
	if cached.Name() != "counting" {
		t.Errorf("Name() = %s", cached.Name())
	}
}
