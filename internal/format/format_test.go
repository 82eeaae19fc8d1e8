package format

import (
	"errors"
	"strings"
	"testing"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

func sshSet() keys.Set {
	return keys.Set{
		{Principal: "alice", Type: keys.TypeEd25519, Material: "AAAAC3alice", Origins: []keys.Origin{keys.OriginGithubUser}},
		{Principal: "bob", Type: keys.TypeRSA, Material: "AAAAB3bob", Origins: []keys.Origin{keys.OriginGithubUser}},
	}
}

func ageSet() keys.Set {
	return keys.Set{
		{Principal: "alice", Type: keys.TypeAge, Material: "age1alicealicealice", Origins: []keys.Origin{keys.OriginGithubUser}},
		{Principal: "bob", Type: keys.TypeAge, Material: "age1bobbobbobbobbob", Origins: []keys.Origin{keys.OriginGithubUser}},
	}
}

func TestParseAcceptsEveryKind(t *testing.T) {
	for _, name := range Kinds() {
		kind, err := Parse(name)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", name, err)
		}
		if string(kind) != name {
			t.Errorf("Parse(%q) = %q", name, kind)
		}
	}
}

func TestParseRejectsUnknownName(t *testing.T) {
	if _, err := Parse("json"); !errors.Is(err, kerrors.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestRenderAuthorizedKeys(t *testing.T) {
	out, err := Render(sshSet(), AuthorizedKeys)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "ssh-ed25519 AAAAC3alice alice\nssh-rsa AAAAB3bob bob\n"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestRenderList(t *testing.T) {
	out, err := Render(sshSet(), List)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, fragment := range []string{"principal: alice", "type: ssh-ed25519", "material: AAAAC3alice", "principal: bob"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("listing missing %q:\n%s", fragment, out)
		}
	}
}

func TestRenderAge(t *testing.T) {
	out, err := Render(ageSet(), Age)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "age1alicealicealice\nage1bobbobbobbobbob\n"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestRenderSops(t *testing.T) {
	out, err := Render(ageSet(), Sops)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "- age1alicealicealice # alice\n- age1bobbobbobbobbob # bob\n"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestRenderConversionFormatsRejectUnconvertedSets(t *testing.T) {
	for _, kind := range []Kind{Age, Sops} {
		if _, err := Render(sshSet(), kind); !errors.Is(err, kerrors.ErrNotConverted) {
			t.Errorf("Render(%s) error = %v, want ErrNotConverted", kind, err)
		}
	}
}

func TestRenderIsByteStable(t *testing.T) {
	set := sshSet()
	for _, kind := range []Kind{AuthorizedKeys, List} {
		first, err := Render(set, kind)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", kind, err)
		}
		second, err := Render(set, kind)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", kind, err)
		}
		if first != second {
			t.Errorf("Render(%s) not byte-stable", kind)
		}
	}
}

func TestRenderEmptySet(t *testing.T) {
	out, err := Render(keys.Set{}, AuthorizedKeys)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "" {
		t.Errorf("Render() = %q, want empty", out)
	}
}
