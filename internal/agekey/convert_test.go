package agekey

import (
	"errors"
	"reflect"
	"testing"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

// Fixed ssh-ed25519 keys and their corresponding age recipients,
// cross-checked against the X25519 scalar derivation of the same seeds.
const (
	aliceMaterial  = "AAAAC3NzaC1lZDI1NTE5AAAAIIqI4910CfGV/VLbLTy6XXLKZwm/HZQSG/N0iAG0D29c"
	aliceRecipient = "age1rvd43h2sag2tvrdp0duse5p82nvhpjd6hpjwhv7q7vqklega8atsjue2se"

	bobMaterial  = "AAAAC3NzaC1lZDI1NTE5AAAAIIE5dw6ofRdfVqNUZsNMfszLjYqRtO43ol32D1uPybOU"
	bobRecipient = "age1vq6xuly3rf0khg25z2ghfjh7wkefftpmh425jce0fr8vvfn0ssgqxcurjy"
)

func TestRecipientGoldenVector(t *testing.T) {
	got, err := Recipient(aliceMaterial)
	if err != nil {
		t.Fatalf("Recipient() error = %v", err)
	}
	if got != aliceRecipient {
		t.Errorf("Recipient() = %s, want %s", got, aliceRecipient)
	}
}

func TestRecipientIsDeterministic(t *testing.T) {
	first, err := Recipient(bobMaterial)
	if err != nil {
		t.Fatalf("Recipient() error = %v", err)
	}
	second, err := Recipient(bobMaterial)
	if err != nil {
		t.Fatalf("Recipient() error = %v", err)
	}
	if first != second || first != bobRecipient {
		t.Errorf("Recipient() not deterministic: %s vs %s (want %s)", first, second, bobRecipient)
	}
}

func TestRecipientRejectsGarbage(t *testing.T) {
	if _, err := Recipient("not base64!!"); !errors.Is(err, kerrors.ErrInvalidKeyMaterial) {
		t.Errorf("error = %v, want ErrInvalidKeyMaterial", err)
	}
	if _, err := Recipient("AAAA"); !errors.Is(err, kerrors.ErrInvalidKeyMaterial) {
		t.Errorf("error = %v, want ErrInvalidKeyMaterial", err)
	}
}

func TestConvertRecordKeepsPrincipalAndOrigins(t *testing.T) {
	rec := keys.Record{
		Principal: "alice",
		Type:      keys.TypeEd25519,
		Material:  aliceMaterial,
		Origins:   []keys.Origin{keys.OriginGithubUser, keys.OriginKnownHosts},
	}

	converted, err := ConvertRecord(rec)
	if err != nil {
		t.Fatalf("ConvertRecord() error = %v", err)
	}
	if converted.Principal != "alice" {
		t.Errorf("principal changed to %s", converted.Principal)
	}
	if !reflect.DeepEqual(converted.Origins, rec.Origins) {
		t.Errorf("origins changed to %v", converted.Origins)
	}
	if converted.Type != keys.TypeAge {
		t.Errorf("type = %s, want %s", converted.Type, keys.TypeAge)
	}
	if converted.Material != aliceRecipient {
		t.Errorf("material = %s, want %s", converted.Material, aliceRecipient)
	}
}

func TestConvertRecordRejectsUnsupportedTypes(t *testing.T) {
	rec := keys.Record{
		Principal: "alice",
		Type:      keys.TypeRSA,
		Material:  "AAAAB3NzaC1yc2EAAAADAQABAAABAQ",
		Origins:   []keys.Origin{keys.OriginGithubUser},
	}
	if _, err := ConvertRecord(rec); !errors.Is(err, kerrors.ErrUnsupportedKeyType) {
		t.Errorf("error = %v, want ErrUnsupportedKeyType", err)
	}
}

func TestConvertSetSkipsUnsupportedRecords(t *testing.T) {
	set := keys.Set{
		{Principal: "alice", Type: keys.TypeEd25519, Material: aliceMaterial, Origins: []keys.Origin{keys.OriginGithubUser}},
		{Principal: "legacy", Type: keys.TypeRSA, Material: "AAAAB3NzaC1yc2E", Origins: []keys.Origin{keys.OriginGithubUser}},
		{Principal: "bob", Type: keys.TypeEd25519, Material: bobMaterial, Origins: []keys.Origin{keys.OriginGithubUser}},
	}

	converted, skipped := ConvertSet(set)
	if len(converted) != 2 {
		t.Fatalf("expected 2 converted records, got %d", len(converted))
	}
	if len(skipped) != 1 || !errors.Is(skipped[0], kerrors.ErrUnsupportedKeyType) {
		t.Fatalf("expected one unsupported-type skip, got %v", skipped)
	}
	if converted[0].Material != aliceRecipient || converted[1].Material != bobRecipient {
		t.Errorf("converted materials = %s, %s", converted[0].Material, converted[1].Material)
	}
}
