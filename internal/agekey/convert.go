package agekey

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/ssh"

	kerrors "keysmith/internal/errors"
	"keysmith/internal/keys"
)

// recipientHRP is the bech32 human-readable prefix of age recipients.
const recipientHRP = "age"

// ConvertRecord maps a record holding an ssh-ed25519 signing key to the
// equivalent record holding an age X25519 recipient. The principal and
// origins carry over unchanged; only Type and Material change.
//
// Records of any other type return an error wrapping
// ErrUnsupportedKeyType. Callers are expected to skip such records with
// a warning: a mixed key set is normal and partial coverage is fine.
func ConvertRecord(rec keys.Record) (keys.Record, error) {
	if rec.Type != keys.TypeEd25519 {
		return keys.Record{}, fmt.Errorf("%w: %s", kerrors.ErrUnsupportedKeyType, rec.Type)
	}

	recipient, err := Recipient(rec.Material)
	if err != nil {
		return keys.Record{}, fmt.Errorf("converting key for %s: %w", rec.Principal, err)
	}

	converted := rec
	converted.Type = keys.TypeAge
	converted.Material = recipient
	return converted, nil
}

// ConvertSet converts every record in the set, skipping records without
// a defined mapping. The returned errors describe each skipped record;
// the returned set stays in canonical order.
func ConvertSet(set keys.Set) (keys.Set, []error) {
	var converted keys.Set
	var skipped []error
	for _, rec := range set {
		out, err := ConvertRecord(rec)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		converted = append(converted, out)
	}
	return converted, skipped
}

// Recipient converts the base64 material of an ssh-ed25519 public key
// into an age recipient string ("age1...").
//
// An Ed25519 public key is a point on the edwards25519 curve; its
// birationally equivalent Montgomery u-coordinate is exactly the X25519
// public key age expects, bech32-encoded with the "age" prefix.
func Recipient(material string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(material)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyMaterial, err)
	}

	pub, err := ssh.ParsePublicKey(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyMaterial, err)
	}
	if pub.Type() != ssh.KeyAlgoED25519 {
		return "", fmt.Errorf("%w: %s", kerrors.ErrUnsupportedKeyType, pub.Type())
	}

	cryptoPub, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return "", fmt.Errorf("%w: key does not expose its crypto form", kerrors.ErrInvalidKeyMaterial)
	}
	edPub, ok := cryptoPub.CryptoPublicKey().(ed25519.PublicKey)
	if !ok {
		return "", fmt.Errorf("%w: not an ed25519 key", kerrors.ErrInvalidKeyMaterial)
	}

	point, err := new(edwards25519.Point).SetBytes(edPub)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyMaterial, err)
	}

	grouped, err := bech32.ConvertBits(point.BytesMontgomery(), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("encoding recipient: %w", err)
	}
	recipient, err := bech32.Encode(recipientHRP, grouped)
	if err != nil {
		return "", fmt.Errorf("encoding recipient: %w", err)
	}
	return recipient, nil
}
