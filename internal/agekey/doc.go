// Package agekey converts SSH signing keys into age encryption
// recipients.
//
// Ed25519 and X25519 use birationally equivalent curve representations,
// so an Ed25519 public key determines a unique X25519 public key. The
// conversion here is the same one performed by the ssh-to-age tool and
// by age's own SSH recipient support: decompress the edwards point, take
// its Montgomery u-coordinate, bech32-encode with the "age" prefix.
//
// Conversion is pure and deterministic: no network, no file access, and
// a given SSH key always yields the same recipient. Key types without a
// defined mapping (RSA, ECDSA) are rejected with ErrUnsupportedKeyType
// so callers can skip them and keep going.
package agekey
