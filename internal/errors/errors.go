package errors

import "errors"

// Source errors indicate a key source could not be consumed.
var (
	// ErrSourceUnavailable indicates a required key source could not be
	// reached or read. Fatal for the current target.
	ErrSourceUnavailable = errors.New("key source unavailable")

	// ErrNoGithubRemote indicates the GitHub repository could not be
	// determined from a local checkout's origin remote.
	ErrNoGithubRemote = errors.New("no GitHub remote found in local checkout")

	// ErrNoPrincipals indicates aggregation finished without collecting
	// a single key record.
	ErrNoPrincipals = errors.New("no keys collected from any source")
)

// Conversion errors indicate a key could not be converted.
var (
	// ErrUnsupportedKeyType indicates the key type has no defined
	// mapping to the target encryption key type. The record is skipped
	// with a warning; a mixed key set is expected.
	ErrUnsupportedKeyType = errors.New("no conversion defined for key type")

	// ErrInvalidKeyMaterial indicates the key material could not be
	// decoded as a public key of its declared type.
	ErrInvalidKeyMaterial = errors.New("invalid key material")
)

// Document errors indicate issues with policy document files.
var (
	// ErrDocumentParse indicates an existing policy document could not
	// be parsed. Fatal for that single file; a bulk refresh continues
	// with the remaining files.
	ErrDocumentParse = errors.New("policy document could not be parsed")

	// ErrUnknownFormat indicates an unrecognized output format name.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrNotConverted indicates a format that requires age recipients
	// was asked to render unconverted key records.
	ErrNotConverted = errors.New("key set contains unconverted records")
)
