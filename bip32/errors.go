package bip32

import "github.com/pkg/errors"

var (
	// ErrInvalidSeedLength is returned by NewMaster for seeds outside the
	// 16-64 byte range BIP-32 allows.
	ErrInvalidSeedLength = errors.New("seed must be between 16 and 64 bytes")

	// ErrDeriveHardenedFromPublic is returned when a hardened child is
	// requested from a neutered (public-only) key.
	ErrDeriveHardenedFromPublic = errors.New("cannot derive a hardened child from a public key")

	// ErrUnusableChild is returned when the HMAC left half is not a usable
	// scalar (zero, or not below the group order). BIP-32 callers should skip
	// to the next index.
	ErrUnusableChild = errors.New("child index produced an unusable key, use the next index")

	// ErrUnusableSeed is the master-key analogue of ErrUnusableChild.
	ErrUnusableSeed = errors.New("seed produced an unusable master key")

	// ErrInvalidKey is returned when deserializing a malformed extended key
	// or WIF string.
	ErrInvalidKey = errors.New("invalid key encoding")

	// ErrInvalidPath is returned for malformed derivation path strings.
	ErrInvalidPath = errors.New("invalid derivation path")
)
