// Package address renders public keys as payment addresses for the
// supported chains.
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/base58"
	"github.com/keyfold/keyfold/bech32"
	"github.com/keyfold/keyfold/curve"
	"github.com/keyfold/keyfold/keccak"
	"github.com/keyfold/keyfold/util"
)

// P2PKH version bytes.
const (
	BitcoinMainnetP2PKH byte = 0x00
	BitcoinTestnetP2PKH byte = 0x6f
)

// Human readable parts for segwit addresses.
const (
	BitcoinMainnetHRP = "bc"
	BitcoinTestnetHRP = "tb"
)

// ErrInvalidPublicKey is returned when a public key has the wrong length
// or prefix for the requested address type.
var ErrInvalidPublicKey = errors.New("invalid public key")

// ErrInvalidAddress is returned when an address string fails to parse.
var ErrInvalidAddress = errors.New("invalid address")

// P2PKH returns the Base58Check pay-to-pubkey-hash address of a compressed
// or uncompressed SEC public key.
func P2PKH(publicKey []byte, version byte) (string, error) {
	if err := validateSECKey(publicKey); err != nil {
		return "", err
	}
	return base58.CheckEncode(util.Hash160(publicKey), version), nil
}

// DecodeP2PKH parses a Base58Check address and returns its 20-byte public
// key hash and version byte.
func DecodeP2PKH(address string) (hash []byte, version byte, err error) {
	hash, version, err = base58.CheckDecode(address)
	if err != nil {
		return nil, 0, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	if len(hash) != 20 {
		return nil, 0, errors.Wrapf(ErrInvalidAddress, "payload length %d, want 20", len(hash))
	}
	return hash, version, nil
}

// P2WPKH returns the version 0 native segwit address of a compressed
// public key. Uncompressed keys are rejected since witness programs commit
// to the hash of the compressed form only.
func P2WPKH(publicKey []byte, hrp string) (string, error) {
	if len(publicKey) != curve.CompressedPublicKeyLen {
		return "", errors.Wrapf(ErrInvalidPublicKey,
			"witness addresses need a compressed key, got %d bytes", len(publicKey))
	}
	if err := validateSECKey(publicKey); err != nil {
		return "", err
	}
	return bech32.EncodeSegWitAddress(hrp, 0, util.Hash160(publicKey))
}

// P2WSH returns the version 0 native segwit address committing to the
// SHA-256 of a witness script.
func P2WSH(witnessScript []byte, hrp string) (string, error) {
	scriptHash := sha256.Sum256(witnessScript)
	return bech32.EncodeSegWitAddress(hrp, 0, scriptHash[:])
}

// Ethereum returns the EIP-55 checksummed address of a public key. Both
// compressed and uncompressed keys are accepted; compressed keys are
// expanded first since the address hashes the full 64-byte point body.
func Ethereum(publicKey []byte) (string, error) {
	uncompressed, err := uncompressedBody(publicKey)
	if err != nil {
		return "", err
	}
	digest := keccak.Sum256(uncompressed)
	return checksumHex(digest[12:]), nil
}

// ValidateEthereum checks an 0x-prefixed Ethereum address. All-lowercase
// and all-uppercase addresses pass without a checksum; mixed-case ones must
// carry a valid EIP-55 checksum.
func ValidateEthereum(address string) error {
	if !strings.HasPrefix(address, "0x") || len(address) != 42 {
		return errors.Wrapf(ErrInvalidAddress, "%q", address)
	}
	body := address[2:]
	raw, err := hex.DecodeString(body)
	if err != nil {
		return errors.Wrapf(ErrInvalidAddress, "%q", address)
	}
	lower := strings.ToLower(body)
	if body == lower || body == strings.ToUpper(lower) {
		return nil
	}
	if checksumHex(raw) != address {
		return errors.Wrapf(ErrInvalidAddress, "%q fails the case checksum", address)
	}
	return nil
}

// checksumHex applies EIP-55 casing: each hex letter is uppercased when the
// corresponding nibble of the Keccak-256 hash of the lowercase hex string
// is 8 or above.
func checksumHex(raw []byte) string {
	lower := hex.EncodeToString(raw)
	digest := keccak.Sum256([]byte(lower))
	var builder strings.Builder
	builder.WriteString("0x")
	for i, character := range []byte(lower) {
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if character >= 'a' && nibble >= 8 {
			character -= 'a' - 'A'
		}
		builder.WriteByte(character)
	}
	return builder.String()
}

func validateSECKey(publicKey []byte) error {
	switch len(publicKey) {
	case curve.CompressedPublicKeyLen:
		if publicKey[0] != 0x02 && publicKey[0] != 0x03 {
			return errors.Wrapf(ErrInvalidPublicKey, "compressed key prefix %#x", publicKey[0])
		}
	case curve.UncompressedPublicKeyLen:
		if publicKey[0] != 0x04 {
			return errors.Wrapf(ErrInvalidPublicKey, "uncompressed key prefix %#x", publicKey[0])
		}
	default:
		return errors.Wrapf(ErrInvalidPublicKey, "length %d", len(publicKey))
	}
	return nil
}

// uncompressedBody returns the 64-byte X||Y point body of a public key,
// decompressing when needed.
func uncompressedBody(publicKey []byte) ([]byte, error) {
	switch len(publicKey) {
	case curve.UncompressedPublicKeyLen:
		if publicKey[0] != 0x04 {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "uncompressed key prefix %#x", publicKey[0])
		}
		return publicKey[1:], nil
	case curve.CompressedPublicKeyLen:
		uncompressed, err := curve.DecompressPublicKey(publicKey)
		if err != nil {
			return nil, err
		}
		return uncompressed[1:], nil
	default:
		return nil, errors.Wrapf(ErrInvalidPublicKey, "length %d", len(publicKey))
	}
}
