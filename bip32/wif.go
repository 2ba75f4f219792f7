package bip32

import (
	"github.com/keyfold/keyfold/base58"
	"github.com/keyfold/keyfold/util"
	"github.com/pkg/errors"
)

// WIF network version bytes.
const (
	WIFVersionMainnet byte = 0x80
	WIFVersionTestnet byte = 0xef
)

// EncodeWIF serializes a 32-byte private key in wallet import format:
// version byte, key, an optional 0x01 marker when the corresponding public
// key is compressed, and a four byte double-SHA-256 checksum, Base58 encoded.
func EncodeWIF(privateKey []byte, version byte, compressed bool) (string, error) {
	if len(privateKey) != 32 {
		return "", errors.Wrapf(ErrInvalidKey, "private key must be 32 bytes, got %d", len(privateKey))
	}
	if !validateScalar(privateKey) {
		return "", errors.Wrap(ErrInvalidKey, "private key out of range")
	}
	payload := make([]byte, 0, 33)
	payload = append(payload, privateKey...)
	if compressed {
		payload = append(payload, 0x01)
	}
	defer util.ZeroBytes(payload)
	return base58.CheckEncode(payload, version), nil
}

// DecodeWIF reverses EncodeWIF, verifying the checksum and length.
func DecodeWIF(encoded string) (privateKey []byte, version byte, compressed bool, err error) {
	payload, version, err := base58.CheckDecode(encoded)
	if err != nil {
		return nil, 0, false, errors.Wrap(ErrInvalidKey, err.Error())
	}
	switch len(payload) {
	case 32:
	case 33:
		if payload[32] != 0x01 {
			return nil, 0, false, errors.Wrapf(ErrInvalidKey,
				"compression marker %#x", payload[32])
		}
		compressed = true
	default:
		return nil, 0, false, errors.Wrapf(ErrInvalidKey, "payload length %d", len(payload))
	}
	if !validateScalar(payload[:32]) {
		return nil, 0, false, errors.Wrap(ErrInvalidKey, "private key out of range")
	}
	return append([]byte(nil), payload[:32]...), version, compressed, nil
}
