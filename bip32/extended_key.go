// Package bip32 implements BIP-32 hierarchical-deterministic keys: master
// key generation from a seed, hardened and normal child derivation, neutered
// public keys, path traversal and the xprv/xpub wire encoding.
package bip32

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/keyfold/keyfold/base58"
	"github.com/keyfold/keyfold/bigint"
	"github.com/keyfold/keyfold/curve"
	"github.com/keyfold/keyfold/field"
	"github.com/keyfold/keyfold/util"
	"github.com/pkg/errors"
)

// HardenedIndexStart marks the first hardened child index; the high bit of a
// child number is set iff the child was derived hardened.
const HardenedIndexStart = 0x80000000

const (
	versionLen     = 4
	depthLen       = 1
	fingerprintLen = 4
	childNumberLen = 4
	chainCodeLen   = 32
	keyLen         = 33
	checksumLen    = 4

	serializedLen = versionLen + depthLen + fingerprintLen + childNumberLen +
		chainCodeLen + keyLen + checksumLen
)

// Serialization version bytes for the supported networks.
var (
	BitcoinMainnetPrivate = [4]byte{0x04, 0x88, 0xad, 0xe4} // xprv
	BitcoinMainnetPublic  = [4]byte{0x04, 0x88, 0xb2, 0x1e} // xpub
	BitcoinTestnetPrivate = [4]byte{0x04, 0x35, 0x83, 0x94} // tprv
	BitcoinTestnetPublic  = [4]byte{0x04, 0x35, 0x87, 0xcf} // tpub
)

// ExtendedKey is one node of a BIP-32 key tree. A key holding private-key
// material can derive any child and be neutered into a public key; a
// public-only key derives normal children only. Immutable once constructed.
type ExtendedKey struct {
	privateKey []byte // 32 bytes, nil for public-only keys
	publicKey  []byte // 33-byte compressed form, always set

	Version           [4]byte
	Depth             uint8
	ParentFingerprint [4]byte
	ChildNumber       uint32
	ChainCode         [32]byte
}

var backend curve.Backend = curve.Secp256k1{}

var scalarField = field.New(field.Secp256k1Order())

// validateScalar reports whether a 32-byte HMAC half is a usable private
// key: non-zero and strictly below the group order.
func validateScalar(scalar []byte) bool {
	value := bigint.FromBytes(scalar)
	return !value.IsZero() && value.Cmp(field.Secp256k1Order()) < 0
}

// NewMaster derives the root of a key tree from a seed: HMAC-SHA512 keyed
// with "Bitcoin seed", left half the master key, right half the chain code.
func NewMaster(seed []byte, version [4]byte) (*ExtendedKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, errors.Wrapf(ErrInvalidSeedLength, "got %d bytes", len(seed))
	}

	mac := newHMACWriter([]byte("Bitcoin seed"))
	mac.InfallibleWrite(seed)
	digest := mac.Sum(nil)
	defer util.ZeroBytes(digest)

	if !validateScalar(digest[:32]) {
		return nil, ErrUnusableSeed
	}

	key := &ExtendedKey{
		privateKey: append([]byte(nil), digest[:32]...),
		Version:    version,
	}
	copy(key.ChainCode[:], digest[32:])

	publicKey, err := backend.PublicKey(key.privateKey, true)
	if err != nil {
		return nil, errors.Wrap(err, "deriving master public key")
	}
	key.publicKey = publicKey
	return key, nil
}

// IsPrivate reports whether the key carries private-key material.
func (key *ExtendedKey) IsPrivate() bool {
	return key.privateKey != nil
}

// Hardened reports whether this key was derived through a hardened index.
func (key *ExtendedKey) Hardened() bool {
	return key.ChildNumber >= HardenedIndexStart
}

// PrivateKeyBytes returns a copy of the 32-byte private scalar. The caller
// owns the copy and should zero it after use.
func (key *ExtendedKey) PrivateKeyBytes() ([]byte, error) {
	if !key.IsPrivate() {
		return nil, errors.Wrap(ErrInvalidKey, "key is public-only")
	}
	return append([]byte(nil), key.privateKey...), nil
}

// PublicKeyBytes returns the 33-byte compressed public key.
func (key *ExtendedKey) PublicKeyBytes() []byte {
	return append([]byte(nil), key.publicKey...)
}

// UncompressedPublicKeyBytes returns the 65-byte uncompressed public key.
func (key *ExtendedKey) UncompressedPublicKeyBytes() ([]byte, error) {
	if key.IsPrivate() {
		return backend.PublicKey(key.privateKey, false)
	}
	return curve.DecompressPublicKey(key.publicKey)
}

// Fingerprint returns the first four bytes of hash160 of the compressed
// public key.
func (key *ExtendedKey) Fingerprint() [4]byte {
	var fingerprint [4]byte
	copy(fingerprint[:], util.Hash160(key.publicKey))
	return fingerprint
}

// Child derives the i'th child. Hardened indexes mix in the parent private
// key and therefore fail on public-only parents.
func (key *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	hardened := i >= HardenedIndexStart
	if hardened && !key.IsPrivate() {
		return nil, ErrDeriveHardenedFromPublic
	}

	mac := newHMACWriter(key.ChainCode[:])
	if hardened {
		mac.InfallibleWrite([]byte{0x00})
		mac.InfallibleWrite(key.privateKey)
	} else {
		mac.InfallibleWrite(key.publicKey)
	}
	mac.InfallibleWrite(serializeUint32(i))
	digest := mac.Sum(nil)
	defer util.ZeroBytes(digest)

	if !validateScalar(digest[:32]) {
		return nil, errors.Wrapf(ErrUnusableChild, "index %d", i)
	}

	child := &ExtendedKey{
		Version:           key.Version,
		Depth:             key.Depth + 1,
		ParentFingerprint: key.Fingerprint(),
		ChildNumber:       i,
	}
	copy(child.ChainCode[:], digest[32:])

	if key.IsPrivate() {
		childScalar := scalarField.Add(
			bigint.FromBytes(digest[:32]),
			bigint.FromBytes(key.privateKey),
		)
		if childScalar.IsZero() {
			return nil, errors.Wrapf(ErrUnusableChild, "index %d", i)
		}
		child.privateKey = childScalar.Bytes(32)

		publicKey, err := backend.PublicKey(child.privateKey, true)
		if err != nil {
			return nil, errors.Wrap(err, "deriving child public key")
		}
		child.publicKey = publicKey
		return child, nil
	}

	publicKey, err := backend.PublicKeyTweakAdd(key.publicKey, digest[:32])
	if err != nil {
		return nil, errors.Wrapf(ErrUnusableChild, "tweaking public key: %s", err)
	}
	child.publicKey = publicKey
	return child, nil
}

// Public returns the neutered form of the key: same position in the tree,
// private material dropped and the version flipped to the public variant.
func (key *ExtendedKey) Public() (*ExtendedKey, error) {
	version, err := toPublicVersion(key.Version)
	if err != nil {
		return nil, err
	}
	return &ExtendedKey{
		publicKey:         key.PublicKeyBytes(),
		Version:           version,
		Depth:             key.Depth,
		ParentFingerprint: key.ParentFingerprint,
		ChildNumber:       key.ChildNumber,
		ChainCode:         key.ChainCode,
	}, nil
}

func toPublicVersion(version [4]byte) ([4]byte, error) {
	switch version {
	case BitcoinMainnetPrivate, BitcoinMainnetPublic:
		return BitcoinMainnetPublic, nil
	case BitcoinTestnetPrivate, BitcoinTestnetPublic:
		return BitcoinTestnetPublic, nil
	}
	return [4]byte{}, errors.Wrapf(ErrInvalidKey, "unknown version %x", version)
}

// String serializes the key in the Base58 xprv/xpub format.
func (key *ExtendedKey) String() string {
	serialized := make([]byte, 0, serializedLen)
	serialized = append(serialized, key.Version[:]...)
	serialized = append(serialized, key.Depth)
	serialized = append(serialized, key.ParentFingerprint[:]...)
	serialized = append(serialized, serializeUint32(key.ChildNumber)...)
	serialized = append(serialized, key.ChainCode[:]...)
	if key.IsPrivate() {
		serialized = append(serialized, 0x00)
		serialized = append(serialized, key.privateKey...)
	} else {
		serialized = append(serialized, key.publicKey...)
	}
	serialized = append(serialized, util.DoubleHashB(serialized)[:checksumLen]...)
	return base58.Encode(serialized)
}

// Deserialize parses a Base58 xprv/xpub string, validating length, checksum
// and key material.
func Deserialize(encoded string) (*ExtendedKey, error) {
	serialized, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	if len(serialized) != serializedLen {
		return nil, errors.Wrapf(ErrInvalidKey, "length %d, want %d", len(serialized), serializedLen)
	}

	payload := serialized[:serializedLen-checksumLen]
	checksum := serialized[serializedLen-checksumLen:]
	if subtle.ConstantTimeCompare(checksum, util.DoubleHashB(payload)[:checksumLen]) != 1 {
		return nil, errors.Wrap(ErrInvalidKey, "checksum mismatch")
	}

	key := &ExtendedKey{}
	copy(key.Version[:], payload[:versionLen])
	key.Depth = payload[versionLen]
	copy(key.ParentFingerprint[:], payload[versionLen+depthLen:])
	key.ChildNumber = binary.BigEndian.Uint32(payload[versionLen+depthLen+fingerprintLen:])
	copy(key.ChainCode[:], payload[versionLen+depthLen+fingerprintLen+childNumberLen:])

	keyMaterial := payload[versionLen+depthLen+fingerprintLen+childNumberLen+chainCodeLen:]
	switch keyMaterial[0] {
	case 0x00:
		if !validateScalar(keyMaterial[1:]) {
			return nil, errors.Wrap(ErrInvalidKey, "private key out of range")
		}
		key.privateKey = append([]byte(nil), keyMaterial[1:]...)
		publicKey, err := backend.PublicKey(key.privateKey, true)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKey, err.Error())
		}
		key.publicKey = publicKey
	case 0x02, 0x03:
		if _, err := curve.DecompressPublicKey(keyMaterial); err != nil {
			return nil, errors.Wrap(ErrInvalidKey, err.Error())
		}
		key.publicKey = append([]byte(nil), keyMaterial...)
	default:
		return nil, errors.Wrapf(ErrInvalidKey, "key prefix %#x", keyMaterial[0])
	}
	return key, nil
}

// Zero wipes the private-key material in place. The key must not be used
// afterwards.
func (key *ExtendedKey) Zero() {
	util.ZeroBytes(key.privateKey)
	util.ZeroBytes(key.ChainCode[:])
	key.privateKey = nil
}

func serializeUint32(v uint32) []byte {
	serialized := make([]byte, 4)
	binary.BigEndian.PutUint32(serialized, v)
	return serialized
}
