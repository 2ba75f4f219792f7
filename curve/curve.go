// Package curve defines the elliptic-curve capability the key-derivation
// engine requires and provides a secp256k1 implementation of it. The engine
// itself never touches curve internals; chain-specific signers pick a Backend
// and hand it to the derivation and signing layers.
package curve

import "github.com/pkg/errors"

// Byte lengths of the fixed-size values crossing the Backend boundary.
const (
	PrivateKeyLen            = 32
	CompressedPublicKeyLen   = 33
	UncompressedPublicKeyLen = 65
	SignatureLen             = 64
	RecoverableSignatureLen  = 65
)

var (
	// ErrInvalidPrivateKey is returned for scalars that are zero, not 32
	// bytes, or not below the group order.
	ErrInvalidPrivateKey = errors.New("invalid private key scalar")

	// ErrInvalidPublicKey is returned for byte sequences that do not parse as
	// a point on the curve.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidSignature is returned for malformed signature encodings.
	ErrInvalidSignature = errors.New("invalid signature encoding")
)

// Backend is the set of curve operations the wallet engine consumes: key
// derivation for BIP-32, deterministic ECDSA for transaction signing,
// recoverable signatures for Ethereum-style v values, and scalar arithmetic
// modulo the group order for child-key and threshold workflows.
// Implementations must be constant time with respect to private-key scalars.
type Backend interface {
	// PublicKey derives the public key of a 32-byte private scalar,
	// serialized compressed (33 bytes, 0x02/0x03 prefix) or uncompressed
	// (65 bytes, 0x04 prefix).
	PublicKey(privateKey []byte, compressed bool) ([]byte, error)

	// Sign produces a deterministic (RFC 6979) ECDSA signature over a 32-byte
	// digest, as 64 compact bytes r||s.
	Sign(privateKey, digest []byte) ([]byte, error)

	// Verify reports whether signature (64 bytes r||s) is valid for digest
	// under publicKey (compressed or uncompressed).
	Verify(publicKey, digest, signature []byte) bool

	// SignRecoverable produces a 65-byte r||s||v signature whose recovery id
	// v comes from the sign step itself, not from trial recovery.
	SignRecoverable(privateKey, digest []byte) ([]byte, error)

	// RecoverPublicKey reconstructs the compressed public key that produced a
	// recoverable signature over digest.
	RecoverPublicKey(digest, signature []byte) ([]byte, error)

	// PublicKeyTweakAdd returns publicKey + scalar*G compressed, as needed
	// for deriving normal BIP-32 children from a public-only parent. It fails
	// when the result is the point at infinity.
	PublicKeyTweakAdd(publicKey, scalar []byte) ([]byte, error)

	// ScalarAdd returns (a + b) mod the group order, 32 bytes.
	ScalarAdd(a, b []byte) ([]byte, error)

	// ScalarNegate returns -a mod the group order, 32 bytes.
	ScalarNegate(a []byte) ([]byte, error)

	// ScalarMul returns (a * b) mod the group order, 32 bytes.
	ScalarMul(a, b []byte) ([]byte, error)
}
