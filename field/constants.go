package field

import "github.com/keyfold/keyfold/bigint"

// Group-order and field-prime constants for the curves the wallet engine
// derives keys on. Callers construct the matching Field per chain, e.g.
// field.New(field.Secp256k1Order()) for BIP-32 scalar arithmetic.

// Secp256k1Order returns the order of the secp256k1 group.
func Secp256k1Order() bigint.Int {
	return bigint.MustFromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
}

// Secp256k1Prime returns the prime of the secp256k1 base field.
func Secp256k1Prime() bigint.Int {
	return bigint.MustFromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
}

// Ed25519Order returns the order of the ed25519 prime-order subgroup.
func Ed25519Order() bigint.Int {
	return bigint.MustFromHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")
}

// P256Order returns the order of the NIST P-256 group.
func P256Order() bigint.Int {
	return bigint.MustFromHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
}
