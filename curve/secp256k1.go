package curve

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

// compactHeaderOffset is the base of the header byte SignCompact prepends:
// 27 plus 4 because we always recover against compressed keys.
const compactHeaderOffset = 27 + 4

// Secp256k1 implements Backend on the decred constant-time secp256k1
// library. The zero value is ready to use.
type Secp256k1 struct{}

var _ Backend = Secp256k1{}

func parsePrivateKey(privateKey []byte) (*secp256k1.PrivateKey, error) {
	if len(privateKey) != PrivateKeyLen {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "got %d bytes", len(privateKey))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(privateKey); overflow {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar exceeds the group order")
	}
	if scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "zero scalar")
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// PublicKey derives the serialized public key of privateKey.
func (Secp256k1) PublicKey(privateKey []byte, compressed bool) ([]byte, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	if compressed {
		return key.PubKey().SerializeCompressed(), nil
	}
	return key.PubKey().SerializeUncompressed(), nil
}

// Sign produces a 64-byte r||s RFC 6979 signature over a 32-byte digest.
func (s Secp256k1) Sign(privateKey, digest []byte) ([]byte, error) {
	recoverable, err := s.SignRecoverable(privateKey, digest)
	if err != nil {
		return nil, err
	}
	return recoverable[:SignatureLen], nil
}

// Verify checks a 64-byte r||s signature.
func (Secp256k1) Verify(publicKey, digest, signature []byte) bool {
	if len(signature) != SignatureLen {
		return false
	}
	key, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return false
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow {
		return false
	}
	return secpecdsa.NewSignature(&r, &s).Verify(digest, key)
}

// SignRecoverable produces r||s||v where v is the recovery id derived during
// signing from the parity and overflow of the ephemeral point.
func (Secp256k1) SignRecoverable(privateKey, digest []byte) ([]byte, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	// SignCompact lays the signature out header-first; rearrange to the
	// r||s||v layout the rest of the system expects.
	compact := secpecdsa.SignCompact(key, digest, true)
	recoverable := make([]byte, RecoverableSignatureLen)
	copy(recoverable, compact[1:])
	recoverable[SignatureLen] = compact[0] - compactHeaderOffset
	return recoverable, nil
}

// RecoverPublicKey reconstructs the compressed signer key from an r||s||v
// signature over digest.
func (Secp256k1) RecoverPublicKey(digest, signature []byte) ([]byte, error) {
	if len(signature) != RecoverableSignatureLen {
		return nil, errors.Wrapf(ErrInvalidSignature, "got %d bytes", len(signature))
	}
	recoveryID := signature[SignatureLen]
	if recoveryID > 3 {
		return nil, errors.Wrapf(ErrInvalidSignature, "recovery id %d", recoveryID)
	}
	compact := make([]byte, RecoverableSignatureLen)
	compact[0] = recoveryID + compactHeaderOffset
	copy(compact[1:], signature[:SignatureLen])

	key, _, err := secpecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, errors.Wrap(err, "recovering public key")
	}
	return key.SerializeCompressed(), nil
}

// PublicKeyTweakAdd returns publicKey + scalar*G in compressed form.
func (Secp256k1) PublicKeyTweakAdd(publicKey, scalar []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	tweak, err := parseScalar(scalar)
	if err != nil {
		return nil, err
	}

	var point, tweakPoint, sum secp256k1.JacobianPoint
	key.AsJacobian(&point)
	secp256k1.ScalarBaseMultNonConst(tweak, &tweakPoint)
	secp256k1.AddNonConst(&point, &tweakPoint, &sum)
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return nil, errors.Wrap(ErrInvalidPublicKey, "tweak produced the point at infinity")
	}
	sum.ToAffine()
	return secp256k1.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed(), nil
}

// DecompressPublicKey expands a 33-byte compressed public key to its 65-byte
// uncompressed form, validating that the point is on the curve.
func DecompressPublicKey(compressed []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	return key.SerializeUncompressed(), nil
}

func parseScalar(value []byte) (*secp256k1.ModNScalar, error) {
	if len(value) != PrivateKeyLen {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "scalar must be %d bytes, got %d",
			PrivateKeyLen, len(value))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(value); overflow {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar exceeds the group order")
	}
	return &scalar, nil
}

// ScalarAdd returns (a + b) mod the group order.
func (Secp256k1) ScalarAdd(a, b []byte) ([]byte, error) {
	left, err := parseScalar(a)
	if err != nil {
		return nil, err
	}
	right, err := parseScalar(b)
	if err != nil {
		return nil, err
	}
	sum := left.Add(right).Bytes()
	return sum[:], nil
}

// ScalarNegate returns -a mod the group order.
func (Secp256k1) ScalarNegate(a []byte) ([]byte, error) {
	scalar, err := parseScalar(a)
	if err != nil {
		return nil, err
	}
	negated := scalar.Negate().Bytes()
	return negated[:], nil
}

// ScalarMul returns (a * b) mod the group order.
func (Secp256k1) ScalarMul(a, b []byte) ([]byte, error) {
	left, err := parseScalar(a)
	if err != nil {
		return nil, err
	}
	right, err := parseScalar(b)
	if err != nil {
		return nil, err
	}
	product := left.Mul(right).Bytes()
	return product[:], nil
}
