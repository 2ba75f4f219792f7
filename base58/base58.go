// Package base58 implements Base58 and Base58Check encoding as used for
// Bitcoin-style addresses, WIF keys and extended-key serialization. The
// alphabet omits 0, O, I and l to avoid transcription mistakes.
package base58

import (
	"crypto/subtle"

	"github.com/keyfold/keyfold/bigint"
	"github.com/keyfold/keyfold/util"
	"github.com/pkg/errors"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const checksumLen = 4

var (
	// ErrChecksum is returned by CheckDecode when the payload does not match
	// its four checksum bytes.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrInvalidFormat is returned when the input is too short to carry a
	// version byte and a checksum.
	ErrInvalidFormat = errors.New("invalid format: version and/or checksum bytes missing")
)

// decodeTable maps an ASCII byte to its alphabet index, or 0xff for bytes
// outside the alphabet.
var decodeTable [256]byte

func init() {
	for i := range decodeTable {
		decodeTable[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = byte(i)
	}
}

// Encode encodes input as Base58. Each leading zero byte maps to exactly one
// leading '1' in the output.
func Encode(input []byte) string {
	leadingZeros := 0
	for leadingZeros < len(input) && input[leadingZeros] == 0 {
		leadingZeros++
	}

	value := bigint.FromBytes(input)
	radix := bigint.FromUint64(58)
	// Worst case one digit per ~5.8 bits plus the leading '1's.
	encoded := make([]byte, 0, leadingZeros+len(input)*2)
	for !value.IsZero() {
		var remainder bigint.Int
		value, remainder = value.DivMod(radix)
		encoded = append(encoded, alphabet[remainder.Uint64()])
	}
	for i := 0; i < leadingZeros; i++ {
		encoded = append(encoded, alphabet[0])
	}
	for i, j := 0, len(encoded)-1; i < j; i, j = i+1, j-1 {
		encoded[i], encoded[j] = encoded[j], encoded[i]
	}
	return string(encoded)
}

// Decode decodes a Base58 string, rejecting any character outside the
// alphabet with a typed error.
func Decode(input string) ([]byte, error) {
	leadingOnes := 0
	for leadingOnes < len(input) && input[leadingOnes] == alphabet[0] {
		leadingOnes++
	}

	value := bigint.Zero()
	radix := bigint.FromUint64(58)
	for i := 0; i < len(input); i++ {
		digit := decodeTable[input[i]]
		if digit == 0xff {
			return nil, errors.Errorf("invalid base58 character %q at offset %d", input[i], i)
		}
		value = value.Mul(radix).Add(bigint.FromUint64(uint64(digit)))
	}

	decoded := value.Bytes(0)
	result := make([]byte, leadingOnes+len(decoded))
	copy(result[leadingOnes:], decoded)
	return result, nil
}

// checksum returns the first four bytes of sha256(sha256(input)).
func checksum(input []byte) [checksumLen]byte {
	var sum [checksumLen]byte
	copy(sum[:], util.DoubleHashB(input))
	return sum
}

// CheckEncode prepends a version byte, appends a four byte checksum and
// encodes the result as Base58.
func CheckEncode(input []byte, version byte) string {
	payload := make([]byte, 0, 1+len(input)+checksumLen)
	payload = append(payload, version)
	payload = append(payload, input...)
	sum := checksum(payload)
	payload = append(payload, sum[:]...)
	return Encode(payload)
}

// CheckDecode decodes a Base58Check string, verifying the checksum in
// constant time and splitting off the version byte.
func CheckDecode(input string) (result []byte, version byte, err error) {
	decoded, err := Decode(input)
	if err != nil {
		return nil, 0, err
	}
	if len(decoded) < 1+checksumLen {
		return nil, 0, ErrInvalidFormat
	}
	payload := decoded[:len(decoded)-checksumLen]
	expected := checksum(payload)
	if subtle.ConstantTimeCompare(decoded[len(decoded)-checksumLen:], expected[:]) != 1 {
		return nil, 0, ErrChecksum
	}
	return payload[1:], payload[0], nil
}
