// Package bech32 implements the Bech32 (BIP-173) and Bech32m (BIP-350)
// encodings and the segregated-witness address format built on them.
package bech32

import (
	"strings"

	"github.com/pkg/errors"
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const (
	checksumLen = 6
	maxLength   = 90
)

// Version identifies which checksum constant a string was encoded with.
type Version int

// Checksum variants. VersionM (Bech32m) is required for segwit versions 1-16,
// the original constant for version 0.
const (
	VersionOriginal Version = iota
	VersionM
)

const (
	constOriginal uint32 = 1
	constM        uint32 = 0x2bc830a3
)

var (
	// ErrInvalidChecksum is returned when neither checksum constant matches.
	ErrInvalidChecksum = errors.New("invalid bech32 checksum")

	// ErrMixedCase is returned for strings mixing upper and lower case.
	ErrMixedCase = errors.New("string not all lowercase or all uppercase")

	// ErrInvalidLength is returned for strings longer than 90 characters or
	// too short to hold an HRP and a checksum.
	ErrInvalidLength = errors.New("invalid bech32 string length")

	// ErrInvalidBitGroups is returned by ConvertBits when the input cannot be
	// regrouped without discarding non-zero padding bits.
	ErrInvalidBitGroups = errors.New("invalid incomplete group")
)

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(charset); i++ {
		decodeTable[charset[i]] = int8(i)
	}
}

func polymod(values []byte) uint32 {
	generator := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	checksum := uint32(1)
	for _, value := range values {
		top := checksum >> 25
		checksum = (checksum&0x1ffffff)<<5 ^ uint32(value)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				checksum ^= generator[i]
			}
		}
	}
	return checksum
}

func hrpExpand(hrp string) []byte {
	expanded := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		expanded = append(expanded, hrp[i]>>5)
	}
	expanded = append(expanded, 0)
	for i := 0; i < len(hrp); i++ {
		expanded = append(expanded, hrp[i]&31)
	}
	return expanded
}

func checksumConst(version Version) uint32 {
	if version == VersionM {
		return constM
	}
	return constOriginal
}

func createChecksum(hrp string, data []byte, version Version) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, make([]byte, checksumLen)...)
	remainder := polymod(values) ^ checksumConst(version)
	checksum := make([]byte, checksumLen)
	for i := range checksum {
		checksum[i] = byte(remainder >> uint(5*(5-i)) & 31)
	}
	return checksum
}

func verifyChecksum(hrp string, data []byte, version Version) bool {
	return polymod(append(hrpExpand(hrp), data...)) == checksumConst(version)
}

// Encode encodes data (5-bit groups, one value per byte) with the given HRP
// and checksum variant.
func Encode(hrp string, data []byte, version Version) (string, error) {
	if len(hrp)+len(data)+checksumLen+1 > maxLength {
		return "", errors.Wrapf(ErrInvalidLength,
			"hrp %d and data %d characters", len(hrp), len(data))
	}
	if len(hrp) == 0 {
		return "", errors.New("empty human-readable part")
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return "", errors.Errorf("invalid hrp character %d at offset %d", hrp[i], i)
		}
	}
	hrp = strings.ToLower(hrp)

	var builder strings.Builder
	builder.WriteString(hrp)
	builder.WriteByte('1')
	for _, value := range data {
		if value > 31 {
			return "", errors.Errorf("data value %d exceeds 5 bits", value)
		}
		builder.WriteByte(charset[value])
	}
	for _, value := range createChecksum(hrp, data, version) {
		builder.WriteByte(charset[value])
	}
	return builder.String(), nil
}

// Decode decodes a bech32 string into its HRP and 5-bit data values,
// reporting which checksum variant the string was encoded with. The checksum
// characters are not included in the returned data.
func Decode(encoded string) (hrp string, data []byte, version Version, err error) {
	if len(encoded) > maxLength {
		return "", nil, 0, errors.Wrapf(ErrInvalidLength, "%d characters", len(encoded))
	}
	if strings.ToLower(encoded) != encoded && strings.ToUpper(encoded) != encoded {
		return "", nil, 0, ErrMixedCase
	}
	encoded = strings.ToLower(encoded)

	separator := strings.LastIndexByte(encoded, '1')
	if separator < 1 || separator+checksumLen+1 > len(encoded) {
		return "", nil, 0, errors.Wrap(ErrInvalidLength, "missing or misplaced separator")
	}
	hrp = encoded[:separator]
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return "", nil, 0, errors.Errorf("invalid hrp character %d at offset %d", hrp[i], i)
		}
	}

	rest := encoded[separator+1:]
	values := make([]byte, len(rest))
	for i := 0; i < len(rest); i++ {
		index := decodeTable[rest[i]]
		if index < 0 {
			return "", nil, 0, errors.Errorf("invalid character %q at offset %d",
				rest[i], separator+1+i)
		}
		values[i] = byte(index)
	}

	switch {
	case verifyChecksum(hrp, values, VersionOriginal):
		version = VersionOriginal
	case verifyChecksum(hrp, values, VersionM):
		version = VersionM
	default:
		return "", nil, 0, ErrInvalidChecksum
	}

	return hrp, values[:len(values)-checksumLen], version, nil
}

// ConvertBits regroups data from fromBits-wide groups to toBits-wide groups.
// With pad set, the final partial group is zero-filled; without it any
// non-zero discarded bits make the conversion fail, so no information can be
// smuggled in the padding.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, errors.Errorf("bit groups must be 1-8 bits, got %d and %d", fromBits, toBits)
	}
	var accumulator uint32
	var bitCount uint8
	maxValue := uint32(1)<<toBits - 1
	result := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)

	for i, value := range data {
		if uint32(value)>>fromBits != 0 {
			return nil, errors.Errorf("value %d at offset %d exceeds %d bits", value, i, fromBits)
		}
		accumulator = accumulator<<fromBits | uint32(value)
		bitCount += fromBits
		for bitCount >= toBits {
			bitCount -= toBits
			result = append(result, byte(accumulator>>bitCount&maxValue))
		}
	}

	if pad {
		if bitCount > 0 {
			result = append(result, byte(accumulator<<(toBits-bitCount)&maxValue))
		}
	} else if bitCount >= fromBits || accumulator<<(toBits-bitCount)&maxValue != 0 {
		return nil, ErrInvalidBitGroups
	}
	return result, nil
}
