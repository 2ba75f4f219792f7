// Package bigint implements arbitrary-precision unsigned integers as a
// sequence of 64-bit limbs, least-significant limb first. Values are
// immutable: every operation returns a freshly allocated, normalized result.
package bigint

import (
	"math/bits"

	"github.com/pkg/errors"
)

const limbBits = 64

// Int is an arbitrary-precision unsigned integer. The zero value represents
// the number zero and is ready to use. The canonical representation never
// carries trailing (most-significant) zero limbs, so zero is always the empty
// limb slice.
type Int struct {
	limbs []uint64
}

// Zero returns the canonical zero value.
func Zero() Int {
	return Int{}
}

// One returns the value one.
func One() Int {
	return Int{limbs: []uint64{1}}
}

// FromUint64 returns an Int holding v.
func FromUint64(v uint64) Int {
	if v == 0 {
		return Int{}
	}
	return Int{limbs: []uint64{v}}
}

// normalize strips trailing zero limbs so that equal values share a single
// representation.
func normalize(limbs []uint64) Int {
	end := len(limbs)
	for end > 0 && limbs[end-1] == 0 {
		end--
	}
	if end == 0 {
		return Int{}
	}
	return Int{limbs: limbs[:end]}
}

// IsZero reports whether x is zero.
func (x Int) IsZero() bool {
	return len(x.limbs) == 0
}

// BitLen returns the length of x in bits. The bit length of zero is zero.
func (x Int) BitLen() int {
	if len(x.limbs) == 0 {
		return 0
	}
	top := x.limbs[len(x.limbs)-1]
	return (len(x.limbs)-1)*limbBits + bits.Len64(top)
}

// Bit returns the value of the i'th bit of x, counting from the least
// significant bit.
func (x Int) Bit(i int) uint {
	limb := i / limbBits
	if limb >= len(x.limbs) {
		return 0
	}
	return uint(x.limbs[limb]>>(uint(i)%limbBits)) & 1
}

// Uint64 returns the low 64 bits of x.
func (x Int) Uint64() uint64 {
	if len(x.limbs) == 0 {
		return 0
	}
	return x.limbs[0]
}

// Cmp compares x and y and returns -1, 0 or +1. Because representations are
// normalized, a longer limb slice always means a bigger value.
func (x Int) Cmp(y Int) int {
	if len(x.limbs) != len(y.limbs) {
		if len(x.limbs) < len(y.limbs) {
			return -1
		}
		return 1
	}
	for i := len(x.limbs) - 1; i >= 0; i-- {
		if x.limbs[i] != y.limbs[i] {
			if x.limbs[i] < y.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether x and y represent the same value.
func (x Int) Equal(y Int) bool {
	return x.Cmp(y) == 0
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if len(x.limbs) < len(y.limbs) {
		x, y = y, x
	}
	result := make([]uint64, len(x.limbs)+1)
	var carry uint64
	for i := range x.limbs {
		var yLimb uint64
		if i < len(y.limbs) {
			yLimb = y.limbs[i]
		}
		result[i], carry = add64(x.limbs[i], yLimb, carry)
	}
	result[len(x.limbs)] = carry
	return normalize(result)
}

// Sub returns x - y. Sub panics if y > x: unsigned underflow is a programmer
// error, callers that need wraparound semantics must reduce through a
// field.Field instead.
func (x Int) Sub(y Int) Int {
	if x.Cmp(y) < 0 {
		panic("bigint: subtraction underflow")
	}
	result := make([]uint64, len(x.limbs))
	var borrow uint64
	for i := range x.limbs {
		var yLimb uint64
		if i < len(y.limbs) {
			yLimb = y.limbs[i]
		}
		result[i], borrow = bits.Sub64(x.limbs[i], yLimb, borrow)
	}
	return normalize(result)
}

// Mul returns x * y using schoolbook limb-by-limb multiplication with a
// 128-bit accumulator per limb pair.
func (x Int) Mul(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Int{}
	}
	result := make([]uint64, len(x.limbs)+len(y.limbs))
	for i, xLimb := range x.limbs {
		var carry uint64
		for j, yLimb := range y.limbs {
			hi, lo := bits.Mul64(xLimb, yLimb)
			var c uint64
			result[i+j], c = bits.Add64(result[i+j], lo, 0)
			hi += c
			result[i+j], c = bits.Add64(result[i+j], carry, 0)
			hi += c
			carry = hi
		}
		result[i+len(y.limbs)] += carry
	}
	return normalize(result)
}

// DivMod returns the quotient and remainder of x / y, computed in a single
// binary long-division pass over the bit width of x. DivMod panics when y is
// zero.
func (x Int) DivMod(y Int) (quotient, remainder Int) {
	if y.IsZero() {
		panic("bigint: division by zero")
	}
	if x.Cmp(y) < 0 {
		return Int{}, x
	}
	quotientLimbs := make([]uint64, len(x.limbs))
	remainder = Int{}
	for i := x.BitLen() - 1; i >= 0; i-- {
		remainder = remainder.Lsh(1)
		if x.Bit(i) == 1 {
			remainder = remainder.setBit(0)
		}
		if remainder.Cmp(y) >= 0 {
			remainder = remainder.Sub(y)
			quotientLimbs[i/limbBits] |= 1 << (uint(i) % limbBits)
		}
	}
	return normalize(quotientLimbs), remainder
}

// Div returns the quotient of x / y.
func (x Int) Div(y Int) Int {
	quotient, _ := x.DivMod(y)
	return quotient
}

// Mod returns the remainder of x / y.
func (x Int) Mod(y Int) Int {
	_, remainder := x.DivMod(y)
	return remainder
}

// Lsh returns x << n.
func (x Int) Lsh(n uint) Int {
	if x.IsZero() || n == 0 {
		return x
	}
	limbShift := int(n / limbBits)
	bitShift := n % limbBits
	result := make([]uint64, len(x.limbs)+limbShift+1)
	for i, limb := range x.limbs {
		result[i+limbShift] |= limb << bitShift
		if bitShift > 0 {
			result[i+limbShift+1] |= limb >> (limbBits - bitShift)
		}
	}
	return normalize(result)
}

// Rsh returns x >> n. Shifting by n >= BitLen(x) yields zero.
func (x Int) Rsh(n uint) Int {
	if x.IsZero() || n == 0 {
		return x
	}
	limbShift := int(n / limbBits)
	bitShift := n % limbBits
	if limbShift >= len(x.limbs) {
		return Int{}
	}
	result := make([]uint64, len(x.limbs)-limbShift)
	for i := range result {
		result[i] = x.limbs[i+limbShift] >> bitShift
		if bitShift > 0 && i+limbShift+1 < len(x.limbs) {
			result[i] |= x.limbs[i+limbShift+1] << (limbBits - bitShift)
		}
	}
	return normalize(result)
}

func (x Int) setBit(i int) Int {
	limb := i / limbBits
	size := len(x.limbs)
	if limb+1 > size {
		size = limb + 1
	}
	result := make([]uint64, size)
	copy(result, x.limbs)
	result[limb] |= 1 << (uint(i) % limbBits)
	return normalize(result)
}

// add64 adds two limbs and a carry that may itself be any uint64 value,
// which a plain bits.Add64 chain cannot express when carry > 1.
func add64(x, y, carry uint64) (sum, carryOut uint64) {
	sum, c1 := bits.Add64(x, y, 0)
	sum, c2 := bits.Add64(sum, carry, 0)
	return sum, c1 + c2
}

// FromBytes interprets buf as a big-endian unsigned integer. Superfluous
// leading zero bytes are allowed and stripped.
func FromBytes(buf []byte) Int {
	limbs := make([]uint64, (len(buf)+7)/8)
	for i, b := range buf {
		bitPos := uint(len(buf)-1-i) * 8
		limbs[bitPos/limbBits] |= uint64(b) << (bitPos % limbBits)
	}
	return normalize(limbs)
}

// Bytes returns x as a big-endian byte slice, left-padded with zeros to at
// least minLen bytes. When x needs more than minLen bytes the result is
// exactly as long as x needs, never truncated.
func (x Int) Bytes(minLen int) []byte {
	byteLen := (x.BitLen() + 7) / 8
	size := byteLen
	if minLen > size {
		size = minLen
	}
	buf := make([]byte, size)
	for i := 0; i < byteLen; i++ {
		bitPos := uint(i) * 8
		buf[size-1-i] = byte(x.limbs[bitPos/limbBits] >> (bitPos % limbBits))
	}
	return buf
}

// String returns the decimal representation of x.
func (x Int) String() string {
	if x.IsZero() {
		return "0"
	}
	ten := FromUint64(10)
	var digits []byte
	for !x.IsZero() {
		var remainder Int
		x, remainder = x.DivMod(ten)
		digits = append(digits, byte('0'+remainder.Uint64()))
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// FromHex parses a hexadecimal string, with no 0x prefix, into an Int.
func FromHex(s string) (Int, error) {
	if len(s) == 0 {
		return Int{}, errors.New("empty hex string")
	}
	result := Int{}
	for _, c := range s {
		var digit uint64
		switch {
		case c >= '0' && c <= '9':
			digit = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			digit = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = uint64(c-'A') + 10
		default:
			return Int{}, errors.Errorf("invalid hex character %q", c)
		}
		result = result.Lsh(4).Add(FromUint64(digit))
	}
	return result, nil
}

// MustFromHex is like FromHex but panics on malformed input. It is intended
// for package-level constants.
func MustFromHex(s string) Int {
	result, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return result
}
