// Package ripemd160 implements the RIPEMD-160 hash as specified by Dobbertin,
// Bosselaers and Preneel: a Merkle-Damgard construction over 512-bit blocks
// with two parallel 80-round lines whose results are cross-mixed into the
// five-word running state.
package ripemd160

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	// Size is the digest length in bytes.
	Size = 20

	// BlockSize is the message block length in bytes.
	BlockSize = 64
)

// Message word selection per round, left and right lines.
var selectLeft = [80]uint{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var selectRight = [80]uint{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

// Rotate amounts per round, left and right lines.
var rotateLeftLine = [80]int{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var rotateRightLine = [80]int{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

// Additive constants per 16-round group.
var constantsLeft = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
var constantsRight = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}

// nonlinear returns the round function for round group g, g = round/16. The
// left line walks the functions forward, the right line uses nonlinear(4-g).
func nonlinear(g int, x, y, z uint32) uint32 {
	switch g {
	case 0:
		return x ^ y ^ z
	case 1:
		return (x & y) | (^x & z)
	case 2:
		return (x | ^y) ^ z
	case 3:
		return (x & z) | (y & ^z)
	default:
		return x ^ (y | ^z)
	}
}

type digest struct {
	state  [5]uint32
	buf    [BlockSize]byte
	bufLen int
	length uint64
}

// New returns a streaming RIPEMD-160 hash.Hash.
func New() hash.Hash {
	d := &digest{}
	d.Reset()
	return d
}

// Sum160 returns the RIPEMD-160 digest of data.
func Sum160(data []byte) [Size]byte {
	h := New()
	h.Write(data)
	var digest [Size]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

func (d *digest) Reset() {
	d.state = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}
	d.bufLen = 0
	d.length = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Write(p []byte) (int, error) {
	written := len(p)
	d.length += uint64(written)
	d.writeNoCount(p)
	return written, nil
}

func (d *digest) Sum(b []byte) []byte {
	// Pad a copy so the receiver keeps accepting writes.
	clone := *d

	// 0x80, zeros to 56 mod 64, then the bit length little-endian.
	var padding [BlockSize * 2]byte
	padding[0] = 0x80
	padLen := 56 - int(clone.length%BlockSize)
	if padLen <= 0 {
		padLen += BlockSize
	}
	binary.LittleEndian.PutUint64(padding[padLen:], clone.length*8)
	clone.writeNoCount(padding[:padLen+8])

	var out [Size]byte
	for i, word := range clone.state {
		binary.LittleEndian.PutUint32(out[i*4:], word)
	}
	return append(b, out[:]...)
}

func (d *digest) writeNoCount(p []byte) {
	for len(p) > 0 {
		n := copy(d.buf[d.bufLen:], p)
		d.bufLen += n
		p = p[n:]
		if d.bufLen == BlockSize {
			d.compress(d.buf[:])
			d.bufLen = 0
		}
	}
}

func (d *digest) compress(block []byte) {
	var words [16]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	aL, bL, cL, dL, eL := d.state[0], d.state[1], d.state[2], d.state[3], d.state[4]
	aR, bR, cR, dR, eR := aL, bL, cL, dL, eL

	for round := 0; round < 80; round++ {
		group := round / 16

		t := bits.RotateLeft32(
			aL+nonlinear(group, bL, cL, dL)+words[selectLeft[round]]+constantsLeft[group],
			rotateLeftLine[round]) + eL
		aL, eL, dL, cL, bL = eL, dL, bits.RotateLeft32(cL, 10), bL, t

		t = bits.RotateLeft32(
			aR+nonlinear(4-group, bR, cR, dR)+words[selectRight[round]]+constantsRight[group],
			rotateRightLine[round]) + eR
		aR, eR, dR, cR, bR = eR, dR, bits.RotateLeft32(cR, 10), bR, t
	}

	// Cross-mix both lines into the previous state.
	t := d.state[1] + cL + dR
	d.state[1] = d.state[2] + dL + eR
	d.state[2] = d.state[3] + eL + aR
	d.state[3] = d.state[4] + aL + bR
	d.state[4] = d.state[0] + bL + cR
	d.state[0] = t
}
