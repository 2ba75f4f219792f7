// Package keccak implements Keccak-256 as used by Ethereum. This is the
// original Keccak submission with multi-rate padding (0x01 ... 0x80), not the
// NIST SHA3-256 variant, which pads with 0x06 and produces different digests
// for every input.
package keccak

import (
	"hash"
	"math/bits"
)

const (
	// rate is the number of bytes absorbed per permutation for a 512-bit
	// capacity (1600 - 2*256 bits).
	rate = 136

	// Size is the digest length in bytes.
	Size = 32
)

// Keccak-f[1600] round constants, one per round.
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// Rho rotation offsets for lane x+5y.
var rotationOffsets = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

type state struct {
	lanes  [25]uint64
	buf    [rate]byte
	bufLen int
}

// New256 returns a streaming Keccak-256 hash.Hash.
func New256() hash.Hash {
	return &state{}
}

// Sum256 returns the Keccak-256 digest of data.
func Sum256(data []byte) [Size]byte {
	var s state
	s.absorb(data)
	return s.squeeze()
}

func (s *state) Write(p []byte) (int, error) {
	s.absorb(p)
	return len(p), nil
}

func (s *state) Sum(b []byte) []byte {
	// Squeeze a copy so the caller can keep writing.
	clone := *s
	digest := clone.squeeze()
	return append(b, digest[:]...)
}

func (s *state) Reset() {
	*s = state{}
}

func (s *state) Size() int { return Size }

func (s *state) BlockSize() int { return rate }

func (s *state) absorb(data []byte) {
	for len(data) > 0 {
		n := copy(s.buf[s.bufLen:], data)
		s.bufLen += n
		data = data[n:]
		if s.bufLen == rate {
			s.xorBlock(s.buf[:])
			s.permute()
			s.bufLen = 0
		}
	}
}

// squeeze pads the final block, runs the last permutation and reads out the
// first 32 bytes of the state, lane order, little-endian within each lane.
func (s *state) squeeze() [Size]byte {
	var block [rate]byte
	copy(block[:], s.buf[:s.bufLen])
	block[s.bufLen] = 0x01
	block[rate-1] |= 0x80
	s.xorBlock(block[:])
	s.permute()

	var digest [Size]byte
	for i := 0; i < Size/8; i++ {
		lane := s.lanes[i]
		for j := 0; j < 8; j++ {
			digest[i*8+j] = byte(lane >> (8 * uint(j)))
		}
	}
	return digest
}

func (s *state) xorBlock(block []byte) {
	for i := 0; i < rate/8; i++ {
		var lane uint64
		for j := 7; j >= 0; j-- {
			lane = lane<<8 | uint64(block[i*8+j])
		}
		s.lanes[i] ^= lane
	}
}

// permute runs the 24 rounds of Keccak-f[1600], each round applying the
// theta, rho, pi, chi and iota step mappings.
func (s *state) permute() {
	a := &s.lanes
	var c, d [5]uint64
	var b [25]uint64

	for round := 0; round < 24; round++ {
		// Theta.
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// Rho and pi in one pass: lane (x, y) rotates by its fixed offset
		// and moves to (y, 2x+3y).
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				source := x + 5*y
				dest := y + 5*((2*x+3*y)%5)
				b[dest] = bits.RotateLeft64(a[source], rotationOffsets[source])
			}
		}

		// Chi.
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & b[(x+2)%5+5*y])
			}
		}

		// Iota.
		a[0] ^= roundConstants[round]
	}
}
