// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"

	"github.com/keyfold/keyfold/ripemd160"
)

// Hash160 calculates the hash ripemd160(sha256(b)), the standard composite
// used for Bitcoin-style address and public-key hashing.
func Hash160(buf []byte) []byte {
	first := sha256.Sum256(buf)
	second := ripemd160.Sum160(first[:])
	return second[:]
}

// DoubleHashB calculates the hash sha256(sha256(b)).
func DoubleHashB(buf []byte) []byte {
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	return second[:]
}
