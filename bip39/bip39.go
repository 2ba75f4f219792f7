// Package bip39 implements BIP-39 mnemonic encoding of wallet entropy and
// the PBKDF2 derivation of the wallet seed. The word list is the canonical
// 2048-word English list.
package bip39

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"strings"

	"github.com/keyfold/keyfold/bigint"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	bitsPerWord    = 11
	seedIterations = 2048
	seedLen        = 64
)

var (
	// ErrInvalidEntropy is returned for entropy that is not 128, 160, 192,
	// 224 or 256 bits long.
	ErrInvalidEntropy = errors.New("entropy must be 128, 160, 192, 224 or 256 bits")

	// ErrInvalidMnemonic is returned for mnemonics with a bad word count, a
	// word outside the list, or a checksum mismatch.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

var wordList = wordlists.English

var wordIndexes = func() map[string]int {
	indexes := make(map[string]int, len(wordList))
	for i, word := range wordList {
		indexes[word] = i
	}
	return indexes
}()

func validEntropyLen(byteLen int) bool {
	switch byteLen * 8 {
	case 128, 160, 192, 224, 256:
		return true
	}
	return false
}

// NewEntropy generates bitSize bits of cryptographically secure entropy. It
// fails closed: any error from the platform generator is returned, never
// papered over with a weaker source.
func NewEntropy(bitSize int) ([]byte, error) {
	if !validEntropyLen(bitSize / 8) {
		return nil, ErrInvalidEntropy
	}
	entropy := make([]byte, bitSize/8)
	if _, err := rand.Read(entropy); err != nil {
		return nil, errors.Wrap(err, "reading random entropy")
	}
	return entropy, nil
}

// NewMnemonic encodes entropy as a mnemonic sentence: the entropy followed by
// its len/32-bit SHA-256 checksum, split into 11-bit word indexes.
func NewMnemonic(entropy []byte) (string, error) {
	if !validEntropyLen(len(entropy)) {
		return "", ErrInvalidEntropy
	}
	checksumBits := uint(len(entropy) / 4)
	checksum := sha256.Sum256(entropy)

	combined := bigint.FromBytes(entropy).
		Lsh(checksumBits).
		Add(bigint.FromUint64(uint64(checksum[0] >> (8 - checksumBits))))

	wordCount := (len(entropy)*8 + int(checksumBits)) / bitsPerWord
	words := make([]string, wordCount)
	for i := wordCount - 1; i >= 0; i-- {
		words[i] = wordList[combined.Uint64()&(1<<bitsPerWord-1)]
		combined = combined.Rsh(bitsPerWord)
	}
	return strings.Join(words, " "), nil
}

// EntropyFromMnemonic reverses NewMnemonic, verifying the embedded checksum.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	words := strings.Fields(normalize(mnemonic))
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return nil, errors.Wrapf(ErrInvalidMnemonic, "%d words", len(words))
	}

	combined := bigint.Zero()
	for _, word := range words {
		index, known := wordIndexes[word]
		if !known {
			return nil, errors.Wrapf(ErrInvalidMnemonic, "unknown word %q", word)
		}
		combined = combined.Lsh(bitsPerWord).Add(bigint.FromUint64(uint64(index)))
	}

	checksumBits := uint(len(words) / 3)
	entropyLen := len(words) * bitsPerWord / 33 * 4
	entropy := combined.Rsh(checksumBits).Bytes(entropyLen)
	gotChecksum := byte(combined.Uint64() & (1<<checksumBits - 1))

	wantHash := sha256.Sum256(entropy)
	if gotChecksum != wantHash[0]>>(8-checksumBits) {
		return nil, errors.Wrap(ErrInvalidMnemonic, "checksum mismatch")
	}
	return entropy, nil
}

// IsMnemonicValid reports whether mnemonic parses and checksums correctly.
func IsMnemonicValid(mnemonic string) bool {
	_, err := EntropyFromMnemonic(mnemonic)
	return err == nil
}

// NewSeed derives the 64-byte wallet seed from a validated mnemonic and an
// optional passphrase: PBKDF2-HMAC-SHA512, 2048 iterations, salt
// "mnemonic"+passphrase, both NFKD normalized.
func NewSeed(mnemonic, passphrase string) ([]byte, error) {
	if _, err := EntropyFromMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return pbkdf2.Key(
		[]byte(normalize(mnemonic)),
		[]byte(normalize("mnemonic"+passphrase)),
		seedIterations, seedLen, sha512.New), nil
}

func normalize(s string) string {
	return norm.NFKD.String(s)
}
