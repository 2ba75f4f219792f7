package keystore

import (
	"crypto/cipher"
	"crypto/rand"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltLen = 16

func getAEAD(password, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(password, salt, 1, 64*1024, uint8(runtime.NumCPU()), 32)
	return chacha20poly1305.NewX(key)
}

func generateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "generating salt")
	}
	return salt, nil
}

// SealMnemonic encrypts a mnemonic under a password, generating a fresh
// salt and nonce.
func SealMnemonic(mnemonic string, password []byte) (*SealedMnemonic, error) {
	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}

	aead, err := getAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	// Select a random nonce, and leave capacity for the ciphertext.
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(mnemonic)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "generating nonce")
	}

	// Encrypt the message and append the ciphertext to the nonce.
	cipherText := aead.Seal(nonce, nonce, []byte(mnemonic), nil)

	return &SealedMnemonic{
		cipher: cipherText,
		salt:   salt,
	}, nil
}

// Open decrypts the mnemonic, verifying it was not tampered with.
func (s *SealedMnemonic) Open(password []byte) (string, error) {
	aead, err := getAEAD(password, s.salt)
	if err != nil {
		return "", err
	}

	if len(s.cipher) < aead.NonceSize() {
		return "", errors.Wrap(ErrMalformedKeysFile, "ciphertext too short")
	}

	// Split nonce and ciphertext.
	nonce, cipherText := s.cipher[:aead.NonceSize()], s.cipher[aead.NonceSize():]

	decrypted, err := aead.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.Wrap(ErrWrongPassword, err.Error())
	}
	return string(decrypted), nil
}
