// Package keystore persists wallet secrets encrypted at rest. Mnemonics are
// sealed with XChaCha20-Poly1305 under an argon2id key derived from the
// user's password, and stored alongside watch-only extended public keys in
// a JSON file.
package keystore

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrWrongPassword is returned when a sealed mnemonic fails to open,
// either because the password is wrong or the file was tampered with.
var ErrWrongPassword = errors.New("wrong password or corrupted keys file")

// ErrMalformedKeysFile is returned when the keys file fails to parse.
var ErrMalformedKeysFile = errors.New("malformed keys file")

// ErrKeysFileExists is returned when writing would overwrite an existing
// keys file without the caller forcing it.
var ErrKeysFileExists = errors.New("keys file already exists")

type sealedMnemonicJSON struct {
	Cipher string `json:"cipher"`
	Salt   string `json:"salt"`
}

type keysFileJSON struct {
	SealedMnemonic     *sealedMnemonicJSON `json:"sealedMnemonic"`
	ExtendedPublicKeys []string            `json:"extendedPublicKeys"`
}

// SealedMnemonic is an encrypted mnemonic together with the key
// derivation salt it was sealed under.
type SealedMnemonic struct {
	cipher []byte
	salt   []byte
}

// File holds the persisted contents of a wallet keys file.
type File struct {
	SealedMnemonic     *SealedMnemonic
	ExtendedPublicKeys []string
}

// DefaultPath returns the conventional keys file location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, ".keyfold", "keys.json"), nil
}

func (f *File) toJSON() *keysFileJSON {
	fileJSON := &keysFileJSON{
		ExtendedPublicKeys: f.ExtendedPublicKeys,
	}
	if f.SealedMnemonic != nil {
		fileJSON.SealedMnemonic = &sealedMnemonicJSON{
			Cipher: hex.EncodeToString(f.SealedMnemonic.cipher),
			Salt:   hex.EncodeToString(f.SealedMnemonic.salt),
		}
	}
	return fileJSON
}

func (f *File) fromJSON(fileJSON *keysFileJSON) error {
	f.ExtendedPublicKeys = fileJSON.ExtendedPublicKeys
	if fileJSON.SealedMnemonic == nil {
		f.SealedMnemonic = nil
		return nil
	}

	cipher, err := hex.DecodeString(fileJSON.SealedMnemonic.Cipher)
	if err != nil {
		return errors.Wrap(ErrMalformedKeysFile, err.Error())
	}
	salt, err := hex.DecodeString(fileJSON.SealedMnemonic.Salt)
	if err != nil {
		return errors.Wrap(ErrMalformedKeysFile, err.Error())
	}
	f.SealedMnemonic = &SealedMnemonic{cipher: cipher, salt: salt}
	return nil
}

// Read loads a keys file from disk.
func Read(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening keys file %s", path)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	decodedFile := &keysFileJSON{}
	if err := decoder.Decode(decodedFile); err != nil {
		return nil, errors.Wrap(ErrMalformedKeysFile, err.Error())
	}

	keysFile := &File{}
	if err := keysFile.fromJSON(decodedFile); err != nil {
		return nil, err
	}
	return keysFile, nil
}

// Write persists a keys file to disk, creating parent directories as
// needed. An existing file is only replaced when force is set.
func Write(path string, keysFile *File, force bool) error {
	exists, err := pathExists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return errors.Wrapf(ErrKeysFileExists, "%s", path)
	}

	if err := createFileDirectoryIfDoesntExist(path); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "creating keys file %s", path)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(keysFile.toJSON()); err != nil {
		return errors.Wrapf(err, "writing keys file %s", path)
	}
	return nil
}

// Delete removes a keys file from disk.
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return errors.Wrapf(err, "deleting keys file %s", path)
	}
	return nil
}

func createFileDirectoryIfDoesntExist(path string) error {
	dir := filepath.Dir(path)
	exists, err := pathExists(dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return os.MkdirAll(dir, 0700)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
