package main

import (
	"crypto/subtle"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/bip32"
	"github.com/keyfold/keyfold/bip39"
	"github.com/keyfold/keyfold/keystore"
	"github.com/keyfold/keyfold/util"
)

func resolveKeysFilePath(flags keysFileFlags) (string, error) {
	if flags.KeysFile != "" {
		return flags.KeysFile, nil
	}
	return keystore.DefaultPath()
}

// unlockMaster reads the keys file, asks for the password and rebuilds the
// master key from the stored mnemonic.
func unlockMaster(flags keysFileFlags) (*bip32.ExtendedKey, error) {
	path, err := resolveKeysFilePath(flags)
	if err != nil {
		return nil, err
	}

	keysFile, err := keystore.Read(path)
	if err != nil {
		return nil, err
	}
	if keysFile.SealedMnemonic == nil {
		return nil, errors.Errorf("keys file %s holds no mnemonic", path)
	}

	password := keystore.GetPassword("Password:")
	mnemonic, err := keysFile.SealedMnemonic.Open(password)
	if err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeed(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer util.ZeroBytes(seed)

	return bip32.NewMaster(seed, bip32.BitcoinMainnetPrivate)
}

// sealAndWrite encrypts the mnemonic under a freshly confirmed password
// and writes the keys file with the master extended public key alongside.
func sealAndWrite(mnemonic string, flags keysFileFlags, force bool) (string, error) {
	password := keystore.GetPassword("Enter password for the keys file:")
	confirmPassword := keystore.GetPassword("Confirm password:")
	if subtle.ConstantTimeCompare(password, confirmPassword) != 1 {
		return "", errors.New("Passwords are not identical")
	}

	sealed, err := keystore.SealMnemonic(mnemonic, password)
	if err != nil {
		return "", err
	}

	seed, err := bip39.NewSeed(mnemonic, "")
	if err != nil {
		return "", err
	}
	defer util.ZeroBytes(seed)
	master, err := bip32.NewMaster(seed, bip32.BitcoinMainnetPrivate)
	if err != nil {
		return "", err
	}
	defer master.Zero()
	masterPublic, err := master.Public()
	if err != nil {
		return "", err
	}

	path, err := resolveKeysFilePath(flags)
	if err != nil {
		return "", err
	}
	keysFile := &keystore.File{
		SealedMnemonic:     sealed,
		ExtendedPublicKeys: []string{masterPublic.String()},
	}
	if err := keystore.Write(path, keysFile, force); err != nil {
		return "", err
	}
	return path, nil
}
