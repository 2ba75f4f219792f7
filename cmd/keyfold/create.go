package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/bip39"
)

func create(conf *createConfig) error {
	entropyBits := conf.WordCount * 32 / 3
	switch conf.WordCount {
	case 12, 15, 18, 21, 24:
	default:
		return errors.Errorf("mnemonic length must be 12, 15, 18, 21 or 24 words, got %d", conf.WordCount)
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return err
	}

	path, err := sealAndWrite(mnemonic, conf.keysFileFlags, conf.Force)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote the keys into %s\n\n", path)
	fmt.Printf("Your recovery mnemonic is:\n%s\n\n", mnemonic)
	fmt.Println("Write it down and keep it safe. Anyone holding these words controls the wallet.")
	return nil
}
