package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/bip39"
)

func importMnemonic(conf *importConfig) error {
	fmt.Println("Enter your mnemonic:")
	reader := bufio.NewReader(os.Stdin)
	line, isPrefix, err := reader.ReadLine()
	if err != nil {
		return err
	}
	if isPrefix {
		return errors.Errorf("mnemonic is too long")
	}

	mnemonic := strings.TrimSpace(string(line))
	if !bip39.IsMnemonicValid(mnemonic) {
		return errors.Errorf("the given mnemonic is not valid")
	}

	path, err := sealAndWrite(mnemonic, conf.keysFileFlags, conf.Force)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote the keys into %s\n", path)
	return nil
}
