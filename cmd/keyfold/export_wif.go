package main

import (
	"fmt"

	"github.com/keyfold/keyfold/bip32"
	"github.com/keyfold/keyfold/bip44"
	"github.com/keyfold/keyfold/util"
)

func exportWIF(conf *exportWIFConfig) error {
	master, err := unlockMaster(conf.keysFileFlags)
	if err != nil {
		return err
	}
	defer master.Zero()

	coinType := uint32(bip44.CoinTypeBitcoin)
	version := bip32.WIFVersionMainnet
	if conf.Testnet {
		coinType = bip44.CoinTypeTestnet
		version = bip32.WIFVersionTestnet
	}

	path := bip44.NewPath(coinType, conf.Account, conf.Index)
	key, err := path.Derive(master)
	if err != nil {
		return err
	}
	defer key.Zero()

	privateKey, err := key.PrivateKeyBytes()
	if err != nil {
		return err
	}
	defer util.ZeroBytes(privateKey)

	encoded, err := bip32.EncodeWIF(privateKey, version, true)
	if err != nil {
		return err
	}

	fmt.Printf("The private key at %s in wallet import format is:\n%s\n", path, encoded)
	return nil
}
