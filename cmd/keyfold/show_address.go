package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/address"
	"github.com/keyfold/keyfold/bip44"
)

func showAddress(conf *showAddressConfig) error {
	var coinType uint32
	switch conf.Coin {
	case "bitcoin":
		coinType = bip44.CoinTypeBitcoin
	case "testnet":
		coinType = bip44.CoinTypeTestnet
	case "ethereum":
		coinType = bip44.CoinTypeEthereum
	default:
		return errors.Errorf("unknown coin '%s'", conf.Coin)
	}

	master, err := unlockMaster(conf.keysFileFlags)
	if err != nil {
		return err
	}
	defer master.Zero()

	path := bip44.Path{
		CoinType:     coinType,
		Account:      conf.Account,
		Change:       bip44.ChangeExternal,
		AddressIndex: conf.Index,
	}
	if conf.Change {
		path.Change = bip44.ChangeInternal
	}

	key, err := path.Derive(master)
	if err != nil {
		return err
	}
	defer key.Zero()
	publicKey := key.PublicKeyBytes()

	var addr string
	switch coinType {
	case bip44.CoinTypeEthereum:
		addr, err = address.Ethereum(publicKey)
	case bip44.CoinTypeTestnet:
		if conf.SegWit {
			addr, err = address.P2WPKH(publicKey, address.BitcoinTestnetHRP)
		} else {
			addr, err = address.P2PKH(publicKey, address.BitcoinTestnetP2PKH)
		}
	default:
		if conf.SegWit {
			addr, err = address.P2WPKH(publicKey, address.BitcoinMainnetHRP)
		} else {
			addr, err = address.P2PKH(publicKey, address.BitcoinMainnetP2PKH)
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("The address at %s is:\n%s\n", path, addr)
	return nil
}
