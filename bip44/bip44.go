// Package bip44 builds multi-account derivation paths on top of bip32
// following the purpose/coin/account/change/index convention.
package bip44

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/keyfold/keyfold/bip32"
)

// Purpose is the first, always hardened, path component.
const Purpose = 44

// Registered coin types, per SLIP-0044.
const (
	CoinTypeBitcoin  = 0
	CoinTypeTestnet  = 1
	CoinTypeLitecoin = 2
	CoinTypeDogecoin = 3
	CoinTypeEthereum = 60
	CoinTypeSolana   = 501
)

// Change distinguishes external (receiving) addresses from internal ones.
const (
	ChangeExternal = 0
	ChangeInternal = 1
)

// ErrInvalidPathComponent is returned when a path component carries an
// explicit hardened bit or exceeds the valid index range.
var ErrInvalidPathComponent = errors.New("invalid path component")

// Path is a fully qualified five-level derivation path. Purpose, CoinType
// and Account are hardened when derived; Change and AddressIndex are not.
type Path struct {
	CoinType     uint32
	Account      uint32
	Change       uint32
	AddressIndex uint32
}

// NewPath returns the external path for the given coin, account and address
// index, the common case for receiving addresses.
func NewPath(coinType, account, addressIndex uint32) Path {
	return Path{
		CoinType:     coinType,
		Account:      account,
		Change:       ChangeExternal,
		AddressIndex: addressIndex,
	}
}

func (path Path) validate() error {
	for _, component := range []struct {
		name  string
		value uint32
	}{
		{"coin type", path.CoinType},
		{"account", path.Account},
		{"change", path.Change},
		{"address index", path.AddressIndex},
	} {
		if component.value >= bip32.HardenedIndexStart {
			return errors.Wrapf(ErrInvalidPathComponent,
				"%s %d carries the hardened bit", component.name, component.value)
		}
	}
	if path.Change != ChangeExternal && path.Change != ChangeInternal {
		return errors.Wrapf(ErrInvalidPathComponent, "change %d", path.Change)
	}
	return nil
}

// String renders the path in the conventional apostrophe notation,
// e.g. m/44'/60'/0'/0/0.
func (path Path) String() string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d",
		Purpose, path.CoinType, path.Account, path.Change, path.AddressIndex)
}

// Indexes returns the five child indexes with the hardened bit applied to
// the first three levels.
func (path Path) Indexes() []uint32 {
	return []uint32{
		Purpose | bip32.HardenedIndexStart,
		path.CoinType | bip32.HardenedIndexStart,
		path.Account | bip32.HardenedIndexStart,
		path.Change,
		path.AddressIndex,
	}
}

// Derive walks the path down from a master key. The master key must be
// private since the first three levels are hardened.
func (path Path) Derive(master *bip32.ExtendedKey) (*bip32.ExtendedKey, error) {
	if err := path.validate(); err != nil {
		return nil, err
	}
	key := master
	for _, index := range path.Indexes() {
		child, err := key.Child(index)
		if err != nil {
			return nil, errors.Wrapf(err, "deriving %s", path)
		}
		key = child
	}
	return key, nil
}
