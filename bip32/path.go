package bip32

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParsePath parses a derivation path of the form "m/44'/0'/0'/0/0" into the
// sequence of child indexes to derive, with the hardened bit applied.
// Both ' and h mark hardened components; "m" alone is the empty path.
func ParsePath(pathString string) ([]uint32, error) {
	components := strings.Split(pathString, "/")
	if components[0] != "m" {
		return nil, errors.Wrapf(ErrInvalidPath, "%q must start with m", pathString)
	}
	if len(components) == 2 && components[1] == "" {
		// Allow the "m/" spelling of the root.
		return nil, nil
	}

	indexes := make([]uint32, 0, len(components)-1)
	for _, component := range components[1:] {
		hardened := strings.HasSuffix(component, "'") || strings.HasSuffix(component, "h")
		if hardened {
			component = component[:len(component)-1]
		}
		index, err := strconv.ParseUint(component, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "component %q", component)
		}
		if index >= HardenedIndexStart {
			return nil, errors.Wrapf(ErrInvalidPath, "index %d out of range", index)
		}
		if hardened {
			index |= HardenedIndexStart
		}
		indexes = append(indexes, uint32(index))
	}
	return indexes, nil
}

// DeriveFromPath derives the descendant of key at the given path string by
// sequential child derivations.
func (key *ExtendedKey) DeriveFromPath(pathString string) (*ExtendedKey, error) {
	indexes, err := ParsePath(pathString)
	if err != nil {
		return nil, err
	}
	descendant := key
	for _, index := range indexes {
		descendant, err = descendant.Child(index)
		if err != nil {
			return nil, err
		}
	}
	return descendant, nil
}
