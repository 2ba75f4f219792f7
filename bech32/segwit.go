package bech32

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidWitnessVersion is returned for witness versions outside 0-16.
	ErrInvalidWitnessVersion = errors.New("witness version must be 0-16")

	// ErrInvalidProgramLength is returned when a witness program's length is
	// not valid for its version.
	ErrInvalidProgramLength = errors.New("invalid witness program length")
)

// EncodeSegWitAddress encodes a witness version and program into a segwit
// address for the given HRP ("bc" for Bitcoin mainnet). Version 0 uses the
// original Bech32 checksum, versions 1-16 use Bech32m, per BIP-350.
func EncodeSegWitAddress(hrp string, witnessVersion byte, program []byte) (string, error) {
	if err := validateWitness(witnessVersion, program); err != nil {
		return "", err
	}

	converted, err := ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "converting witness program to 5-bit groups")
	}
	data := append([]byte{witnessVersion}, converted...)

	checksumVersion := VersionOriginal
	if witnessVersion > 0 {
		checksumVersion = VersionM
	}
	return Encode(hrp, data, checksumVersion)
}

// DecodeSegWitAddress decodes a segwit address, validating the checksum
// variant and program length against the witness version. The expected HRP
// guards against pasting an address from the wrong network.
func DecodeSegWitAddress(expectedHRP, address string) (witnessVersion byte, program []byte, err error) {
	hrp, data, checksumVersion, err := Decode(address)
	if err != nil {
		return 0, nil, err
	}
	if hrp != expectedHRP {
		return 0, nil, errors.Errorf("address human-readable part %q, want %q", hrp, expectedHRP)
	}
	if len(data) < 1 {
		return 0, nil, errors.Wrap(ErrInvalidLength, "missing witness version")
	}

	witnessVersion = data[0]
	if witnessVersion > 16 {
		return 0, nil, ErrInvalidWitnessVersion
	}
	if witnessVersion == 0 && checksumVersion != VersionOriginal {
		return 0, nil, errors.Errorf("version 0 witness program encoded with bech32m")
	}
	if witnessVersion > 0 && checksumVersion != VersionM {
		return 0, nil, errors.Errorf("version %d witness program encoded with bech32", witnessVersion)
	}

	program, err = ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, errors.Wrap(err, "converting witness program to bytes")
	}
	if err := validateWitness(witnessVersion, program); err != nil {
		return 0, nil, err
	}
	return witnessVersion, program, nil
}

func validateWitness(witnessVersion byte, program []byte) error {
	if witnessVersion > 16 {
		return ErrInvalidWitnessVersion
	}
	if witnessVersion == 0 {
		if len(program) != 20 && len(program) != 32 {
			return errors.Wrapf(ErrInvalidProgramLength,
				"version 0 program must be 20 or 32 bytes, got %d", len(program))
		}
		return nil
	}
	if len(program) < 2 || len(program) > 40 {
		return errors.Wrapf(ErrInvalidProgramLength,
			"program must be 2-40 bytes, got %d", len(program))
	}
	return nil
}
