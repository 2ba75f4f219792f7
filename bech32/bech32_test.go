package bech32

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestDecodeValidStrings(t *testing.T) {
	tests := []struct {
		encoded string
		version Version
	}{
		// BIP-173.
		{"A12UEL5L", VersionOriginal},
		{"a12uel5l", VersionOriginal},
		{"abcdef1qpzry9x8gf2tvdw0s3jn54khce6mua7lmqqqxw", VersionOriginal},
		{"split1checkupstagehandshakeupstreamerranterredcaperred2y9e3w", VersionOriginal},
		// BIP-350.
		{"A1LQFN3A", VersionM},
		{"a1lqfn3a", VersionM},
		{"abcdef1l7aum6echk45nj3s0wdvt2fg8x9yrzpqzd3ryx", VersionM},
		{"split1checkupstagehandshakeupstreamerranterredcaperredlc445v", VersionM},
	}
	for _, test := range tests {
		hrp, data, version, err := Decode(test.encoded)
		if err != nil {
			t.Fatalf("Decode(%q): %+v", test.encoded, err)
		}
		if version != test.version {
			t.Fatalf("Decode(%q): detected variant %d, want %d", test.encoded, version, test.version)
		}

		reencoded, err := Encode(hrp, data, version)
		if err != nil {
			t.Fatalf("Encode(%q, ...): %+v", hrp, err)
		}
		if reencoded != strings.ToLower(test.encoded) {
			t.Fatalf("re-encoding %q gave %q", test.encoded, reencoded)
		}
	}
}

func TestDecodeInvalidStrings(t *testing.T) {
	tests := []string{
		"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5", // corrupted checksum
		"A12ueL5L",  // mixed case
		"pzry9x0s0muk",  // no separator
		"1pzry9x0s0muk", // empty hrp
		"x1b4n0q5v",     // invalid data character
		"li1dgmt3",      // checksum too short
		strings.Repeat("a", 85) + "1qqqqqq", // longer than 90 characters
	}
	for _, test := range tests {
		if _, _, _, err := Decode(test); err == nil {
			t.Fatalf("Decode(%q): expected an error", test)
		}
	}
}

func TestSegWitAddresses(t *testing.T) {
	tests := []struct {
		address string
		hrp     string
		version byte
		program string
	}{
		{"BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4", "bc", 0,
			"751e76e8199196d454941c45d1b3a323f1433bd6"},
		{"tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sl5k7", "tb", 0,
			"1863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262"},
		{"bc1pw508d6qejxtdg4y5r3zarvary0c5xw7kw508d6qejxtdg4y5r3zarvary0c5xw7kt5nd6y", "bc", 1,
			"751e76e8199196d454941c45d1b3a323f1433bd6751e76e8199196d454941c45d1b3a323f1433bd6"},
		{"BC1SW50QGDZ25J", "bc", 16, "751e"},
		{"bc1zw508d6qejxtdg4y5r3zarvaryvaxxpcs", "bc", 2, "751e76e8199196d454941c45d1b3a323"},
		{"tb1pqqqqp399et2xygdj5xreqhjjvcmzhxw4aywxecjdzew6hylgvsesf3hn0c", "tb", 1,
			"000000c4a5cad46221b2a187905e5266362b99d5e91c6ce24d165dab93e86433"},
	}
	for _, test := range tests {
		version, program, err := DecodeSegWitAddress(test.hrp, test.address)
		if err != nil {
			t.Fatalf("DecodeSegWitAddress(%q): %+v", test.address, err)
		}
		wantProgram, _ := hex.DecodeString(test.program)
		if version != test.version || !bytes.Equal(program, wantProgram) {
			t.Fatalf("DecodeSegWitAddress(%q): got version %d program %x, want %d %s",
				test.address, version, program, test.version, test.program)
		}

		reencoded, err := EncodeSegWitAddress(test.hrp, version, program)
		if err != nil {
			t.Fatalf("EncodeSegWitAddress(%q, %d, %x): %+v", test.hrp, version, program, err)
		}
		if reencoded != strings.ToLower(test.address) {
			t.Fatalf("re-encoding %q gave %q", test.address, reencoded)
		}
	}
}

func TestSegWitValidation(t *testing.T) {
	program20 := make([]byte, 20)
	program32 := make([]byte, 32)

	if _, err := EncodeSegWitAddress("bc", 17, program20); errors.Cause(err) != ErrInvalidWitnessVersion {
		t.Fatalf("version 17: got %v, want ErrInvalidWitnessVersion", err)
	}
	if _, err := EncodeSegWitAddress("bc", 0, make([]byte, 25)); errors.Cause(err) != ErrInvalidProgramLength {
		t.Fatalf("version 0 with 25-byte program: got %v, want ErrInvalidProgramLength", err)
	}
	if _, err := EncodeSegWitAddress("bc", 1, make([]byte, 1)); errors.Cause(err) != ErrInvalidProgramLength {
		t.Fatalf("version 1 with 1-byte program: got %v, want ErrInvalidProgramLength", err)
	}
	if _, err := EncodeSegWitAddress("bc", 1, make([]byte, 41)); errors.Cause(err) != ErrInvalidProgramLength {
		t.Fatalf("version 1 with 41-byte program: got %v, want ErrInvalidProgramLength", err)
	}

	// A version 0 address carrying a bech32m checksum must be rejected and
	// vice versa.
	data, err := ConvertBits(program20, 8, 5, true)
	if err != nil {
		t.Fatalf("ConvertBits: %+v", err)
	}
	wrongChecksum, err := Encode("bc", append([]byte{0}, data...), VersionM)
	if err != nil {
		t.Fatalf("Encode: %+v", err)
	}
	if _, _, err := DecodeSegWitAddress("bc", wrongChecksum); err == nil {
		t.Fatalf("version 0 address with bech32m checksum was accepted")
	}

	// Wrong network prefix.
	address, err := EncodeSegWitAddress("bc", 0, program32)
	if err != nil {
		t.Fatalf("EncodeSegWitAddress: %+v", err)
	}
	if _, _, err := DecodeSegWitAddress("tb", address); err == nil {
		t.Fatalf("mainnet address accepted for testnet hrp")
	}
}

func TestConvertBits(t *testing.T) {
	// 8->5->8 round trip without loss.
	input := []byte{0xff, 0x00, 0xab, 0xcd, 0xef, 0x12}
	groups, err := ConvertBits(input, 8, 5, true)
	if err != nil {
		t.Fatalf("ConvertBits to 5: %+v", err)
	}
	back, err := ConvertBits(groups, 5, 8, false)
	if err != nil {
		t.Fatalf("ConvertBits to 8: %+v", err)
	}
	if !bytes.Equal(back, input) {
		t.Fatalf("round trip gave %x, want %x", back, input)
	}

	// Non-zero discarded padding must be rejected.
	if _, err := ConvertBits([]byte{0x1f}, 5, 8, false); errors.Cause(err) != ErrInvalidBitGroups {
		t.Fatalf("non-zero padding: got %v, want ErrInvalidBitGroups", err)
	}

	// Out-of-range source values must be rejected.
	if _, err := ConvertBits([]byte{32}, 5, 8, false); err == nil {
		t.Fatalf("6-bit value accepted in 5-bit input")
	}
}
