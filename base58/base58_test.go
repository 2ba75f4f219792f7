package base58

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"

	btcbase58 "github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		hexInput string
		want     string
	}{
		{"", ""},
		{"61", "2g"},
		{"626262", "a3gV"},
		{"636363", "aPEr"},
		{"73696d706c792061206c6f6e6720737472696e67", "2cFupjhnEsSn59qHXstmK2ffpLv2"},
		{"00eb15231dfceb60925886b67d065299925915aeb172c06647", "1NS17iag9jJgTHD1VXjvLCEnZuQ3rJDE9L"},
		{"516b6fcd0f", "ABnLTmg"},
		{"bf4f89001e670274dd", "3SEo3LWLoPntC"},
		{"572e4794", "3EFU7m"},
		{"ecac89cad93923c02321", "EJDM8drfXA6uyA"},
		{"10c8511e", "Rt5zm"},
		{"00000000000000000000", "1111111111"},
	}
	for _, test := range tests {
		input, err := hex.DecodeString(test.hexInput)
		if err != nil {
			t.Fatalf("bad test input %q: %v", test.hexInput, err)
		}
		if got := Encode(input); got != test.want {
			t.Fatalf("Encode(%s): got %q, want %q", test.hexInput, got, test.want)
		}
		decoded, err := Decode(test.want)
		if err != nil {
			t.Fatalf("Decode(%q): %+v", test.want, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Fatalf("Decode(%q): got %x, want %s", test.want, decoded, test.hexInput)
		}
	}
}

func TestDecodeRejectsInvalidCharacters(t *testing.T) {
	for _, input := range []string{"0", "O", "I", "l", "3mJr0", "abc!"} {
		if _, err := Decode(input); err == nil {
			t.Fatalf("Decode(%q): expected an error", input)
		}
	}
}

func TestRoundTripAgainstBtcutil(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		input := make([]byte, rng.Intn(64))
		rng.Read(input)
		// Exercise the leading-zero path regularly.
		if i%3 == 0 && len(input) > 2 {
			input[0], input[1] = 0, 0
		}

		got := Encode(input)
		if want := btcbase58.Encode(input); got != want {
			t.Fatalf("Encode(%x): got %q, btcutil says %q", input, got, want)
		}
		decoded, err := Decode(got)
		if err != nil {
			t.Fatalf("Decode(%q): %+v", got, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Fatalf("round trip of %x gave %x", input, decoded)
		}
	}
}

func TestCheckEncodeDecode(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	encoded := CheckEncode(payload, 0x00)
	if want := btcbase58.CheckEncode(payload, 0x00); encoded != want {
		t.Fatalf("CheckEncode: got %q, btcutil says %q", encoded, want)
	}

	result, version, err := CheckDecode(encoded)
	if err != nil {
		t.Fatalf("CheckDecode(%q): %+v", encoded, err)
	}
	if version != 0x00 || !bytes.Equal(result, payload) {
		t.Fatalf("CheckDecode: got version %d payload %x", version, result)
	}
}

// Any single-character corruption of a valid Base58Check string must fail to
// decode, either as an alphabet error or a checksum error.
func TestCheckDecodeRejectsCorruption(t *testing.T) {
	encoded := CheckEncode([]byte("some check encoded payload"), 0x80)
	for i := 0; i < len(encoded); i++ {
		for _, replacement := range []byte{'1', 'z', 'Q'} {
			if encoded[i] == replacement {
				continue
			}
			corrupted := encoded[:i] + string(replacement) + encoded[i+1:]
			if _, _, err := CheckDecode(corrupted); err == nil {
				t.Fatalf("CheckDecode accepted corrupted input %q", corrupted)
			}
		}
	}
}

func TestCheckDecodeErrors(t *testing.T) {
	if _, _, err := CheckDecode("3MNQE1X"); errors.Cause(err) != ErrChecksum {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
	if _, _, err := CheckDecode("1"); errors.Cause(err) != ErrInvalidFormat {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
