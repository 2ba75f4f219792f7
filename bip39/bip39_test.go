package bip39

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	reference "github.com/tyler-smith/go-bip39"
)

// Vectors from the BIP-39 reference test set (passphrase "TREZOR").
func TestMnemonicVectors(t *testing.T) {
	tests := []struct {
		entropy  string
		mnemonic string
		seed     string
	}{
		{
			"00000000000000000000000000000000",
			"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
			"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		},
		{
			"ffffffffffffffffffffffffffffffff",
			"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
			"ac27495480225222079d7be181583751e86f571027b0497b5b5d11218e0a8a13332572917f0f8e5a589620c6f15b11c61dee327651a14c34e18231052e48c069",
		},
		{
			"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			strings.TrimSpace(strings.Repeat("zoo ", 23)) + " vote",
			"dd48c104698c30cfe2b6142103248622fb7bb0ff692eebb00089b32d22484e1613912f0a5b694407be899ffd31ed3992c456cdf60f5d4564b8ba3f05a69890ad",
		},
	}
	for _, test := range tests {
		entropy, err := hex.DecodeString(test.entropy)
		if err != nil {
			t.Fatalf("bad test entropy: %v", err)
		}

		mnemonic, err := NewMnemonic(entropy)
		if err != nil {
			t.Fatalf("NewMnemonic(%s): %+v", test.entropy, err)
		}
		if mnemonic != test.mnemonic {
			t.Fatalf("NewMnemonic(%s):\ngot  %q\nwant %q", test.entropy, mnemonic, test.mnemonic)
		}

		recovered, err := EntropyFromMnemonic(mnemonic)
		if err != nil {
			t.Fatalf("EntropyFromMnemonic: %+v", err)
		}
		if !bytes.Equal(recovered, entropy) {
			t.Fatalf("entropy round trip gave %x, want %s", recovered, test.entropy)
		}

		seed, err := NewSeed(mnemonic, "TREZOR")
		if err != nil {
			t.Fatalf("NewSeed: %+v", err)
		}
		if hex.EncodeToString(seed) != test.seed {
			t.Fatalf("NewSeed(%q): got %x, want %s", mnemonic, seed, test.seed)
		}
	}
}

func TestSeedWithEmptyPassphrase(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	seed, err := NewSeed(mnemonic, "")
	if err != nil {
		t.Fatalf("NewSeed: %+v", err)
	}
	want := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc1" +
		"9a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	if hex.EncodeToString(seed) != want {
		t.Fatalf("seed with empty passphrase: got %x, want %s", seed, want)
	}
}

func TestDeterminism(t *testing.T) {
	entropy, err := NewEntropy(128)
	if err != nil {
		t.Fatalf("NewEntropy: %+v", err)
	}
	first, err := NewMnemonic(entropy)
	if err != nil {
		t.Fatalf("NewMnemonic: %+v", err)
	}
	second, err := NewMnemonic(entropy)
	if err != nil {
		t.Fatalf("NewMnemonic: %+v", err)
	}
	if first != second {
		t.Fatalf("same entropy produced different mnemonics")
	}
	if got := len(strings.Fields(first)); got != 12 {
		t.Fatalf("128-bit entropy produced %d words, want 12", got)
	}
}

func TestAgainstReferenceImplementation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, bits := range []int{128, 160, 192, 224, 256} {
		entropy := make([]byte, bits/8)
		rng.Read(entropy)

		mnemonic, err := NewMnemonic(entropy)
		if err != nil {
			t.Fatalf("NewMnemonic(%d bits): %+v", bits, err)
		}
		want, err := reference.NewMnemonic(entropy)
		if err != nil {
			t.Fatalf("reference NewMnemonic: %v", err)
		}
		if mnemonic != want {
			t.Fatalf("mnemonic for %x:\ngot  %q\nwant %q", entropy, mnemonic, want)
		}

		seed, err := NewSeed(mnemonic, "pass")
		if err != nil {
			t.Fatalf("NewSeed: %+v", err)
		}
		wantSeed := reference.NewSeed(mnemonic, "pass")
		if !bytes.Equal(seed, wantSeed) {
			t.Fatalf("seed disagrees with reference implementation")
		}
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := NewEntropy(100); errors.Cause(err) != ErrInvalidEntropy {
		t.Fatalf("NewEntropy(100): got %v, want ErrInvalidEntropy", err)
	}
	if _, err := NewMnemonic(make([]byte, 17)); errors.Cause(err) != ErrInvalidEntropy {
		t.Fatalf("NewMnemonic of 17 bytes: got %v, want ErrInvalidEntropy", err)
	}

	badMnemonics := []string{
		"",
		"abandon abandon",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", // 13 words
		"notaword abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		// Valid words, broken checksum.
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
	}
	for _, mnemonic := range badMnemonics {
		if _, err := EntropyFromMnemonic(mnemonic); errors.Cause(err) != ErrInvalidMnemonic {
			t.Fatalf("EntropyFromMnemonic(%q): got %v, want ErrInvalidMnemonic", mnemonic, err)
		}
		if IsMnemonicValid(mnemonic) {
			t.Fatalf("IsMnemonicValid(%q) returned true", mnemonic)
		}
	}
}
