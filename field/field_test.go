package field

import (
	"testing"

	"github.com/keyfold/keyfold/bigint"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
)

func TestAddSubMul(t *testing.T) {
	f := New(bigint.FromUint64(97))
	tests := []struct {
		op      string
		a, b    uint64
		want    uint64
		compute func(a, b bigint.Int) bigint.Int
	}{
		{"add", 96, 1, 0, f.Add},
		{"add", 50, 60, 13, f.Add},
		{"sub", 3, 5, 95, f.Sub},
		{"sub", 5, 3, 2, f.Sub},
		{"sub", 0, 96, 1, f.Sub},
		{"mul", 10, 10, 3, f.Mul},
		{"mul", 96, 96, 1, f.Mul},
	}
	for _, test := range tests {
		got := test.compute(bigint.FromUint64(test.a), bigint.FromUint64(test.b))
		if !got.Equal(bigint.FromUint64(test.want)) {
			t.Fatalf("%s(%d, %d) mod 97: got %s, want %d", test.op, test.a, test.b, got, test.want)
		}
	}
}

func TestExp(t *testing.T) {
	f := New(bigint.FromUint64(1000000007))
	tests := []struct {
		base, exponent, want uint64
	}{
		{2, 10, 1024},
		{5, 0, 1},
		{1000000008, 1, 1},
		{3, 1000000006, 1}, // Fermat: 3^(p-1) == 1 mod p
		{2, 100, 976371285},
	}
	for _, test := range tests {
		got := f.Exp(bigint.FromUint64(test.base), bigint.FromUint64(test.exponent))
		if !got.Equal(bigint.FromUint64(test.want)) {
			t.Fatalf("Exp(%d, %d): got %s, want %d", test.base, test.exponent, got, test.want)
		}
	}
}

func TestInverse(t *testing.T) {
	f := New(Secp256k1Order())
	for _, hexValue := range []string{
		"1",
		"2",
		"deadbeef",
		"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140", // n - 1
	} {
		a := bigint.MustFromHex(hexValue)
		inverse, err := f.Inverse(a)
		if err != nil {
			t.Fatalf("Inverse(%s): %+v", hexValue, err)
		}
		if product := f.Mul(a, inverse); !product.Equal(bigint.One()) {
			t.Fatalf("Inverse(%s): a * a^-1 == %s, want 1", hexValue, product)
		}
	}
}

func TestInverseNotCoprime(t *testing.T) {
	f := New(bigint.FromUint64(100))
	for _, value := range []uint64{0, 10, 25, 200} {
		_, err := f.Inverse(bigint.FromUint64(value))
		if errors.Cause(err) != ErrNoInverse {
			t.Fatalf("Inverse(%d) mod 100: got %v, want ErrNoInverse", value, err)
		}
	}
}

func TestNegate(t *testing.T) {
	f := New(bigint.FromUint64(97))
	if got := f.Negate(bigint.Zero()); !got.IsZero() {
		t.Fatalf("Negate(0): got %s, want 0", got)
	}
	if got := f.Negate(bigint.FromUint64(97)); !got.IsZero() {
		t.Fatalf("Negate(m): got %s, want 0", got)
	}
	if got := f.Negate(bigint.FromUint64(1)); !got.Equal(bigint.FromUint64(96)) {
		t.Fatalf("Negate(1): got %s, want 96", got)
	}
}

func TestFieldProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	f := New(Secp256k1Order())
	genElement := gen.SliceOfN(32, gen.UInt8()).Map(func(buf []uint8) bigint.Int {
		return f.Reduce(bigint.FromBytes(buf))
	})

	properties.Property("multiply by inverse gives one", prop.ForAll(
		func(a bigint.Int) bool {
			if a.IsZero() {
				return true
			}
			inverse, err := f.Inverse(a)
			if err != nil {
				return false
			}
			return f.Mul(a, inverse).Equal(bigint.One())
		}, genElement))

	properties.Property("negate is self-inverse", prop.ForAll(
		func(a bigint.Int) bool {
			return f.Negate(f.Negate(a)).Equal(a)
		}, genElement))

	properties.Property("exp with small exponents matches repeated mul", prop.ForAll(
		func(a bigint.Int) bool {
			return f.Exp(a, bigint.Zero()).Equal(bigint.One()) &&
				f.Exp(a, bigint.One()).Equal(a) &&
				f.Exp(a, bigint.FromUint64(3)).Equal(f.Mul(f.Mul(a, a), a))
		}, genElement))

	properties.Property("sub then add returns the original", prop.ForAll(
		func(a, b bigint.Int) bool {
			return f.Add(f.Sub(a, b), b).Equal(a)
		}, genElement, genElement))

	properties.TestingRun(t)
}
