// Package field implements modular arithmetic over a fixed modulus on top of
// bigint. A Field owns its modulus for its lifetime and guarantees every
// result it returns lies in [0, modulus).
package field

import (
	"github.com/keyfold/keyfold/bigint"
	"github.com/pkg/errors"
)

// ErrNoInverse is returned by Inverse when the element shares a factor with
// the modulus, including zero. Callers treat it as a recoverable outcome, not
// a failure of the field itself.
var ErrNoInverse = errors.New("element has no modular inverse")

// Field performs arithmetic modulo a fixed modulus. It is stateless apart
// from the modulus and safe for concurrent use.
type Field struct {
	modulus bigint.Int
}

// New returns a Field reducing modulo m. New panics when m is zero, since a
// zero modulus makes every operation undefined.
func New(m bigint.Int) Field {
	if m.IsZero() {
		panic("field: zero modulus")
	}
	return Field{modulus: m}
}

// Modulus returns the field's modulus.
func (f Field) Modulus() bigint.Int {
	return f.modulus
}

// Reduce returns a mod m.
func (f Field) Reduce(a bigint.Int) bigint.Int {
	return a.Mod(f.modulus)
}

// Add returns (a + b) mod m.
func (f Field) Add(a, b bigint.Int) bigint.Int {
	return f.Reduce(a.Add(b))
}

// Sub returns (a - b) mod m. The modulus is added before subtracting so the
// underlying unsigned subtraction can never underflow.
func (f Field) Sub(a, b bigint.Int) bigint.Int {
	a = f.Reduce(a)
	b = f.Reduce(b)
	return f.Reduce(a.Add(f.modulus).Sub(b))
}

// Mul returns (a * b) mod m.
func (f Field) Mul(a, b bigint.Int) bigint.Int {
	return f.Reduce(a.Mul(b))
}

// Exp returns base^exponent mod m using right-to-left binary
// square-and-multiply, one modular multiplication per exponent bit.
func (f Field) Exp(base, exponent bigint.Int) bigint.Int {
	result := bigint.One()
	if f.modulus.Equal(bigint.One()) {
		return bigint.Zero()
	}
	base = f.Reduce(base)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result = f.Mul(result, base)
		}
		base = f.Mul(base, base)
	}
	return result
}

// Negate returns m - (a mod m), or zero when a is a multiple of m.
func (f Field) Negate(a bigint.Int) bigint.Int {
	a = f.Reduce(a)
	if a.IsZero() {
		return bigint.Zero()
	}
	return f.modulus.Sub(a)
}

// Inverse returns a^-1 mod m via the extended Euclidean algorithm, so that
// Mul(a, Inverse(a)) == 1. It returns ErrNoInverse when gcd(a, m) != 1.
func (f Field) Inverse(a bigint.Int) (bigint.Int, error) {
	a = f.Reduce(a)
	if a.IsZero() {
		return bigint.Int{}, errors.Wrap(ErrNoInverse, "zero element")
	}

	// Iterate gcd(r0, r1) while tracking only the coefficient of a. The
	// coefficients can go negative, so each is kept as a magnitude plus sign.
	r0, r1 := f.modulus, a
	t0, t1 := bigint.Zero(), bigint.One()
	t0Neg, t1Neg := false, false

	for !r1.IsZero() {
		quotient, remainder := r0.DivMod(r1)
		r0, r1 = r1, remainder

		// t0 - quotient*t1 in signed magnitude form.
		qt1 := quotient.Mul(t1)
		var next bigint.Int
		var nextNeg bool
		if t0Neg == t1Neg {
			if t0.Cmp(qt1) >= 0 {
				next = t0.Sub(qt1)
				nextNeg = t0Neg
			} else {
				next = qt1.Sub(t0)
				nextNeg = !t0Neg
			}
		} else {
			next = t0.Add(qt1)
			nextNeg = t0Neg
		}
		t0, t1 = t1, next
		t0Neg, t1Neg = t1Neg, nextNeg
	}

	if !r0.Equal(bigint.One()) {
		return bigint.Int{}, errors.Wrapf(ErrNoInverse, "gcd with modulus is %s", r0)
	}

	inverse := f.Reduce(t0)
	if t0Neg && !inverse.IsZero() {
		inverse = f.modulus.Sub(inverse)
	}
	return inverse, nil
}
