package fibmod

import (
	"math/bits"

	apperrors "github.com/agbru/fibmod/internal/errors"
)

// FixedFibMod computes F(n) mod m over native unsigned 64-bit arithmetic
// using the fast doubling algorithm.
//
// Uses the identities:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))  mod m
//	F(2k+1) = F(k+1)² + F(k)²            mod m
//
// Every intermediate value is reduced modulo m immediately, so all operands
// stay below m. Multiplication widens to 128 bits (bits.Mul64/bits.Div64)
// before reduction, and additions carry through bits.Add64, so no step can
// wrap even for m close to the maximum uint64 value.
//
// Parameters:
//   - n: The index of the Fibonacci number to compute.
//   - m: The modulus. Must be >= 1.
//
// Returns:
//   - uint64: F(n) mod m.
//   - error: A ValidationError if m is zero.
func FixedFibMod(n, m uint64) (uint64, error) {
	if m == 0 {
		return 0, apperrors.ErrZeroModulus
	}
	if m == 1 {
		return 0, nil
	}

	// Invariant pair: fk = F(k) mod m, fk1 = F(k+1) mod m.
	fk := uint64(0)
	fk1 := uint64(1)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// F(2k) = F(k) * (2*F(k+1) - F(k)) mod m
		c := mulMod(fk, subMod(addMod(fk1, fk1, m), fk, m), m)
		// F(2k+1) = F(k+1)² + F(k)² mod m
		d := addMod(mulMod(fk, fk, m), mulMod(fk1, fk1, m), m)

		fk, fk1 = c, d

		// If bit is set: shift to F(2k+1), F(2k+2)
		if (n>>uint(i))&1 == 1 {
			fk, fk1 = fk1, addMod(fk, fk1, m)
		}
	}

	return fk, nil
}

// mulMod returns (a * b) mod m using a widened 128-bit intermediate.
// Requires a < m and b < m, which guarantees the high word of the product
// is below m, the precondition of bits.Div64.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// addMod returns (a + b) mod m for a, b < m. The raw sum can reach 2m-2,
// which may exceed 64 bits, so the carry from bits.Add64 participates in
// the reduction decision.
func addMod(a, b, m uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum >= m {
		// With a, b < m the true sum is below 2m, so a single
		// subtraction reduces it. The uint64 wraparound cancels
		// exactly when carry is set.
		sum -= m
	}
	return sum
}

// subMod returns (a - b) mod m for a, b < m, adding m before subtracting
// when a < b so the operand fed to multiplication is never negative.
func subMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (m - b)
}
