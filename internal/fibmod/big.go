package fibmod

import (
	"math/big"
	"sync"

	apperrors "github.com/agbru/fibmod/internal/errors"
)

// bigState aggregates the temporaries of one fast-doubling run so they can
// be recycled through a sync.Pool. Every value held here is kept reduced
// modulo m, so retained capacity is bounded by the bit length of m.
type bigState struct {
	fk, fk1, t1, t2 *big.Int
}

// reset prepares the state for a new run: fk = F(0), fk1 = F(1).
func (s *bigState) reset() {
	s.fk.SetInt64(0)
	s.fk1.SetInt64(1)
	// t1 and t2 are scratch space and need no clearing.
}

var bigStatePool = sync.Pool{
	New: func() any {
		return &bigState{
			fk:  new(big.Int),
			fk1: new(big.Int),
			t1:  new(big.Int),
			t2:  new(big.Int),
		}
	},
}

// BigFibMod computes F(n) mod m over arbitrary-precision integers using the
// fast doubling algorithm. Both the index and the modulus are unbounded.
//
// Every intermediate is reduced modulo m immediately, so operand size stays
// bounded by the bit length of m across all O(log n) iterations; memory use
// does not grow with n.
//
// The inputs are not mutated and the returned value is freshly allocated.
//
// Parameters:
//   - n: The index of the Fibonacci number to compute. Must be non-negative.
//   - m: The modulus. Must be >= 1.
//
// Returns:
//   - *big.Int: F(n) mod m.
//   - error: A ValidationError if n is nil or negative, or if m is nil or
//     less than one.
func BigFibMod(n, m *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() < 0 {
		return nil, apperrors.NewValidationError("n", "index must be a non-negative integer")
	}
	if m == nil || m.Sign() <= 0 {
		return nil, apperrors.ErrZeroModulus
	}

	s := bigStatePool.Get().(*bigState)
	defer bigStatePool.Put(s)
	s.reset()

	fk, fk1, t1, t2 := s.fk, s.fk1, s.t1, s.t2

	for i := n.BitLen() - 1; i >= 0; i-- {
		// F(2k) = F(k) * (2*F(k+1) - F(k)) mod m
		// Adding m before the subtraction keeps the multiplication
		// operand non-negative: fk < m, so 2*fk1 + m - fk >= 0.
		t1.Lsh(fk1, 1)
		t1.Add(t1, m)
		t1.Sub(t1, fk)
		t1.Mod(t1, m)
		t1.Mul(t1, fk)
		t1.Mod(t1, m)

		// F(2k+1) = F(k+1)² + F(k)² mod m
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		t2.Mod(t2, m)

		fk.Set(t1)
		fk1.Set(t2)

		// If bit is set: shift to F(2k+1), F(2k+2)
		if n.Bit(i) == 1 {
			t1.Add(fk, fk1)
			t1.Mod(t1, m)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}

	// fk belongs to the pooled state; hand back a copy.
	return new(big.Int).Set(fk), nil
}
