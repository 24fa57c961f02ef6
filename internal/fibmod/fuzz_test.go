package fibmod

import (
	"math/big"
	"testing"
)

// FuzzBackendConsistency verifies that the uint64 fast-doubling kernel, the
// matrix-exponentiation kernel and the big.Int kernel produce identical
// results over their shared domain. This fuzz test helps catch edge cases
// in the 128-bit reduction paths that unit tests might not cover.
func FuzzBackendConsistency(f *testing.F) {
	// Seed corpus with known interesting values
	f.Add(uint64(0), uint64(1))
	f.Add(uint64(1), uint64(1))
	f.Add(uint64(10), uint64(10))
	f.Add(uint64(50), uint64(1_000_000_007))
	f.Add(uint64(93), uint64(1)<<63)          // F(93) is the largest Fibonacci fitting uint64
	f.Add(uint64(94), ^uint64(0))             // first index that overflows without reduction
	f.Add(uint64(1_000_000_000_000_000), uint64(1_000_000))
	f.Add(^uint64(0), ^uint64(0))

	f.Fuzz(func(t *testing.T, n, m uint64) {
		if m == 0 {
			// Zero modulus must be rejected identically everywhere.
			if _, err := FixedFibMod(n, m); err == nil {
				t.Errorf("FixedFibMod(%d, 0) accepted a zero modulus", n)
			}
			if _, err := MatrixFibMod(n, m); err == nil {
				t.Errorf("MatrixFibMod(%d, 0) accepted a zero modulus", n)
			}
			return
		}

		fixed, err := FixedFibMod(n, m)
		if err != nil {
			t.Fatalf("FixedFibMod(%d, %d) failed: %v", n, m, err)
		}
		matrix, err := MatrixFibMod(n, m)
		if err != nil {
			t.Fatalf("MatrixFibMod(%d, %d) failed: %v", n, m, err)
		}
		if fixed != matrix {
			t.Errorf("Inconsistent results for n=%d m=%d:\n  FastDoubling: %d\n  Matrix:       %d",
				n, m, fixed, matrix)
		}

		bigResult, err := BigFibMod(new(big.Int).SetUint64(n), new(big.Int).SetUint64(m))
		if err != nil {
			t.Fatalf("BigFibMod(%d, %d) failed: %v", n, m, err)
		}
		if !bigResult.IsUint64() || bigResult.Uint64() != fixed {
			t.Errorf("Inconsistent results for n=%d m=%d:\n  Fixed64: %d\n  BigInt:  %s",
				n, m, fixed, bigResult)
		}

		// Sanity: results are always reduced.
		if fixed >= m {
			t.Errorf("result %d out of range [0, %d)", fixed, m)
		}
	})
}

// FuzzFixedRecurrence verifies the defining recurrence F(n+2) = F(n+1) + F(n)
// mod m for random inputs.
func FuzzFixedRecurrence(f *testing.F) {
	f.Add(uint64(0), uint64(2))
	f.Add(uint64(1), uint64(1000))
	f.Add(uint64(100), uint64(10_000))
	f.Add(uint64(93), uint64(1_000_000))
	f.Add(uint64(1)<<40, ^uint64(0))

	f.Fuzz(func(t *testing.T, n, m uint64) {
		if m == 0 || n > ^uint64(0)-2 {
			t.Skip()
		}

		fn, err := FixedFibMod(n, m)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		fn1, err := FixedFibMod(n+1, m)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		fn2, err := FixedFibMod(n+2, m)
		if err != nil {
			t.Fatalf("error: %v", err)
		}
		if fn2 != addMod(fn, fn1, m) {
			t.Errorf("Recurrence violated for n=%d m=%d: F(n)=%d F(n+1)=%d F(n+2)=%d",
				n, m, fn, fn1, fn2)
		}
	})
}
