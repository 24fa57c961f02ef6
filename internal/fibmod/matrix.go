package fibmod

import (
	apperrors "github.com/agbru/fibmod/internal/errors"
)

// mat2 is a 2x2 matrix over Z/mZ, stored row-major.
type mat2 [2][2]uint64

// mulMat2 returns (a * b) mod m. All entries of a and b must already be
// reduced below m.
func mulMat2(a, b mat2, m uint64) mat2 {
	var r mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = addMod(mulMod(a[i][0], b[0][j], m), mulMod(a[i][1], b[1][j], m), m)
		}
	}
	return r
}

// MatrixFibMod computes F(n) mod m by exponentiating the Fibonacci
// companion matrix:
//
//	[ 0 1 ]^n = [ F(n-1) F(n)   ]
//	[ 1 1 ]     [ F(n)   F(n+1) ]
//
// It is asymptotically equivalent to fast doubling (O(log n) widened
// multiplications) but constant-factor slower, which makes it a useful
// independent cross-check for the doubling backends.
//
// Parameters:
//   - n: The index of the Fibonacci number to compute.
//   - m: The modulus. Must be >= 1.
//
// Returns:
//   - uint64: F(n) mod m.
//   - error: A ValidationError if m is zero.
func MatrixFibMod(n, m uint64) (uint64, error) {
	if m == 0 {
		return 0, apperrors.ErrZeroModulus
	}
	if m == 1 {
		return 0, nil
	}
	if n <= 1 {
		return n % m, nil
	}

	base := mat2{{0, 1}, {1, 1}}
	// Identity matrix; entries are below m because m >= 2 here.
	acc := mat2{{1, 0}, {0, 1}}

	// Square-and-multiply, LSB first.
	for e := n; e > 0; e >>= 1 {
		if e&1 == 1 {
			acc = mulMat2(acc, base, m)
		}
		base = mulMat2(base, base, m)
	}

	return acc[0][1], nil
}
