package fibmod

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	apperrors "github.com/agbru/fibmod/internal/errors"
)

// fibLinearModBig computes F(n) mod m by the defining linear recurrence
// over big.Int values.
func fibLinearModBig(n uint64, m *big.Int) *big.Int {
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a.Mod(a, m)
		a, b = b, a
	}
	return a.Mod(a, m)
}

func TestBigFibMod_KnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    uint64
		mod  int64
		want int64
	}{
		{0, 5, 0},
		{1, 5, 1},
		{10, 5, 0},
		{10, 1000, 55},
		{50, 1_000_000_007, 586268941},
		{100, 1_000_000_000, 261915075},
		{100, 10_000, 5075},
		{1000, 1_000_000, 228875},
		{1_000_000_000_000_000, 1_000_000, 546875},
		{1_000_000_000_000_001, 1_000_000, 937501},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("N=%d_mod_%d", tc.n, tc.mod), func(t *testing.T) {
			t.Parallel()
			result, err := BigFibMod(new(big.Int).SetUint64(tc.n), big.NewInt(tc.mod))
			if err != nil {
				t.Fatalf("BigFibMod error: %v", err)
			}
			if result.Int64() != tc.want {
				t.Errorf("BigFibMod(%d, %d) = %d, want %d", tc.n, tc.mod, result.Int64(), tc.want)
			}
		})
	}
}

func TestBigFibMod_MatchesLinearRecurrence(t *testing.T) {
	t.Parallel()

	// F(1000) mod 97 cross-checked against 1000 steps of the defining
	// recurrence computed mod 97.
	m := big.NewInt(97)
	want := fibLinearModBig(1000, m)

	got, err := BigFibMod(big.NewInt(1000), m)
	if err != nil {
		t.Fatalf("BigFibMod error: %v", err)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("BigFibMod(1000, 97) = %s, want %s", got, want)
	}
}

func TestBigFibMod_InvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    *big.Int
		m    *big.Int
	}{
		{"nil modulus", big.NewInt(10), nil},
		{"zero modulus", big.NewInt(10), big.NewInt(0)},
		{"negative modulus", big.NewInt(10), big.NewInt(-5)},
		{"nil index", nil, big.NewInt(7)},
		{"negative index", big.NewInt(-1), big.NewInt(7)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BigFibMod(tt.n, tt.m)
			if err == nil {
				t.Fatal("expected error")
			}
			var verr apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestBigFibMod_DoesNotMutateArguments(t *testing.T) {
	t.Parallel()

	n := big.NewInt(12345)
	m := big.NewInt(1_000_003)
	nCopy := new(big.Int).Set(n)
	mCopy := new(big.Int).Set(m)

	if _, err := BigFibMod(n, m); err != nil {
		t.Fatalf("BigFibMod error: %v", err)
	}
	if n.Cmp(nCopy) != 0 {
		t.Errorf("index argument mutated: %s != %s", n, nCopy)
	}
	if m.Cmp(mCopy) != 0 {
		t.Errorf("modulus argument mutated: %s != %s", m, mCopy)
	}
}

// TestBigFibMod_IndexBeyondUint64 verifies the arbitrary-precision backend
// on indices that do not fit 64 bits, using the Pisano period: the sequence
// mod 10 has period 60, so F(n) mod 10 equals F(n mod 60) mod 10.
func TestBigFibMod_IndexBeyondUint64(t *testing.T) {
	t.Parallel()

	ten := big.NewInt(10)
	sixty := big.NewInt(60)

	// n = 10^30 + 7
	n, _ := new(big.Int).SetString("1000000000000000000000000000007", 10)

	reduced := new(big.Int).Mod(n, sixty)
	want, err := BigFibMod(reduced, ten)
	if err != nil {
		t.Fatalf("BigFibMod(reduced) error: %v", err)
	}

	got, err := BigFibMod(n, ten)
	if err != nil {
		t.Fatalf("BigFibMod error: %v", err)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("BigFibMod(10^30+7, 10) = %s, want %s (Pisano reduction)", got, want)
	}
}

// TestBigFibMod_OperandsStayReduced verifies the memory bound: results are
// always below the modulus, even for a modulus of several hundred bits.
func TestBigFibMod_OperandsStayReduced(t *testing.T) {
	t.Parallel()

	m := new(big.Int).Lsh(big.NewInt(1), 300)
	m.Sub(m, big.NewInt(153)) // arbitrary 300-bit modulus

	for _, n := range []int64{0, 1, 2, 1000, 100_000} {
		got, err := BigFibMod(big.NewInt(n), m)
		if err != nil {
			t.Fatalf("BigFibMod(%d) error: %v", n, err)
		}
		if got.Sign() < 0 || got.Cmp(m) >= 0 {
			t.Errorf("BigFibMod(%d) = %s not in [0, m)", n, got)
		}
	}
}
