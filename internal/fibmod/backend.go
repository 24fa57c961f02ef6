// Package fibmod computes the n-th Fibonacci number modulo an arbitrary
// positive integer in O(log n) multiplications. It exposes two pure entry
// points — FixedFibMod over native uint64 arithmetic and BigFibMod over
// math/big — plus a registry of uniformly-typed backends used by the CLI
// and the HTTP server. All backends implement the same fast-doubling (or
// matrix-power) recurrence; they differ only in the underlying integer
// representation and its multiply-and-reduce primitive.
package fibmod

import (
	"context"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	apperrors "github.com/agbru/fibmod/internal/errors"
)

var (
	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibmod_computations_total",
			Help: "The total number of modular Fibonacci computations processed",
		},
		[]string{"backend", "status"},
	)
	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fibmod_computation_duration_seconds",
			Help: "The duration of modular Fibonacci computations in seconds",
		},
		[]string{"backend"},
	)
)

// Backend is the public interface of a modular Fibonacci computation
// backend. Inputs are never mutated; the result is freshly allocated.
type Backend interface {
	// FibMod computes F(n) mod m. The context is used for tracing only;
	// a computation either runs to completion in O(log n) bounded steps
	// or fails its precondition before starting.
	FibMod(ctx context.Context, n, m *big.Int) (*big.Int, error)

	// Name returns the display name of the backend (e.g. "Fixed64 (Fast Doubling)").
	Name() string
}

// coreBackend is the internal interface of a pure computation kernel.
type coreBackend interface {
	fibMod(n, m *big.Int) (*big.Int, error)
	Name() string
}

// instrumented wraps a coreBackend with the cross-cutting concerns every
// registry backend carries: an OpenTelemetry span, Prometheus counters and
// a debug log line.
type instrumented struct {
	core coreBackend
}

// NewBackend wraps a computation kernel into a Backend. It panics if core
// is nil, which would indicate a programming error in registration.
func NewBackend(core coreBackend) Backend {
	if core == nil {
		panic("fibmod: the coreBackend implementation cannot be nil")
	}
	return &instrumented{core: core}
}

// Name returns the name of the wrapped kernel.
func (b *instrumented) Name() string {
	return b.core.Name()
}

// FibMod delegates to the wrapped kernel, recording metrics and a span.
func (b *instrumented) FibMod(ctx context.Context, n, m *big.Int) (result *big.Int, err error) {
	tracer := otel.Tracer("fibmod")
	_, span := tracer.Start(ctx, "FibMod")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		name := b.core.Name()
		computationsTotal.WithLabelValues(name, status).Inc()
		computationDuration.WithLabelValues(name).Observe(duration)

		log.Debug().
			Str("backend", name).
			Float64("duration", duration).
			Str("status", status).
			Msg("computation completed")
	}()

	return b.core.fibMod(n, m)
}

// ─────────────────────────────────────────────────────────────────────────────
// Computation kernels
// ─────────────────────────────────────────────────────────────────────────────

// fixedCore adapts FixedFibMod to the uniform big.Int boundary. Inputs
// outside the 64-bit domain are a type-level constraint of this backend and
// are rejected before the computation starts.
type fixedCore struct{}

func (fixedCore) Name() string { return "Fixed64 (Fast Doubling)" }

func (fixedCore) fibMod(n, m *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() < 0 {
		return nil, apperrors.NewValidationError("n", "index must be a non-negative integer")
	}
	if m == nil || m.Sign() <= 0 {
		return nil, apperrors.ErrZeroModulus
	}
	if !n.IsUint64() {
		return nil, apperrors.NewValidationError("n", "index exceeds the 64-bit domain of this backend")
	}
	if !m.IsUint64() {
		return nil, apperrors.NewValidationError("mod", "modulus exceeds the 64-bit domain of this backend")
	}
	r, err := FixedFibMod(n.Uint64(), m.Uint64())
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(r), nil
}

// bigCore adapts BigFibMod.
type bigCore struct{}

func (bigCore) Name() string { return "BigInt (Fast Doubling)" }

func (bigCore) fibMod(n, m *big.Int) (*big.Int, error) {
	return BigFibMod(n, m)
}

// matrixCore adapts MatrixFibMod, subject to the same 64-bit domain
// constraint as fixedCore.
type matrixCore struct{}

func (matrixCore) Name() string { return "Fixed64 (Matrix Exponentiation)" }

func (matrixCore) fibMod(n, m *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() < 0 {
		return nil, apperrors.NewValidationError("n", "index must be a non-negative integer")
	}
	if m == nil || m.Sign() <= 0 {
		return nil, apperrors.ErrZeroModulus
	}
	if !n.IsUint64() {
		return nil, apperrors.NewValidationError("n", "index exceeds the 64-bit domain of this backend")
	}
	if !m.IsUint64() {
		return nil, apperrors.NewValidationError("mod", "modulus exceeds the 64-bit domain of this backend")
	}
	r, err := MatrixFibMod(n.Uint64(), m.Uint64())
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(r), nil
}
