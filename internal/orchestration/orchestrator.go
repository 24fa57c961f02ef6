// Package orchestration coordinates running one or several computation
// backends for a single request and cross-checking their results.
package orchestration

import (
	"context"
	"math/big"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibmod/internal/fibmod"
)

// Result holds the outcome of one backend run.
type Result struct {
	// Key is the registry name of the backend ("fixed", "big", ...).
	Key string
	// Name is the backend's display name.
	Name string
	// Value is F(n) mod m, nil when Err is set.
	Value *big.Int
	// Duration is the wall-clock time of the computation.
	Duration time.Duration
	// Err is the error returned by the backend, if any.
	Err error
}

// RunAll executes every given backend concurrently for the same (n, m) and
// returns the results ordered by backend key. Each invocation is fully
// independent — all state is call-local — so the runs share nothing but the
// read-only inputs.
func RunAll(ctx context.Context, backends map[string]fibmod.Backend, n, m *big.Int) []Result {
	keys := make([]string, 0, len(backends))
	for key := range backends {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]Result, len(keys))
	g, ctx := errgroup.WithContext(ctx)

	for i, key := range keys {
		i, key := i, key
		b := backends[key]
		g.Go(func() error {
			start := time.Now()
			value, err := b.FibMod(ctx, n, m)
			results[i] = Result{
				Key:      key,
				Name:     b.Name(),
				Value:    value,
				Duration: time.Since(start),
				Err:      err,
			}
			// Errors are carried per-result so one failing backend
			// does not cancel its siblings.
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Mismatch describes two backends that disagree on the same inputs.
type Mismatch struct {
	A, B Result
}

// VerifyConsistency compares all successful results pairwise and returns
// the first disagreement found, or nil when every successful backend
// produced the same value. Backends that failed their domain precondition
// (e.g. an index beyond uint64 for the fixed backend) are skipped.
func VerifyConsistency(results []Result) *Mismatch {
	var ref *Result
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Value == nil {
			continue
		}
		if ref == nil {
			ref = r
			continue
		}
		if ref.Value.Cmp(r.Value) != 0 {
			return &Mismatch{A: *ref, B: *r}
		}
	}
	return nil
}
