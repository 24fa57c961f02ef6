package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os/signal"
	"syscall"

	"github.com/agbru/fibmod/internal/cli"
	apperrors "github.com/agbru/fibmod/internal/errors"
	"github.com/agbru/fibmod/internal/fibmod"
	"github.com/agbru/fibmod/internal/orchestration"
)

// runCompute performs a one-shot computation and presents the result.
// With --backend all, every registered backend runs concurrently and the
// results are cross-checked; a disagreement is reported with the dedicated
// mismatch exit code.
func (a *Application) runCompute(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Both values were validated during config parsing.
	n, err := a.Config.IndexValue()
	if err != nil {
		fmt.Fprintln(a.ErrWriter, err)
		return apperrors.ExitErrorConfig
	}
	m, err := a.Config.ModulusValue()
	if err != nil {
		fmt.Fprintln(a.ErrWriter, err)
		return apperrors.ExitErrorConfig
	}

	outputCfg := cli.OutputConfig{Quiet: a.Config.Quiet, JSON: a.Config.JSONOutput}

	if a.Config.Backend == "all" {
		return a.runComparison(ctx, out, n, m, outputCfg)
	}

	backend, err := a.Registry.Get(a.Config.Backend)
	if err != nil {
		fmt.Fprintln(a.ErrWriter, err)
		return apperrors.ExitErrorConfig
	}

	results := orchestration.RunAll(ctx, map[string]fibmod.Backend{a.Config.Backend: backend}, n, m)
	if err := cli.DisplayResult(out, a.Config.N, a.Config.Mod, results[0], outputCfg); err != nil {
		if outputCfg.Quiet || outputCfg.JSON {
			fmt.Fprintln(a.ErrWriter, err)
		}
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runComparison runs every registered backend concurrently and verifies
// they agree on F(n) mod m.
func (a *Application) runComparison(ctx context.Context, out io.Writer, n, m *big.Int, outputCfg cli.OutputConfig) int {
	results := orchestration.RunAll(ctx, a.Registry.GetAll(), n, m)

	if mm := orchestration.VerifyConsistency(results); mm != nil {
		cli.DisplayMismatch(a.ErrWriter, *mm)
		return apperrors.ExitErrorMismatch
	}

	// Quiet and JSON modes report a single representative result; the
	// consistency check above guarantees all successful backends agree.
	if outputCfg.Quiet || outputCfg.JSON {
		for _, res := range results {
			if res.Err == nil {
				if err := cli.DisplayResult(out, a.Config.N, a.Config.Mod, res, outputCfg); err != nil {
					return apperrors.ExitErrorGeneric
				}
				return apperrors.ExitSuccess
			}
		}
	} else {
		cli.DisplayComparisonTable(out, results)
		for _, res := range results {
			if res.Err == nil {
				return apperrors.ExitSuccess
			}
		}
	}

	// No backend succeeded: surface the first error.
	if len(results) > 0 && results[0].Err != nil {
		fmt.Fprintln(a.ErrWriter, results[0].Err)
	}
	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitErrorGeneric
}
