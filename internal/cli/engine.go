// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/nataf/internal/config"
	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/nataf"
)

// engineOptions translates the configuration into engine options.
func engineOptions(cfg *config.Config, logger *slog.Logger) []nataf.Option {
	return []nataf.Option{
		nataf.WithMaxIter(cfg.Solver.MaxIter),
		nataf.WithBeta(cfg.Solver.Beta),
		nataf.WithThresholds(cfg.Solver.Threshold1, cfg.Solver.Threshold2),
		nataf.WithQuadrature(cfg.Quadrature.Order, cfg.Quadrature.ZMax),
		nataf.WithWorkers(cfg.Workers),
		nataf.WithLogger(logger),
	}
}

// buildTransform constructs the transform described by cfg. corr_x and corr_z
// are both optional; Validate already rejected the pair.
func buildTransform(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*nataf.Transform, error) {
	set, err := cfg.MarginalSet()
	if err != nil {
		return nil, err
	}
	opts := engineOptions(cfg, logger)

	cx, err := cfg.CorrelationX()
	if err != nil {
		return nil, err
	}
	if cx != nil {
		opts = append(opts, nataf.WithCorrX(cx))
	}
	cz, err := cfg.CorrelationZ()
	if err != nil {
		return nil, err
	}
	if cz != nil {
		opts = append(opts, nataf.WithCorrZ(cz))
	}
	return nataf.New(ctx, set, opts...)
}

// labels names every column after its marginal.
func labels(set *marginal.Set) []string {
	cols := set.Columns()
	out := make([]string, len(cols))
	for i, m := range cols {
		out[i] = fmt.Sprintf("x%d %v", i, m)
	}
	return out
}

// headers returns short CSV column names with the given prefix.
func headers(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}
