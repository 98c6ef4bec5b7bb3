// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/nataf/internal/config"
	"github.com/katalvlaran/nataf/internal/report"
	"github.com/katalvlaran/nataf/marginal"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/spf13/cobra"
)

// errMissingCorrelation is returned when a command needs a matrix the config
// does not provide.
var errMissingCorrelation = errors.New("missing correlation matrix")

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	var plotPath, outPath string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the normal-space correlation for corr_x with ITAM",
		Long: `Solve reads the marginals and the target corr_x from the configuration and
runs the ITAM fixed point. It prints Cz, the iteration count and the trace.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := getConfig(ctx)
			if err != nil {
				return err
			}
			logger := getLogger(ctx)

			set, err := cfg.MarginalSet()
			if err != nil {
				return err
			}
			cx, err := cfg.CorrelationX()
			if err != nil {
				return err
			}
			if cx == nil {
				return fmt.Errorf("solve: corr_x: %w", errMissingCorrelation)
			}

			res, err := nataf.SolveDistortion(ctx, set, cx, engineOptions(cfg, logger)...)
			if err != nil {
				return err
			}
			if !res.Converged {
				logger.Warn("itam did not converge", "iterations", res.Iterations)
			}

			doc := report.SolveDocument{
				Marginals:  marginalNames(set),
				CorrX:      report.Rows(cx),
				CorrZ:      report.Rows(res.Cz),
				Iterations: res.Iterations,
				Converged:  res.Converged,
				Trace:      res.Trace,
			}
			if outPath != "" {
				if err := report.SaveYAML(outPath, doc); err != nil {
					return err
				}
				logger.Info("result written", "path", outPath)
			}
			if plotPath != "" {
				if err := report.PlotTrace(plotPath, res.Trace); err != nil {
					if !errors.Is(err, report.ErrNothingToPlot) {
						return err
					}
					logger.Warn("no iterations to plot", "path", plotPath)
				}
			}

			w := cmd.OutOrStdout()
			if cfg.Output == config.OutputYAML {
				return report.WriteYAML(w, doc)
			}
			names := labels(set)
			report.Matrix(w, "Cx (target)", cx, names)
			report.Matrix(w, "Cz (normal space)", res.Cz, names)
			report.Summary(w, "ITAM", [][2]string{
				{"iterations", strconv.Itoa(res.Iterations)},
				{"converged", strconv.FormatBool(res.Converged)},
			})
			report.Trace(w, res.Trace)
			return nil
		},
	}
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write the convergence trace as PNG")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the result as YAML")
	return cmd
}

// NewDistortCommand creates the distort command.
func NewDistortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "distort",
		Short: "Compute the physical-space correlation implied by corr_z",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := getConfig(ctx)
			if err != nil {
				return err
			}
			set, err := cfg.MarginalSet()
			if err != nil {
				return err
			}
			cz, err := cfg.CorrelationZ()
			if err != nil {
				return err
			}
			if cz == nil {
				return fmt.Errorf("distort: corr_z: %w", errMissingCorrelation)
			}

			cx, err := nataf.DistortZ2X(ctx, set, cz, engineOptions(cfg, getLogger(ctx))...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if cfg.Output == config.OutputYAML {
				return report.WriteYAML(w, report.SolveDocument{
					Marginals: marginalNames(set),
					CorrX:     report.Rows(cx),
					CorrZ:     report.Rows(cz),
					Converged: true,
				})
			}
			names := labels(set)
			report.Matrix(w, "Cz (normal space)", cz, names)
			report.Matrix(w, "Cx (physical space)", cx, names)
			return nil
		},
	}
}

func marginalNames(set *marginal.Set) []string {
	cols := set.Columns()
	out := make([]string, len(cols))
	for i, m := range cols {
		out[i] = fmt.Sprint(m)
	}
	return out
}
