// SPDX-License-Identifier: MIT

package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/nataf/internal/config"
	"github.com/katalvlaran/nataf/internal/report"
	"github.com/katalvlaran/nataf/matrix"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	var csvPath, plotPath string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate correlated samples",
		Long: `Sample builds the transform from corr_x or corr_z, draws the configured number
of samples and compares their correlation with the physical-space target.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := getConfig(ctx)
			if err != nil {
				return err
			}
			logger := getLogger(ctx)

			tr, err := buildTransform(ctx, cfg, logger)
			if err != nil {
				return err
			}
			x, err := tr.Generate(cfg.Samples, nataf.NewRand(cfg.Seed))
			if err != nil {
				return err
			}

			target := tr.CorrX()
			sample, err := sampleCorrelation(x)
			if err != nil {
				return err
			}
			diff, err := matrix.SubSym(sample, target)
			if err != nil {
				return err
			}
			maxErr := matrix.MaxAbsOffDiagonal(diff)

			if csvPath != "" {
				if err := saveCSV(cmd.OutOrStdout(), csvPath, x, headers("x", tr.Dim())); err != nil {
					return err
				}
				logger.Info("samples written", "path", csvPath, "rows", cfg.Samples)
			}
			if plotPath != "" && tr.Dim() >= 2 {
				if err := report.PlotScatter(plotPath, x, 0, 1, labels(tr.Marginals())); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if cfg.Output == config.OutputYAML {
				return report.WriteYAML(w, report.SampleDocument{
					Samples:     cfg.Samples,
					Seed:        cfg.Seed,
					TargetCorrX: report.Rows(target),
					SampleCorrX: report.Rows(sample),
					MaxAbsError: maxErr,
					Converged:   tr.Converged(),
					CSV:         csvPath,
					ScatterPlot: plotPath,
				})
			}
			names := labels(tr.Marginals())
			report.Matrix(w, "Cx (target)", target, names)
			report.Matrix(w, "Cx (sample)", sample, names)
			report.Summary(w, "Samples", [][2]string{
				{"samples", strconv.Itoa(cfg.Samples)},
				{"seed", strconv.FormatInt(cfg.Seed, 10)},
				{"max |error|", strconv.FormatFloat(maxErr, 'g', 4, 64)},
				{"solver iterations", strconv.Itoa(tr.Iterations())},
				{"converged", strconv.FormatBool(tr.Converged())},
			})
			return nil
		},
	}
	cmd.Flags().Int("samples", 0, "Number of samples to draw")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = default seed)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the samples as CSV")
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write a scatter of the first two columns as PNG")
	return cmd
}

// sampleCorrelation estimates the correlation of x. A single sample column
// or a constant column has no defined correlation; those entries read 0.
func sampleCorrelation(x *mat.Dense) (*mat.SymDense, error) {
	_, c := x.Dims()
	if c == 1 {
		return matrix.Identity(1)
	}
	sc, err := matrix.SampleCorrelation(x)
	if err != nil {
		return nil, err
	}
	return matrix.ReplaceInfNaN(sc, 0)
}

// saveCSV writes m to path, or to stdout when path is "-".
func saveCSV(stdout io.Writer, path string, m mat.Matrix, header []string) error {
	if path == "-" {
		return report.WriteCSV(stdout, m, header)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f, m, header); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
