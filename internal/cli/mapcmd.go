// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"

	"github.com/katalvlaran/nataf/internal/report"
	"github.com/katalvlaran/nataf/nataf"
	"github.com/spf13/cobra"
)

// NewMapCommand creates the map command.
func NewMapCommand() *cobra.Command {
	var inPath, outPath string
	var inverse bool

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map a CSV of samples between physical and normal space",
		Long: `Map reads a CSV of physical samples and writes their standard normal images.
With --inverse the input holds normal samples and the output physical ones.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := getConfig(ctx)
			if err != nil {
				return err
			}
			if inPath == "" {
				return fmt.Errorf("map: --input is required")
			}

			tr, err := buildTransform(ctx, cfg, getLogger(ctx))
			if err != nil {
				return err
			}

			f, err := os.Open(inPath)
			if err != nil {
				return err
			}
			samples, _, err := report.ReadCSV(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			in := nataf.RunInput{SamplesX: samples}
			prefix := "z"
			if inverse {
				in = nataf.RunInput{SamplesZ: samples}
				prefix = "x"
			}
			out, err := tr.Run(in)
			if err != nil {
				return err
			}
			mapped := out.SamplesZ
			if inverse {
				mapped = out.SamplesX
			}

			if outPath == "" {
				outPath = "-"
			}
			return saveCSV(cmd.OutOrStdout(), outPath, mapped, headers(prefix, tr.Dim()))
		},
	}
	cmd.Flags().StringVarP(&inPath, "input", "i", "", "CSV of samples to map")
	cmd.Flags().StringVar(&outPath, "out", "-", "Output CSV (- for stdout)")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "Input is in normal space")
	return cmd
}
