// SPDX-License-Identifier: MIT

// Package cli provides the command-line interface for the Nataf engine.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/nataf/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "nataf",
		Short: "Nataf isoprobabilistic transformation engine",
		Long: `nataf maps random vectors with arbitrary marginals and a target correlation
to correlated standard normal space and back.

It solves the correlation distortion with ITAM, maps sample files in both
directions and generates correlated samples.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete", "version":
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if used != "" {
				logger.Debug("using config file", "path", used)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./nataf.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output (debug logging)")
	pf.StringP("output", "o", "", "Output format (table|yaml)")
	pf.Int("workers", 0, "Goroutines evaluating correlation pairs (0 = GOMAXPROCS)")
	pf.Bool("joint", false, "Treat the marginals as one independent joint distribution")
	pf.Int("max-iter", 0, "Maximum ITAM iterations")
	pf.Float64("beta", 0, "ITAM damping exponent")
	pf.Float64("threshold1", 0, "ITAM absolute error threshold")
	pf.Float64("threshold2", 0, "ITAM relative change threshold")
	pf.Int("order", 0, "Gauss–Legendre nodes per axis")
	pf.Float64("z-max", 0, "Half-width of the integration square")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewDistortCommand())
	rootCmd.AddCommand(NewSampleCommand())
	rootCmd.AddCommand(NewMapCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// getConfig retrieves the config stored by PersistentPreRunE.
func getConfig(ctx context.Context) (*config.Config, error) {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c, nil
	}
	return nil, fmt.Errorf("configuration not loaded")
}

// getLogger retrieves the logger stored by PersistentPreRunE.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
