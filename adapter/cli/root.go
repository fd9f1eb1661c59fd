package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ardenhale/timeloom/pkg/observability"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

type startedAtKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timeloom",
	Short: "timeloom - constraint-propagation goal scheduler",
	Long: `timeloom expands goals into hourly activities and places them onto
a calendar by iteratively placing a sole-option activity, or else the most
flexible one, at its least-conflicting position, honoring per-goal filters,
budgets, and repetition.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := observability.NewRequestContext(cmd.Context(), "")
		ctx = context.WithValue(ctx, startedAtKey{}, time.Now())
		cmd.SetContext(ctx)
		logger.Info("command start",
			"command", cmd.CommandPath(),
			observability.CorrelationIDKey, observability.CorrelationIDFromContext(ctx),
			observability.RequestIDKey, observability.RequestIDFromContext(ctx),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		startedAt, ok := ctx.Value(startedAtKey{}).(time.Time)
		if !ok {
			return
		}
		logger.Info("command end",
			"command", cmd.CommandPath(),
			observability.CorrelationIDKey, observability.CorrelationIDFromContext(ctx),
			observability.DurationKey, time.Since(startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
