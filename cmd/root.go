package cmd

import (
	"fmt"
	"os"

	"github.com/rpgo/wealth-projector/internal/log"

	"github.com/spf13/cobra"
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "wealthsim",
	Short: "Monte Carlo net-worth projections",
	Long: "Project how a monthly budget, salary and a volatile portfolio grow over the years,\n" +
		"with random life events, against an ideal path and a plain savings account.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// newLogger builds the stderr logger selected by the persistent flags.
func newLogger(component string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = level
	cfg.Format = flagLogFormat
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
