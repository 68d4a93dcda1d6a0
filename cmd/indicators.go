package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rpgo/wealth-projector/internal/indicators"
	"github.com/rpgo/wealth-projector/internal/log"
	"github.com/rpgo/wealth-projector/internal/output"

	"github.com/spf13/cobra"
)

var flagIndicatorsJSON bool

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Fetch the market indicators behind live assumptions",
	RunE:  runIndicators,
}

func init() {
	indicatorsCmd.Flags().BoolVar(&flagIndicatorsJSON, "json", false, "Print the snapshot as JSON")
	rootCmd.AddCommand(indicatorsCmd)
}

func runIndicators(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(log.ComponentCLI)
	if err != nil {
		return err
	}
	snap := indicators.NewProvider(indicators.ConfigFromEnv(), logger).Assumptions(cmd.Context())

	if flagIndicatorsJSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	source := func(series string) string {
		if snap.UsedFallback(series) {
			return "fallback"
		}
		return "live"
	}
	a := snap.Assumptions
	fmt.Println()
	fmt.Println(output.RenderTitle("MARKET INDICATORS  " + snap.FetchedAt.Format(time.DateOnly)))
	fmt.Println()
	fmt.Println(output.RenderTable(
		[]string{"Indicator", "Value", "Source"},
		[][]string{
			{"Inflation (IPCA, 12m)", output.FormatPercentage(a.Inflation), source(indicators.SeriesInflation)},
			{"Fixed income (annualized)", output.FormatPercentage(snap.FixedIncome), source(indicators.SeriesFixedIncome)},
			{"Equity index return", output.FormatPercentage(snap.EquityReturn), source(indicators.SeriesEquity)},
			{"Equity volatility", output.FormatPercentage(a.Volatility), source(indicators.SeriesVolatility)},
			{"Portfolio mean return", output.FormatPercentage(a.MeanReturn), "60/40 blend"},
			{"Salary growth", output.FormatPercentage(a.SalaryGrowth), "constant"},
			{"Savings account", output.FormatPercentage(a.SavingsRate), "constant"},
		}))
	if snap.Offline {
		fmt.Fprintln(os.Stderr, output.RenderMuted("  Offline mode: all values are fallbacks."))
	}
	return nil
}
