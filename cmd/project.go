package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rpgo/wealth-projector/internal/calculation"
	"github.com/rpgo/wealth-projector/internal/config"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/indicators"
	"github.com/rpgo/wealth-projector/internal/log"
	"github.com/rpgo/wealth-projector/internal/output"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagWealth     float64
	flagSalary     float64
	flagYears      int
	flagMonths     int
	flagAge        int
	flagTarget     float64
	flagHousing    string
	flagTransport  string
	flagLeisure    string
	flagEducation  string
	flagFraction   float64
	flagFixed      float64
	flagTrials     int
	flagSeed       int64
	flagWorkers    int
	flagLive       bool
	flagInflation  float64
	flagConvention string
	flagEvents     []string
	flagFormats    []string
	flagOutputDir  string
	flagCurrency   string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a projection from a config file and/or flags",
	Example: "  wealthsim project --salary 4500 --years 10 --housing one_bedroom\n" +
		"  wealthsim project --config wealthsim.yaml --format html --output reports\n" +
		"  wealthsim project --live --event 13:layoff --format console,csv",
	RunE: runProject,
}

func init() {
	addProjectFlags(projectCmd)
	rootCmd.AddCommand(projectCmd)
}

// addProjectFlags registers the projection flags, resetting their variables to the defaults.
func addProjectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "Configuration file (.yaml, .toml or .json)")
	f.Float64Var(&flagWealth, "wealth", config.DefaultInitialWealth, "Initial wealth")
	f.Float64Var(&flagSalary, "salary", config.DefaultInitialSalary, "Monthly salary")
	f.IntVarP(&flagYears, "years", "y", config.DefaultHorizonYears, "Horizon in years")
	f.IntVar(&flagMonths, "months", 0, "Horizon in months (overrides --years)")
	f.IntVar(&flagAge, "age", 0, "Current age, adds an age column to the yearly table")
	f.Float64Var(&flagTarget, "target", 0, "Target wealth for the goal probability")
	f.StringVar(&flagHousing, "housing", "", "Housing preset")
	f.StringVar(&flagTransport, "transport", "", "Transport preset")
	f.StringVar(&flagLeisure, "leisure", "", "Leisure preset")
	f.StringVar(&flagEducation, "education", "", "Education preset")
	f.Float64Var(&flagFraction, "fraction", domain.DefaultContributionFraction, "Fraction of the monthly surplus invested")
	f.Float64Var(&flagFixed, "fixed", 0, "Fixed monthly contribution, capped at the surplus (overrides --fraction)")
	f.IntVarP(&flagTrials, "trials", "t", calculation.DefaultTrials, "Monte Carlo trials")
	f.Int64Var(&flagSeed, "seed", 0, "Random seed (0 picks a fresh one; the example configuration uses 42)")
	f.IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	f.BoolVar(&flagLive, "live", false, "Fetch live market indicators instead of the defaults")
	f.Float64Var(&flagInflation, "inflation", 0, "Override the annual inflation rate")
	f.StringVar(&flagConvention, "convention", "", "Monthly rate convention (nominal, effective)")
	f.StringArrayVar(&flagEvents, "event", nil, "Scripted event MONTH:KIND, repeatable (e.g. 13:layoff)")
	f.StringSliceVarP(&flagFormats, "format", "f", nil, "Report formats: console, csv, yearly-csv, json, html or all")
	f.StringVarP(&flagOutputDir, "output", "o", "", "Write reports to this directory instead of stdout")
	f.StringVar(&flagCurrency, "currency", "", "Currency symbol for reports")
}

func runProject(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(log.ComponentCLI)
	if err != nil {
		return err
	}
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p, err := project(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return writeReports(p, cfg.Report)
}

// configFromFlags loads --config (or the example configuration) and applies
// every flag the user set explicitly.
func configFromFlags(cmd *cobra.Command) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	var cfg *domain.Configuration
	if flagConfig != "" {
		loaded, err := parser.LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = parser.CreateExampleConfiguration()
		cfg.Report.Formats = []string{"console"}
	}

	changed := cmd.Flags().Changed
	if changed("wealth") {
		cfg.Profile.InitialWealth = decimal.NewFromFloat(flagWealth)
	}
	if changed("salary") {
		cfg.Profile.InitialSalary = decimal.NewFromFloat(flagSalary)
	}
	if changed("years") {
		cfg.Profile.HorizonYears, cfg.Profile.HorizonMonths = flagYears, 0
	}
	if changed("months") {
		cfg.Profile.HorizonYears, cfg.Profile.HorizonMonths = 0, flagMonths
	}
	if changed("age") {
		cfg.Profile.Age = flagAge
	}
	if changed("target") {
		cfg.Profile.TargetWealth = decimal.NewFromFloat(flagTarget)
	}
	presets := map[domain.Category]string{
		domain.Housing:   flagHousing,
		domain.Transport: flagTransport,
		domain.Leisure:   flagLeisure,
		domain.Education: flagEducation,
	}
	for cat, key := range presets {
		if key == "" {
			continue
		}
		if cfg.Spending == nil {
			cfg.Spending = map[string]domain.SpendingItem{}
		}
		cfg.Spending[string(cat)] = domain.SpendingItem{Preset: key}
	}
	if changed("fraction") {
		cfg.Contribution = domain.ContributionConfig{Mode: string(domain.ContributionFraction), Value: decimal.NewFromFloat(flagFraction)}
	}
	if changed("fixed") {
		cfg.Contribution = domain.ContributionConfig{Mode: string(domain.ContributionFixed), Value: decimal.NewFromFloat(flagFixed)}
	}
	if changed("trials") {
		cfg.Simulation.Trials = flagTrials
	}
	if changed("seed") {
		cfg.Simulation.Seed = flagSeed
	}
	if changed("workers") {
		cfg.Simulation.Workers = flagWorkers
	}
	if flagLive {
		cfg.Assumptions.Source = domain.AssumptionSourceLive
		// A live run should not be pinned to the example file's inflation.
		if flagConfig == "" {
			cfg.Assumptions.Inflation = nil
		}
	}
	if changed("inflation") {
		v := decimal.NewFromFloat(flagInflation)
		cfg.Assumptions.Inflation = &v
	}
	if changed("convention") {
		cfg.Assumptions.RateConvention = flagConvention
	}
	for _, raw := range flagEvents {
		ev, err := config.ParseScriptedEvent(raw)
		if err != nil {
			return nil, err
		}
		cfg.Events.Scripted = append(cfg.Events.Scripted, ev)
	}
	if len(flagFormats) > 0 {
		cfg.Report.Formats = flagFormats
	}
	if changed("output") {
		cfg.Report.OutputDir = flagOutputDir
	}
	if changed("currency") {
		cfg.Report.Currency = flagCurrency
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// project resolves market assumptions and runs the engine.
func project(ctx context.Context, cfg *domain.Configuration, logger *log.Logger) (*domain.Projection, error) {
	base := domain.DefaultMarketAssumptions()
	if config.UsesLiveAssumptions(cfg) {
		progress("  Fetching market indicators...\n")
		snap := indicators.NewProvider(indicators.ConfigFromEnv(), logger).Assumptions(ctx)
		if len(snap.Fallbacks) > 0 {
			progress("  Using fallback values for: %s\n", strings.Join(snap.Fallbacks, ", "))
		}
		base = snap.Assumptions
	}

	req, err := config.BuildRequest(cfg, base)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewProjectionEngine()
	engine.SetLogger(logger.WithComponent(log.ComponentEngine).Printf())

	progress("  Simulating %d trials over %d months...\n", req.Trials, req.HorizonMonths)
	start := time.Now()
	p, err := engine.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("projection failed: %w", err)
	}
	logger.Info("projection complete", log.FieldTrials, req.Trials, log.FieldMonths, req.HorizonMonths,
		log.FieldDuration, time.Since(start).Milliseconds())
	return p, nil
}

// writeReports prints to stdout when no output directory is set, otherwise
// writes one timestamped file per format.
func writeReports(p *domain.Projection, rc domain.ReportConfig) error {
	formats := rc.Formats
	if len(formats) == 0 {
		formats = []string{"console"}
	}
	opts := output.Options{Currency: rc.Currency}

	if rc.OutputDir != "" {
		files, err := output.GenerateReports(p, formats, rc.OutputDir, opts)
		for _, f := range files {
			progress("  Wrote %s\n", f)
		}
		return err
	}

	for _, name := range formats {
		f, err := output.NewFormatter(name, opts)
		if err != nil {
			return err
		}
		data, err := f.Format(p)
		if err != nil {
			return fmt.Errorf("%s formatter: %w", f.Name(), err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	}
	return nil
}
