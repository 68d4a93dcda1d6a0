package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rpgo/wealth-projector/internal/config"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/rpgo/wealth-projector/internal/log"
	"github.com/rpgo/wealth-projector/internal/output"
	"github.com/rpgo/wealth-projector/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagPlanSave string
	flagPlanLive bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Answer a few questions and see your projection",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagPlanSave, "save", "", "Also save the answers as a configuration file")
	planCmd.Flags().BoolVar(&flagPlanLive, "live", false, "Fetch live market indicators instead of the defaults")
	rootCmd.AddCommand(planCmd)
}

// planAnswers holds the form state.
type planAnswers struct {
	Salary  string
	Wealth  string
	Years   int
	Presets map[domain.Category]*string
}

func newPlanAnswers() *planAnswers {
	a := &planAnswers{
		Salary:  strconv.Itoa(config.DefaultInitialSalary),
		Wealth:  strconv.Itoa(config.DefaultInitialWealth),
		Years:   config.DefaultHorizonYears,
		Presets: make(map[domain.Category]*string, len(domain.Categories)),
	}
	for _, cat := range domain.Categories {
		key := config.DefaultPresetKeys[cat]
		a.Presets[cat] = &key
	}
	return a
}

func runPlan(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(log.ComponentCLI)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	answers := newPlanAnswers()
	if err := planForm(answers).RunWithContext(ctx); err != nil {
		return fmt.Errorf("plan form: %w", err)
	}
	cfg, err := answers.configuration()
	if err != nil {
		return err
	}
	if flagPlanLive {
		cfg.Assumptions.Source = domain.AssumptionSourceLive
		cfg.Assumptions.Inflation = nil
	}

	parser := config.NewInputParser()
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return err
	}
	if flagPlanSave != "" {
		if err := parser.SaveConfiguration(cfg, flagPlanSave); err != nil {
			return err
		}
		progress("  Saved answers to %s\n", flagPlanSave)
	}

	p, err := project(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return writeReports(p, domain.ReportConfig{Formats: []string{"console"}, Currency: cfg.Report.Currency})
}

func planForm(a *planAnswers) *huh.Form {
	years := make([]huh.Option[int], 0, len(config.HorizonChoices))
	for _, y := range config.HorizonChoices {
		years = append(years, huh.NewOption(fmt.Sprintf("%d years", y), y))
	}

	spending := make([]huh.Field, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		opts := make([]huh.Option[string], 0)
		for _, p := range config.Presets(cat) {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", p.Label, output.FormatCurrency("", p.Amount)), p.Key))
		}
		spending = append(spending, huh.NewSelect[string]().
			Title(strings.ToUpper(string(cat[:1]))+string(cat[1:])).
			Options(opts...).
			Value(a.Presets[cat]))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly salary").
				Description(fmt.Sprintf("Between %d and %d", config.MinFormSalary, config.MaxFormSalary)).
				Value(&a.Salary).
				Validate(validateSalary),
			huh.NewInput().
				Title("Current wealth").
				Value(&a.Wealth).
				Validate(validateAmount),
			huh.NewSelect[int]().
				Title("Horizon").
				Options(years...).
				Value(&a.Years),
		),
		huh.NewGroup(spending...).Title("Monthly spending"),
	)
}

func validateSalary(s string) error {
	v, err := money.NewMoneyFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	f := v.InexactFloat64()
	if f < config.MinFormSalary || f > config.MaxFormSalary {
		return fmt.Errorf("must be between %d and %d", config.MinFormSalary, config.MaxFormSalary)
	}
	return nil
}

func validateAmount(s string) error {
	v, err := money.NewMoneyFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if v.IsNegative() {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

// configuration turns the answers into the same document a config file holds.
func (a *planAnswers) configuration() (*domain.Configuration, error) {
	cfg := config.NewInputParser().CreateExampleConfiguration()
	salary, err := decimal.NewFromString(strings.TrimSpace(a.Salary))
	if err != nil {
		return nil, domain.NewConfigurationError("profile.initial_salary", "not a number: %q", a.Salary)
	}
	wealth, err := decimal.NewFromString(strings.TrimSpace(a.Wealth))
	if err != nil {
		return nil, domain.NewConfigurationError("profile.initial_wealth", "not a number: %q", a.Wealth)
	}
	cfg.Profile.InitialSalary = salary
	cfg.Profile.InitialWealth = wealth
	cfg.Profile.HorizonYears = a.Years
	cfg.Profile.HorizonMonths = 0
	cfg.Spending = make(map[string]domain.SpendingItem, len(a.Presets))
	for cat, key := range a.Presets {
		cfg.Spending[string(cat)] = domain.SpendingItem{Preset: *key}
	}
	return cfg, nil
}
