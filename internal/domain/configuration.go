package domain

import "github.com/shopspring/decimal"

// Configuration is the on-disk description of a projection, shared by the
// YAML, TOML and JSON loaders.
type Configuration struct {
	Profile      ProfileConfig           `yaml:"profile" json:"profile" toml:"profile"`
	Spending     map[string]SpendingItem `yaml:"spending" json:"spending" toml:"spending"`
	Contribution ContributionConfig      `yaml:"contribution" json:"contribution" toml:"contribution"`
	Assumptions  AssumptionsConfig       `yaml:"assumptions" json:"assumptions" toml:"assumptions"`
	Simulation   SimulationConfig        `yaml:"simulation" json:"simulation" toml:"simulation"`
	Events       EventsConfig            `yaml:"events,omitempty" json:"events,omitempty" toml:"events,omitempty"`
	Report       ReportConfig            `yaml:"report,omitempty" json:"report,omitempty" toml:"report,omitempty"`
}

// ProfileConfig describes the person being projected.
type ProfileConfig struct {
	InitialWealth decimal.Decimal `yaml:"initial_wealth" json:"initial_wealth" toml:"initial_wealth"`
	InitialSalary decimal.Decimal `yaml:"initial_salary" json:"initial_salary" toml:"initial_salary"`
	HorizonYears  int             `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty" toml:"horizon_years,omitempty"`
	HorizonMonths int             `yaml:"horizon_months,omitempty" json:"horizon_months,omitempty" toml:"horizon_months,omitempty"`
	Age           int             `yaml:"age,omitempty" json:"age,omitempty" toml:"age,omitempty"`
	TargetWealth  decimal.Decimal `yaml:"target_wealth,omitempty" json:"target_wealth,omitempty" toml:"target_wealth,omitempty"`
}

// MaxHorizonMonths bounds a projection to one hundred years.
const MaxHorizonMonths = 1200

// Months resolves the horizon, preferring an explicit month count.
func (p ProfileConfig) Months() int {
	if p.HorizonMonths != 0 {
		return p.HorizonMonths
	}
	return p.HorizonYears * 12
}

// SpendingItem picks a category amount either by preset key or explicit amount.
// An explicit amount wins when both are set.
type SpendingItem struct {
	Preset string           `yaml:"preset,omitempty" json:"preset,omitempty" toml:"preset,omitempty"`
	Amount *decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty" toml:"amount,omitempty"`
}

// ContributionConfig is the file form of ContributionPolicy.
type ContributionConfig struct {
	Mode  string          `yaml:"mode" json:"mode" toml:"mode"`
	Value decimal.Decimal `yaml:"value" json:"value" toml:"value"`
}

// AssumptionsConfig selects where market assumptions come from. Any rate set
// here overrides the value from the selected source.
type AssumptionsConfig struct {
	Source         string           `yaml:"source,omitempty" json:"source,omitempty" toml:"source,omitempty"`
	RateConvention string           `yaml:"rate_convention,omitempty" json:"rate_convention,omitempty" toml:"rate_convention,omitempty"`
	Inflation      *decimal.Decimal `yaml:"inflation,omitempty" json:"inflation,omitempty" toml:"inflation,omitempty"`
	SalaryGrowth   *decimal.Decimal `yaml:"salary_growth,omitempty" json:"salary_growth,omitempty" toml:"salary_growth,omitempty"`
	MeanReturn     *decimal.Decimal `yaml:"mean_return,omitempty" json:"mean_return,omitempty" toml:"mean_return,omitempty"`
	Volatility     *decimal.Decimal `yaml:"volatility,omitempty" json:"volatility,omitempty" toml:"volatility,omitempty"`
	SavingsRate    *decimal.Decimal `yaml:"savings_rate,omitempty" json:"savings_rate,omitempty" toml:"savings_rate,omitempty"`
}

// Assumption sources.
const (
	AssumptionSourceDefaults = "defaults"
	AssumptionSourceLive     = "live"
)

// SimulationConfig tunes the Monte Carlo run.
type SimulationConfig struct {
	Trials     int   `yaml:"trials,omitempty" json:"trials,omitempty" toml:"trials,omitempty"`
	Seed       int64 `yaml:"seed,omitempty" json:"seed,omitempty" toml:"seed,omitempty"`
	Workers    int   `yaml:"workers,omitempty" json:"workers,omitempty" toml:"workers,omitempty"`
	KeepTrials bool  `yaml:"keep_trials,omitempty" json:"keep_trials,omitempty" toml:"keep_trials,omitempty"`
}

// EventsConfig overrides the life-event distribution or scripts events by month.
type EventsConfig struct {
	Probabilities *EventProbabilities `yaml:"probabilities,omitempty" json:"probabilities,omitempty" toml:"probabilities,omitempty"`
	Scripted      []ScriptedEvent     `yaml:"scripted,omitempty" json:"scripted,omitempty" toml:"scripted,omitempty"`
}

// EventProbabilities must sum to one.
type EventProbabilities struct {
	None       decimal.Decimal `yaml:"none" json:"none" toml:"none"`
	Layoff     decimal.Decimal `yaml:"layoff" json:"layoff" toml:"layoff"`
	Bonus      decimal.Decimal `yaml:"bonus" json:"bonus" toml:"bonus"`
	ChildBirth decimal.Decimal `yaml:"child_birth" json:"child_birth" toml:"child_birth"`
	Promotion  decimal.Decimal `yaml:"promotion" json:"promotion" toml:"promotion"`
}

// ScriptedEvent forces an event in a given month (1-based).
type ScriptedEvent struct {
	Month int    `yaml:"month" json:"month" toml:"month"`
	Event string `yaml:"event" json:"event" toml:"event"`
}

// ReportConfig controls rendering.
type ReportConfig struct {
	Currency  string   `yaml:"currency,omitempty" json:"currency,omitempty" toml:"currency,omitempty"`
	Formats   []string `yaml:"formats,omitempty" json:"formats,omitempty" toml:"formats,omitempty"`
	OutputDir string   `yaml:"output_dir,omitempty" json:"output_dir,omitempty" toml:"output_dir,omitempty"`
}
