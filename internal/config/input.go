package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File formats understood by the parser.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Profile defaults used by the example configuration and the interactive form.
const (
	DefaultInitialWealth = 3000
	DefaultInitialSalary = 3000
	DefaultHorizonYears  = 10
	MinFormSalary        = 2000
	MaxFormSalary        = 15000
)

// HorizonChoices are the horizons offered by the interactive form.
var HorizonChoices = []int{1, 5, 10, 15, 20}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// FormatFromPath maps a file extension onto one of the supported formats.
func FormatFromPath(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported configuration file extension %q", filepath.Ext(filename))
	}
}

// LoadFromFile loads configuration from a YAML, TOML or JSON file chosen by extension.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, format)
}

// Parse decodes and validates a configuration document.
func (ip *InputParser) Parse(data []byte, format string) (*domain.Configuration, error) {
	var config domain.Configuration
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// SaveConfiguration writes config in the format implied by filename.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(config)
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(config)
		data = buf.Bytes()
	case FormatJSON:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s configuration: %w", format, err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateProfile(&config.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if _, err := ResolveSpending(config.Spending); err != nil {
		return fmt.Errorf("spending validation failed: %w", err)
	}
	if _, err := ResolveContribution(config.Contribution); err != nil {
		return fmt.Errorf("contribution validation failed: %w", err)
	}
	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}
	if err := ip.validateEvents(&config.Events, config.Profile.Months()); err != nil {
		return fmt.Errorf("events validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.ProfileConfig) error {
	if p.InitialWealth.IsNegative() {
		return domain.NewConfigurationError("profile.initial_wealth", "cannot be negative")
	}
	if p.InitialSalary.IsNegative() {
		return domain.NewConfigurationError("profile.initial_salary", "cannot be negative")
	}
	if p.HorizonYears < 0 || p.HorizonMonths < 0 {
		return domain.NewConfigurationError("profile.horizon_months", "must be positive (%d years, %d months)", p.HorizonYears, p.HorizonMonths)
	}
	if p.HorizonMonths > domain.MaxHorizonMonths {
		return domain.NewConfigurationError("profile.horizon_months", "at most %d months, got %d", domain.MaxHorizonMonths, p.HorizonMonths)
	}
	if p.HorizonYears > domain.MaxHorizonMonths/12 {
		return domain.NewConfigurationError("profile.horizon_years", "at most %d years, got %d", domain.MaxHorizonMonths/12, p.HorizonYears)
	}
	if p.HorizonYears != 0 && p.HorizonMonths != 0 && p.HorizonYears*12 != p.HorizonMonths {
		return domain.NewConfigurationError("profile.horizon_months", "conflicts with horizon_years (%d years vs %d months)", p.HorizonYears, p.HorizonMonths)
	}
	if p.Months() <= 0 {
		return domain.NewConfigurationError("profile.horizon_months", "must be positive, got %d", p.Months())
	}
	if p.Age < 0 {
		return domain.NewConfigurationError("profile.age", "cannot be negative, got %d", p.Age)
	}
	if p.TargetWealth.IsNegative() {
		return domain.NewConfigurationError("profile.target_wealth", "cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.AssumptionsConfig) error {
	switch strings.ToLower(a.Source) {
	case "", domain.AssumptionSourceDefaults, domain.AssumptionSourceLive:
	default:
		return domain.NewConfigurationError("assumptions.source", "must be %q or %q, got %q",
			domain.AssumptionSourceDefaults, domain.AssumptionSourceLive, a.Source)
	}
	if a.RateConvention != "" {
		if _, err := domain.ParseRateConvention(a.RateConvention); err != nil {
			return err
		}
	}
	return ApplyAssumptionOverrides(domain.DefaultMarketAssumptions(), *a).Validate()
}

func (ip *InputParser) validateSimulation(s *domain.SimulationConfig) error {
	if s.Trials < 0 {
		return domain.NewConfigurationError("simulation.trials", "cannot be negative, got %d", s.Trials)
	}
	if s.Workers < 0 {
		return domain.NewConfigurationError("simulation.workers", "cannot be negative, got %d", s.Workers)
	}
	return nil
}

func (ip *InputParser) validateEvents(e *domain.EventsConfig, horizonMonths int) error {
	if dist := ResolveEventDistribution(e.Probabilities); dist != nil {
		if err := dist.Validate(); err != nil {
			return err
		}
	}
	scripted, err := ResolveScriptedEvents(e.Scripted)
	if err != nil {
		return err
	}
	if scripted != nil {
		return scripted.Validate(horizonMonths)
	}
	return nil
}

// UsesLiveAssumptions reports whether the configuration asks for fetched indicators.
func UsesLiveAssumptions(config *domain.Configuration) bool {
	return strings.EqualFold(config.Assumptions.Source, domain.AssumptionSourceLive)
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	spending := make(map[string]domain.SpendingItem, len(domain.Categories))
	for _, c := range domain.Categories {
		spending[string(c)] = domain.SpendingItem{Preset: DefaultPresetKeys[c]}
	}
	inflation := decimal.NewFromFloat(0.045)
	return &domain.Configuration{
		Profile: domain.ProfileConfig{
			InitialWealth: decimal.NewFromInt(DefaultInitialWealth),
			InitialSalary: decimal.NewFromInt(DefaultInitialSalary),
			HorizonYears:  DefaultHorizonYears,
			Age:           25,
			TargetWealth:  decimal.NewFromInt(100000),
		},
		Spending: spending,
		Contribution: domain.ContributionConfig{
			Mode:  string(domain.ContributionFraction),
			Value: decimal.NewFromFloat(domain.DefaultContributionFraction),
		},
		Assumptions: domain.AssumptionsConfig{
			Source:         domain.AssumptionSourceDefaults,
			RateConvention: string(domain.RateNominal),
			Inflation:      &inflation,
		},
		Simulation: domain.SimulationConfig{
			Trials: 500,
			Seed:   42,
		},
		Report: domain.ReportConfig{
			Currency: "R$",
			Formats:  []string{"console", "csv"},
		},
	}
}
