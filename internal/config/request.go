package config

import (
	"strconv"
	"strings"

	"github.com/rpgo/wealth-projector/internal/calculation"
	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveSpending turns preset keys and explicit amounts into a profile.
// Categories missing from items take their default preset.
func ResolveSpending(items map[string]domain.SpendingItem) (domain.SpendingProfile, error) {
	amounts := make(map[domain.Category]float64, len(domain.Categories))
	seen := make(map[domain.Category]bool, len(items))
	for name, item := range items {
		c, err := domain.ParseCategory(name)
		if err != nil {
			return domain.SpendingProfile{}, err
		}
		if seen[c] {
			return domain.SpendingProfile{}, domain.NewConfigurationError("spending."+string(c), "listed twice")
		}
		seen[c] = true
		switch {
		case item.Amount != nil:
			amounts[c] = item.Amount.InexactFloat64()
		case item.Preset != "":
			p, err := LookupPreset(c, item.Preset)
			if err != nil {
				return domain.SpendingProfile{}, err
			}
			amounts[c] = p.Amount
		default:
			return domain.SpendingProfile{}, domain.NewConfigurationError("spending."+string(c), "needs a preset or an amount")
		}
	}
	for _, c := range domain.Categories {
		if !seen[c] {
			p, _ := LookupPreset(c, DefaultPresetKeys[c])
			amounts[c] = p.Amount
		}
	}
	return domain.NewSpendingProfile(amounts)
}

// ResolveContribution converts the file form; an empty section means 30% of surplus.
func ResolveContribution(c domain.ContributionConfig) (domain.ContributionPolicy, error) {
	if c.Mode == "" && c.Value.IsZero() {
		return domain.FractionOfSurplus(domain.DefaultContributionFraction), nil
	}
	mode := domain.ContributionFraction
	if c.Mode != "" {
		m, err := domain.ParseContributionMode(c.Mode)
		if err != nil {
			return domain.ContributionPolicy{}, err
		}
		mode = m
	}
	policy := domain.ContributionPolicy{Mode: mode, Value: c.Value.InexactFloat64()}
	if err := policy.Validate(); err != nil {
		return domain.ContributionPolicy{}, err
	}
	return policy, nil
}

// ApplyAssumptionOverrides replaces base values with any rate set in the file.
func ApplyAssumptionOverrides(base domain.MarketAssumptions, a domain.AssumptionsConfig) domain.MarketAssumptions {
	set := func(dst *float64, v *decimal.Decimal) {
		if v != nil {
			*dst = v.InexactFloat64()
		}
	}
	set(&base.Inflation, a.Inflation)
	set(&base.SalaryGrowth, a.SalaryGrowth)
	set(&base.MeanReturn, a.MeanReturn)
	set(&base.Volatility, a.Volatility)
	set(&base.SavingsRate, a.SavingsRate)
	return base
}

// ResolveEventDistribution returns nil when the file keeps the default mix.
func ResolveEventDistribution(p *domain.EventProbabilities) *calculation.EventDistribution {
	if p == nil {
		return nil
	}
	return &calculation.EventDistribution{
		None:       p.None.InexactFloat64(),
		Layoff:     p.Layoff.InexactFloat64(),
		Bonus:      p.Bonus.InexactFloat64(),
		ChildBirth: p.ChildBirth.InexactFloat64(),
		Promotion:  p.Promotion.InexactFloat64(),
	}
}

// ResolveScriptedEvents returns nil for an empty list so random events stay on.
func ResolveScriptedEvents(list []domain.ScriptedEvent) (calculation.ScriptedEvents, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make(calculation.ScriptedEvents, len(list))
	for _, se := range list {
		kind, err := calculation.ParseEventKind(se.Event)
		if err != nil {
			return nil, err
		}
		if _, dup := out[se.Month]; dup {
			return nil, domain.NewConfigurationError("events.scripted", "month %d scripted twice", se.Month)
		}
		out[se.Month] = kind
	}
	return out, nil
}

// ParseScriptedEvent reads the "MONTH:EVENT" form used by the --event flag.
func ParseScriptedEvent(s string) (domain.ScriptedEvent, error) {
	monthStr, event, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return domain.ScriptedEvent{}, domain.NewConfigurationError("events.scripted", "%q is not MONTH:EVENT", s)
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil {
		return domain.ScriptedEvent{}, domain.NewConfigurationError("events.scripted", "bad month in %q", s)
	}
	event = strings.TrimSpace(event)
	if _, err := calculation.ParseEventKind(event); err != nil {
		return domain.ScriptedEvent{}, err
	}
	return domain.ScriptedEvent{Month: month, Event: event}, nil
}

// BuildRequest converts a configuration into an engine request. base supplies
// the market assumptions before file overrides; callers pass defaults or a
// live indicator snapshot.
func BuildRequest(cfg *domain.Configuration, base domain.MarketAssumptions) (calculation.ProjectionRequest, error) {
	spending, err := ResolveSpending(cfg.Spending)
	if err != nil {
		return calculation.ProjectionRequest{}, err
	}
	req := calculation.NewProjectionRequest(
		cfg.Profile.InitialWealth.InexactFloat64(),
		cfg.Profile.InitialSalary.InexactFloat64(),
		spending,
		cfg.Profile.Months(),
	)
	if req.Contribution, err = ResolveContribution(cfg.Contribution); err != nil {
		return calculation.ProjectionRequest{}, err
	}
	req.Assumptions = ApplyAssumptionOverrides(base, cfg.Assumptions)
	if cfg.Assumptions.RateConvention != "" {
		if req.Convention, err = domain.ParseRateConvention(cfg.Assumptions.RateConvention); err != nil {
			return calculation.ProjectionRequest{}, err
		}
	}
	if cfg.Simulation.Trials > 0 {
		req.Trials = cfg.Simulation.Trials
	}
	req.Seed = cfg.Simulation.Seed
	req.Workers = cfg.Simulation.Workers
	req.KeepTrials = cfg.Simulation.KeepTrials
	req.Events = ResolveEventDistribution(cfg.Events.Probabilities)
	if req.Scripted, err = ResolveScriptedEvents(cfg.Events.Scripted); err != nil {
		return calculation.ProjectionRequest{}, err
	}
	req.TargetWealth = cfg.Profile.TargetWealth.InexactFloat64()
	req.Age = cfg.Profile.Age
	if err := req.Validate(); err != nil {
		return calculation.ProjectionRequest{}, err
	}
	return req, nil
}
