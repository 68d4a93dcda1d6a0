package calculation

import (
	"math"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// ProjectionRequest carries every input of one projection. The engine keeps
// no state between requests.
type ProjectionRequest struct {
	InitialWealth float64
	InitialSalary float64
	Spending      domain.SpendingProfile
	HorizonMonths int
	Contribution  domain.ContributionPolicy
	Assumptions   domain.MarketAssumptions
	Convention    domain.RateConvention

	Trials     int
	Seed       int64
	Workers    int
	KeepTrials bool

	// Events overrides the default event mix; Scripted replaces random
	// events entirely when non-nil.
	Events   *EventDistribution
	Scripted ScriptedEvents

	TargetWealth float64
	Age          int
}

// NewProjectionRequest fills in the defaults for everything but the person's figures.
func NewProjectionRequest(initialWealth, initialSalary float64, spending domain.SpendingProfile, horizonMonths int) ProjectionRequest {
	return ProjectionRequest{
		InitialWealth: initialWealth,
		InitialSalary: initialSalary,
		Spending:      spending,
		HorizonMonths: horizonMonths,
		Contribution:  domain.FractionOfSurplus(domain.DefaultContributionFraction),
		Assumptions:   domain.DefaultMarketAssumptions(),
		Convention:    domain.RateNominal,
		Trials:        DefaultTrials,
	}
}

// Validate returns a *domain.ConfigurationError for inputs that must be
// rejected before simulating.
func (r ProjectionRequest) Validate() error {
	if r.HorizonMonths <= 0 {
		return domain.NewConfigurationError("horizon_months", "must be positive, got %d", r.HorizonMonths)
	}
	if r.HorizonMonths > domain.MaxHorizonMonths {
		return domain.NewConfigurationError("horizon_months", "at most %d months, got %d", domain.MaxHorizonMonths, r.HorizonMonths)
	}
	if !finite(r.InitialSalary) || r.InitialSalary < 0 {
		return domain.NewConfigurationError("initial_salary", "cannot be negative, got %v", r.InitialSalary)
	}
	if !finite(r.InitialWealth) || r.InitialWealth < 0 {
		return domain.NewConfigurationError("initial_wealth", "cannot be negative, got %v", r.InitialWealth)
	}
	if err := r.Contribution.Validate(); err != nil {
		return err
	}
	if err := r.Assumptions.Validate(); err != nil {
		return err
	}
	if _, err := domain.ParseRateConvention(string(r.Convention)); err != nil {
		return err
	}
	if r.Trials < 0 {
		return domain.NewConfigurationError("simulation.trials", "cannot be negative, got %d", r.Trials)
	}
	if r.Workers < 0 {
		return domain.NewConfigurationError("simulation.workers", "cannot be negative, got %d", r.Workers)
	}
	if r.Events != nil {
		if err := r.Events.Validate(); err != nil {
			return err
		}
	}
	if r.Scripted != nil {
		if err := r.Scripted.Validate(r.HorizonMonths); err != nil {
			return err
		}
	}
	if !finite(r.TargetWealth) || r.TargetWealth < 0 {
		return domain.NewConfigurationError("target_wealth", "cannot be negative, got %v", r.TargetWealth)
	}
	if r.Age < 0 {
		return domain.NewConfigurationError("age", "cannot be negative, got %d", r.Age)
	}
	return nil
}

// eventDrawer picks the event source for the request.
func (r ProjectionRequest) eventDrawer() EventDrawer {
	if r.Scripted != nil {
		return r.Scripted
	}
	if r.Events != nil {
		return *r.Events
	}
	return DefaultEventDistribution()
}

func (r ProjectionRequest) scenarioParams(assumptions domain.MarketAssumptions) ScenarioParams {
	return ScenarioParams{
		InitialWealth: r.InitialWealth,
		InitialSalary: r.InitialSalary,
		Spending:      r.Spending,
		HorizonMonths: r.HorizonMonths,
		Contribution:  r.Contribution,
		Assumptions:   assumptions,
		Convention:    r.Convention,
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
