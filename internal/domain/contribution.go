package domain

import (
	"math"
	"strings"
)

// ContributionMode selects how the monthly contribution is requested.
type ContributionMode string

const (
	// ContributionFraction requests a share of the monthly surplus.
	ContributionFraction ContributionMode = "fraction"
	// ContributionFixed requests a fixed monthly amount.
	ContributionFixed ContributionMode = "fixed"
)

// DefaultContributionFraction is the share of surplus invested when nothing is configured.
const DefaultContributionFraction = 0.3

// ContributionPolicy resolves how much of the surplus is invested each month.
type ContributionPolicy struct {
	Mode  ContributionMode `yaml:"mode" json:"mode" toml:"mode"`
	Value float64          `yaml:"value" json:"value" toml:"value"`
}

// FractionOfSurplus is shorthand for a fraction policy.
func FractionOfSurplus(f float64) ContributionPolicy {
	return ContributionPolicy{Mode: ContributionFraction, Value: f}
}

// FixedAmount is shorthand for a fixed-amount policy.
func FixedAmount(v float64) ContributionPolicy {
	return ContributionPolicy{Mode: ContributionFixed, Value: v}
}

// ParseContributionMode accepts the canonical names plus a few synonyms.
func ParseContributionMode(s string) (ContributionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fraction", "fraction-of-surplus", "percent", "percentage":
		return ContributionFraction, nil
	case "fixed", "fixed-amount", "amount":
		return ContributionFixed, nil
	default:
		return "", NewConfigurationError("contribution.mode", "unknown mode %q (want fraction or fixed)", s)
	}
}

// Validate rejects malformed policies.
func (p ContributionPolicy) Validate() error {
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return NewConfigurationError("contribution.value", "must be a finite number")
	}
	switch p.Mode {
	case ContributionFraction:
		if p.Value < 0 || p.Value > 1 {
			return NewConfigurationError("contribution.value", "fraction must be between 0 and 1, got %.4f", p.Value)
		}
	case ContributionFixed:
		if p.Value < 0 {
			return NewConfigurationError("contribution.value", "fixed amount cannot be negative, got %.2f", p.Value)
		}
	default:
		return NewConfigurationError("contribution.mode", "unknown mode %q", p.Mode)
	}
	return nil
}

// Resolve returns the contribution for a month, capped to [0, surplus].
func (p ContributionPolicy) Resolve(surplus float64) float64 {
	if surplus <= 0 {
		return 0
	}
	requested := p.Value
	if p.Mode == ContributionFraction {
		requested = surplus * p.Value
	}
	return math.Max(math.Min(requested, surplus), 0)
}
