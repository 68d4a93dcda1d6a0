package domain

import (
	"math"
	"strings"
)

// Bounds applied by MarketAssumptions.Clamp.
const (
	MinMeanReturn = -1.0
	MaxMeanReturn = 0.20
	MaxVolatility = 0.50
)

// Fallback values used whenever an indicator cannot be fetched.
const (
	FallbackInflation    = 0.045
	FallbackFixedIncome  = 0.11
	FallbackEquityReturn = 0.08
	FallbackVolatility   = 0.12
	DefaultSalaryGrowth  = 0.03
	DefaultSavingsRate   = 0.06
	FixedIncomeWeight    = 0.6
	EquityWeight         = 0.4
)

// MarketAssumptions holds annualized macro parameters for one run.
type MarketAssumptions struct {
	Inflation    float64 `yaml:"inflation" json:"inflation" toml:"inflation"`
	SalaryGrowth float64 `yaml:"salary_growth" json:"salary_growth" toml:"salary_growth"`
	MeanReturn   float64 `yaml:"mean_return" json:"mean_return" toml:"mean_return"`
	Volatility   float64 `yaml:"volatility" json:"volatility" toml:"volatility"`
	SavingsRate  float64 `yaml:"savings_rate" json:"savings_rate" toml:"savings_rate"`
}

// BlendedReturn mixes a fixed-income and an equity benchmark 60/40.
func BlendedReturn(fixedIncome, equity float64) float64 {
	return FixedIncomeWeight*fixedIncome + EquityWeight*equity
}

// DefaultMarketAssumptions returns the documented fallback record.
func DefaultMarketAssumptions() MarketAssumptions {
	return MarketAssumptions{
		Inflation:    FallbackInflation,
		SalaryGrowth: DefaultSalaryGrowth,
		MeanReturn:   BlendedReturn(FallbackFixedIncome, FallbackEquityReturn),
		Volatility:   FallbackVolatility,
		SavingsRate:  DefaultSavingsRate,
	}
}

// Validate rejects non-finite rates.
func (a MarketAssumptions) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"inflation", a.Inflation},
		{"salary_growth", a.SalaryGrowth},
		{"mean_return", a.MeanReturn},
		{"volatility", a.Volatility},
		{"savings_rate", a.SavingsRate},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return NewConfigurationError("assumptions."+f.name, "must be a finite number, got %v", f.value)
		}
	}
	return nil
}

// Clamp returns a copy bounded to the ranges the engine accepts.
func (a MarketAssumptions) Clamp() MarketAssumptions {
	a.Inflation = math.Max(a.Inflation, 0)
	a.SalaryGrowth = math.Max(a.SalaryGrowth, 0)
	a.SavingsRate = math.Max(a.SavingsRate, 0)
	a.MeanReturn = math.Min(math.Max(a.MeanReturn, MinMeanReturn), MaxMeanReturn)
	a.Volatility = math.Min(math.Max(a.Volatility, 0), MaxVolatility)
	return a
}

// RateConvention selects how annual rates become monthly rates.
type RateConvention string

const (
	// RateNominal divides the annual rate by twelve.
	RateNominal RateConvention = "nominal"
	// RateEffective takes the twelfth root of the annual growth factor.
	RateEffective RateConvention = "effective"
)

// ParseRateConvention accepts "", "nominal" or "effective".
func ParseRateConvention(s string) (RateConvention, error) {
	switch RateConvention(strings.ToLower(strings.TrimSpace(s))) {
	case "", RateNominal:
		return RateNominal, nil
	case RateEffective:
		return RateEffective, nil
	default:
		return "", NewConfigurationError("rate_convention", "unknown convention %q (want nominal or effective)", s)
	}
}

// Monthly converts an annual rate using the convention. Under the effective
// convention a loss beyond -100% is treated as a total loss.
func (c RateConvention) Monthly(annual float64) float64 {
	if c == RateEffective {
		return math.Pow(math.Max(1+annual, 0), 1.0/12) - 1
	}
	return annual / 12
}
