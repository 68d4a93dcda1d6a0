package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketAssumptions_Clamp(t *testing.T) {
	a := MarketAssumptions{
		Inflation:    -0.01,
		SalaryGrowth: -0.2,
		MeanReturn:   0.35,
		Volatility:   0.9,
		SavingsRate:  -1,
	}.Clamp()
	assert.Equal(t, 0.0, a.Inflation)
	assert.Equal(t, 0.0, a.SalaryGrowth)
	assert.Equal(t, MaxMeanReturn, a.MeanReturn)
	assert.Equal(t, MaxVolatility, a.Volatility)
	assert.Equal(t, 0.0, a.SavingsRate)

	neg := MarketAssumptions{MeanReturn: -0.3, Volatility: -0.1}.Clamp()
	assert.Equal(t, -0.3, neg.MeanReturn)
	assert.Equal(t, 0.0, neg.Volatility)

	crash := MarketAssumptions{MeanReturn: -1.5}.Clamp()
	assert.Equal(t, MinMeanReturn, crash.MeanReturn)
}

func TestMarketAssumptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultMarketAssumptions().Validate())
	err := MarketAssumptions{Volatility: math.NaN()}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "assumptions.volatility")
	assert.Error(t, MarketAssumptions{MeanReturn: math.Inf(1)}.Validate())
}

func TestDefaultMarketAssumptions(t *testing.T) {
	a := DefaultMarketAssumptions()
	assert.InDelta(t, 0.6*0.11+0.4*0.08, a.MeanReturn, 1e-12)
	assert.Equal(t, 0.045, a.Inflation)
	assert.Equal(t, 0.12, a.Volatility)
}

func TestRateConvention(t *testing.T) {
	c, err := ParseRateConvention("")
	require.NoError(t, err)
	assert.Equal(t, RateNominal, c)
	assert.InDelta(t, 0.01, RateNominal.Monthly(0.12), 1e-12)
	assert.InDelta(t, math.Pow(1.12, 1.0/12)-1, RateEffective.Monthly(0.12), 1e-12)

	_, err = ParseRateConvention("weekly")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	// Losses beyond -100% are a total loss, never NaN.
	assert.Equal(t, -1.0, RateEffective.Monthly(-1.5))
	assert.Equal(t, -1.0, RateEffective.Monthly(-1))
}

func TestSpendingProfile(t *testing.T) {
	p, err := NewSpendingProfile(map[Category]float64{Housing: 800, Leisure: 200})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, p.Total())
	assert.Equal(t, 0.0, p.Amount(Education))
	assert.Len(t, p.Map(), 4)

	_, err = NewSpendingProfile(map[Category]float64{Housing: -1})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = NewSpendingProfile(map[Category]float64{"pets": 10})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	var zero SpendingProfile
	assert.Equal(t, 0.0, zero.Total())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"housing":800,"transport":0,"leisure":200,"education":0}`, string(b))
}

func TestContributionPolicy_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		policy  ContributionPolicy
		surplus float64
		want    float64
	}{
		{"fraction", FractionOfSurplus(0.3), 1000, 300},
		{"fraction of nothing", FractionOfSurplus(0.3), 0, 0},
		{"fixed under surplus", FixedAmount(200), 1000, 200},
		{"fixed capped", FixedAmount(2000), 1000, 1000},
		{"negative surplus", FixedAmount(200), -50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.policy.Resolve(tt.surplus), 1e-9)
		})
	}
}

func TestContributionPolicy_Validate(t *testing.T) {
	assert.NoError(t, FractionOfSurplus(0).Validate())
	assert.NoError(t, FixedAmount(0).Validate())
	assert.Error(t, FractionOfSurplus(-0.1).Validate())
	assert.Error(t, FixedAmount(-5).Validate())
	assert.Error(t, ContributionPolicy{Mode: "", Value: 1}.Validate())
	assert.Error(t, FixedAmount(math.NaN()).Validate())

	mode, err := ParseContributionMode("Fixed-Amount")
	require.NoError(t, err)
	assert.Equal(t, ContributionFixed, mode)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("horizon_months", "must be positive, got %d", 0)
	assert.Equal(t, "horizon_months: must be positive, got 0", err.Error())
	wrapped := errors.Join(errors.New("context"), err)
	ce, ok := AsConfigurationError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "horizon_months", ce.Field)
	assert.True(t, errors.Is(wrapped, ErrInvalidConfiguration))
}

func TestProfileConfig_Months(t *testing.T) {
	assert.Equal(t, 120, ProfileConfig{HorizonYears: 10}.Months())
	assert.Equal(t, 18, ProfileConfig{HorizonYears: 10, HorizonMonths: 18}.Months())
}
