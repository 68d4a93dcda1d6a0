package calculation

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}

func starterRequest(months int) ProjectionRequest {
	req := NewProjectionRequest(3000, 3000, starterSpending(), months)
	req.Seed = 2024
	req.Trials = 100
	return req
}

func TestProjectionEngine_Run(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	req := starterRequest(24)
	req.Age = 25
	proj, err := NewProjectionEngine().Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, fixed, proj.GeneratedAt)
	assert.Len(t, proj.Ensemble.Bands, 25)
	assert.Len(t, proj.Ideal, 25)
	assert.Len(t, proj.Savings, 25)
	require.Len(t, proj.Yearly, 3)
	assert.Equal(t, 0, proj.Yearly[0].Year)
	assert.Equal(t, 27, proj.Yearly[2].Age)
	assert.Equal(t, proj.Ideal[24], proj.Yearly[2].Ideal)
	assert.Equal(t, proj.Ensemble.Bands[12].Median, proj.Yearly[1].Median)
	assert.NotEmpty(t, proj.Suggestions)
}

func TestProjectionEngine_ClampsAssumptions(t *testing.T) {
	req := starterRequest(12)
	req.Assumptions.MeanReturn = 0.9
	req.Assumptions.Volatility = 2
	req.Assumptions.Inflation = -0.05

	logger := &recordingLogger{}
	engine := NewProjectionEngine()
	engine.SetLogger(logger)
	proj, err := engine.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.MaxMeanReturn, proj.Assumptions.MeanReturn)
	assert.Equal(t, domain.MaxVolatility, proj.Assumptions.Volatility)
	assert.Equal(t, 0.0, proj.Assumptions.Inflation)
	assert.NotEmpty(t, logger.warnings)
}

func TestProjectionEngine_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectionRequest)
		field  string
	}{
		{"zero horizon", func(r *ProjectionRequest) { r.HorizonMonths = 0 }, "horizon_months"},
		{"negative horizon", func(r *ProjectionRequest) { r.HorizonMonths = -12 }, "horizon_months"},
		{"horizon too long", func(r *ProjectionRequest) { r.HorizonMonths = domain.MaxHorizonMonths + 1 }, "horizon_months"},
		{"negative trials", func(r *ProjectionRequest) { r.Trials = -1 }, "simulation.trials"},
		{"negative salary", func(r *ProjectionRequest) { r.InitialSalary = -1 }, "initial_salary"},
		{"negative wealth", func(r *ProjectionRequest) { r.InitialWealth = -1 }, "initial_wealth"},
		{"fraction above one", func(r *ProjectionRequest) { r.Contribution = domain.FractionOfSurplus(1.5) }, "contribution.value"},
		{"unknown mode", func(r *ProjectionRequest) { r.Contribution = domain.ContributionPolicy{Mode: "all-in", Value: 1} }, "contribution.mode"},
		{"bad convention", func(r *ProjectionRequest) { r.Convention = "daily" }, "rate_convention"},
		{"scripted outside horizon", func(r *ProjectionRequest) { r.Scripted = ScriptedEvents{99: EventBonus} }, "events.scripted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := starterRequest(12)
			tt.mutate(&req)
			_, err := NewProjectionEngine().Run(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
			ce, ok := domain.AsConfigurationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestProjectionEngine_ScriptedReplayIsDeterministic(t *testing.T) {
	req := starterRequest(36)
	req.Assumptions.Volatility = 0
	req.Scripted = ScriptedEvents{4: EventLayoff, 20: EventChildBirth}

	engine := NewProjectionEngine()
	a, err := engine.Run(context.Background(), req)
	require.NoError(t, err)
	req.Seed = 99
	b, err := engine.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a.Ensemble.Bands, b.Ensemble.Bands)
	assert.Less(t, a.Ensemble.Bands[36].Median, a.Ideal[36])
}

func TestProjectionEngine_EffectiveTotalLoss(t *testing.T) {
	req := starterRequest(24)
	req.Trials = 10
	req.Convention = domain.RateEffective
	req.Assumptions.MeanReturn = -1.5

	proj, err := NewProjectionEngine().Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.MinMeanReturn, proj.Assumptions.MeanReturn)
	for m, b := range proj.Ensemble.Bands {
		for _, v := range []float64{b.Median, b.P10, b.P90, proj.Ideal[m]} {
			assert.False(t, math.IsNaN(v), "month %d", m)
			assert.GreaterOrEqual(t, v, 0.0, "month %d", m)
		}
	}
	_, err = json.Marshal(proj)
	assert.NoError(t, err)
}

func TestProjectionEngine_DefaultTrials(t *testing.T) {
	req := starterRequest(6)
	req.Trials = 0
	proj, err := NewProjectionEngine().Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, DefaultTrials, proj.Ensemble.Trials)
}

func TestYearlyTable_PartialYear(t *testing.T) {
	ensemble := &domain.EnsembleResult{Bands: make([]domain.MonthlyBand, 19)}
	ideal := make(domain.DeterministicSeries, 19)
	rows := YearlyTable(ensemble, ideal, 0)
	require.Len(t, rows, 2)
	assert.Equal(t, 12, rows[1].Month)
	assert.Zero(t, rows[1].Age)
	assert.Nil(t, YearlyTable(nil, ideal, 0))
}
