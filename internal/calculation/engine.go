package calculation

import (
	"context"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// ProjectionEngine orchestrates one projection: the Monte Carlo ensemble, the
// deterministic paths, the yearly table and the budget advice.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates an engine with a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Run validates req and computes its projection.
func (pe *ProjectionEngine) Run(ctx context.Context, req ProjectionRequest) (*domain.Projection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Convention == "" {
		req.Convention = domain.RateNominal
	}

	assumptions := req.Assumptions.Clamp()
	if assumptions != req.Assumptions {
		pe.Logger.Warnf("Market assumptions clamped: %+v -> %+v", req.Assumptions, assumptions)
	}
	params := req.scenarioParams(assumptions)

	budget := FirstMonthBudget(req)
	if budget.Deficit {
		pe.Logger.Warnf("Monthly expenses %.2f exceed salary %.2f; contributions start at zero", budget.Expenses, budget.Salary)
	}

	mc := NewMonteCarloAggregator(MonteCarloConfig{
		Trials:       req.Trials,
		Seed:         req.Seed,
		Workers:      req.Workers,
		KeepTrials:   req.KeepTrials,
		TargetWealth: req.TargetWealth,
	})
	mc.Logger = pe.Logger
	pe.Logger.Infof("Running projection: months=%d trials=%d seed=%d", req.HorizonMonths, mc.Trials, mc.Seed)

	ensemble, err := mc.Run(ctx, params, req.eventDrawer())
	if err != nil {
		return nil, err
	}
	ideal, savings := NewDeterministicProjector(params).Project()

	return &domain.Projection{
		InitialWealth: req.InitialWealth,
		InitialSalary: req.InitialSalary,
		HorizonMonths: req.HorizonMonths,
		Spending:      req.Spending,
		Contribution:  req.Contribution,
		Assumptions:   assumptions,
		Convention:    req.Convention,
		Ensemble:      ensemble,
		Ideal:         ideal,
		Savings:       savings,
		Yearly:        YearlyTable(ensemble, ideal, req.Age),
		Budget:        budget,
		Suggestions:   Advise(budget, req.Spending),
		GeneratedAt:   nowFunc(),
	}, nil
}

// YearlyTable samples the three trajectories every twelve months, starting at
// month zero. The savings column is the ensemble median of the savings path.
func YearlyTable(ensemble *domain.EnsembleResult, ideal domain.DeterministicSeries, age int) []domain.YearlySnapshot {
	if ensemble == nil {
		return nil
	}
	var rows []domain.YearlySnapshot
	for year := 0; ; year++ {
		month := year * 12
		if month >= len(ensemble.Bands) || month >= len(ideal) {
			break
		}
		band := ensemble.Bands[month]
		row := domain.YearlySnapshot{
			Year:    year,
			Month:   month,
			Median:  band.Median,
			Ideal:   ideal[month],
			Savings: band.SavingsMedian,
		}
		if age > 0 {
			row.Age = age + year
		}
		rows = append(rows, row)
	}
	return rows
}
