package domain

import "time"

// ScenarioState is the mutable state of one trial. It never outlives the trial.
type ScenarioState struct {
	Wealth                float64
	Salary                float64
	ChildActive           bool
	LayoffMonthsRemaining int
}

// DeterministicSeries holds one value per month, index 0 being the starting point.
type DeterministicSeries []float64

// Final returns the last value, or zero for an empty series.
func (s DeterministicSeries) Final() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// MonthlyBand summarizes the ensemble at one month.
type MonthlyBand struct {
	Month         int     `json:"month"`
	Median        float64 `json:"median"`
	P10           float64 `json:"p10"`
	P90           float64 `json:"p90"`
	SavingsMedian float64 `json:"savings_median"`
}

// PercentileRanges describes a distribution at fixed percentiles.
type PercentileRanges struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// EventCounts totals drawn events across an ensemble, keyed by event name.
type EventCounts map[string]int

// EnsembleResult is the reduced output of a Monte Carlo run. Bands has one
// entry per month including month 0.
type EnsembleResult struct {
	Trials          int              `json:"trials"`
	Seed            int64            `json:"seed"`
	Bands           []MonthlyBand    `json:"bands"`
	FinalWealth     PercentileRanges `json:"final_wealth"`
	EventCounts     EventCounts      `json:"event_counts"`
	TargetWealth    float64          `json:"target_wealth,omitempty"`
	GoalProbability float64          `json:"goal_probability,omitempty"`
	TrialPaths      [][]float64      `json:"trial_paths,omitempty"`
}

// Horizon returns the number of simulated months.
func (e *EnsembleResult) Horizon() int {
	if e == nil || len(e.Bands) == 0 {
		return 0
	}
	return len(e.Bands) - 1
}

// YearlySnapshot is the state of the three trajectories at the end of a year.
type YearlySnapshot struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Age     int     `json:"age,omitempty"`
	Median  float64 `json:"median"`
	Ideal   float64 `json:"ideal"`
	Savings float64 `json:"savings"`
}

// SuggestionKind classifies advice produced from the first-month budget.
type SuggestionKind string

const (
	SuggestReduceExpenses SuggestionKind = "reduce_expenses"
	SuggestIncreaseMargin SuggestionKind = "increase_margin"
	SuggestInvestMore     SuggestionKind = "invest_more"
	SuggestReviewHousing  SuggestionKind = "review_housing"
	SuggestOnTrack        SuggestionKind = "on_track"
	SuggestDeficit        SuggestionKind = "deficit"
)

// Suggestion is a single piece of budget advice.
type Suggestion struct {
	Kind    SuggestionKind `json:"kind"`
	Message string         `json:"message"`
}

// BudgetSummary captures the first-month cash flow the advice is based on.
type BudgetSummary struct {
	Salary       float64 `json:"salary"`
	Expenses     float64 `json:"expenses"`
	Surplus      float64 `json:"surplus"`
	Contribution float64 `json:"contribution"`
	Deficit      bool    `json:"deficit"`
}

// Projection is the complete answer to one projection request.
type Projection struct {
	InitialWealth float64             `json:"initial_wealth"`
	InitialSalary float64             `json:"initial_salary"`
	HorizonMonths int                 `json:"horizon_months"`
	Spending      SpendingProfile     `json:"spending"`
	Contribution  ContributionPolicy  `json:"contribution"`
	Assumptions   MarketAssumptions   `json:"assumptions"`
	Convention    RateConvention      `json:"rate_convention"`
	Ensemble      *EnsembleResult     `json:"ensemble"`
	Ideal         DeterministicSeries `json:"ideal"`
	Savings       DeterministicSeries `json:"savings"`
	Yearly        []YearlySnapshot    `json:"yearly"`
	Budget        BudgetSummary       `json:"budget"`
	Suggestions   []Suggestion        `json:"suggestions"`
	GeneratedAt   time.Time           `json:"generated_at"`
}
