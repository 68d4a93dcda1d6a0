package calculation

import (
	"math"
	"math/rand"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// ScenarioParams are the inputs shared by every trial of a run.
type ScenarioParams struct {
	InitialWealth float64
	InitialSalary float64
	Spending      domain.SpendingProfile
	HorizonMonths int
	Contribution  domain.ContributionPolicy
	Assumptions   domain.MarketAssumptions
	Convention    domain.RateConvention
}

// monthlyRates derives the per-month figures used by both simulators.
func (p ScenarioParams) monthlyRates() (mean, sigma, savings float64) {
	conv := p.Convention
	if conv == "" {
		conv = domain.RateNominal
	}
	return conv.Monthly(p.Assumptions.MeanReturn),
		p.Assumptions.Volatility / math.Sqrt(12),
		conv.Monthly(p.Assumptions.SavingsRate)
}

// monthlyBudget computes expenses, surplus and contribution for month m.
func (p ScenarioParams) monthlyBudget(st *domain.ScenarioState, m int) (expenses, surplus, contribution float64) {
	infl := math.Pow(1+p.Assumptions.Inflation, float64(elapsedYears(m)))
	expenses = p.Spending.Total() * infl
	if st.ChildActive {
		expenses += ChildExpense * infl
	}
	surplus = math.Max(st.Salary-expenses, 0)
	contribution = p.Contribution.Resolve(surplus)
	return expenses, surplus, contribution
}

// TrialPath is the output of one trial. Both series have HorizonMonths+1 entries.
type TrialPath struct {
	Wealth  []float64
	Savings []float64
	Events  [eventKindCount]int
}

// MonthTrace records the intermediate figures of one simulated month.
type MonthTrace struct {
	Month        int
	Event        EventKind
	Salary       float64 // salary after the event and growth steps
	Expenses     float64
	Surplus      float64
	Contribution float64
	Return       float64
	ChildActive  bool
	LayoffLeft   int
}

// ScenarioSimulator runs single stochastic trajectories.
type ScenarioSimulator struct {
	params ScenarioParams
	events EventDrawer
}

// NewScenarioSimulator creates a simulator. A nil drawer uses the default distribution.
func NewScenarioSimulator(params ScenarioParams, events EventDrawer) *ScenarioSimulator {
	if events == nil {
		events = DefaultEventDistribution()
	}
	return &ScenarioSimulator{params: params, events: events}
}

// Run simulates one trial with the given random source.
func (s *ScenarioSimulator) Run(rng *rand.Rand) TrialPath {
	return s.run(rng, nil)
}

// RunWithTrace is Run plus a per-month trace of the accounting.
func (s *ScenarioSimulator) RunWithTrace(rng *rand.Rand) (TrialPath, []MonthTrace) {
	trace := make([]MonthTrace, 0, s.params.HorizonMonths)
	path := s.run(rng, &trace)
	return path, trace
}

func (s *ScenarioSimulator) run(rng *rand.Rand, trace *[]MonthTrace) TrialPath {
	p := s.params
	n := p.HorizonMonths
	mean, sigma, savingsRate := p.monthlyRates()

	path := TrialPath{
		Wealth:  make([]float64, n+1),
		Savings: make([]float64, n+1),
	}
	st := domain.ScenarioState{Wealth: p.InitialWealth, Salary: p.InitialSalary}
	savings := p.InitialWealth
	path.Wealth[0] = st.Wealth
	path.Savings[0] = savings

	for m := 1; m <= n; m++ {
		expenses, surplus, contribution := p.monthlyBudget(&st, m)

		ev := s.events.Draw(m, rng)
		path.Events[ev]++
		if out := applyEvent(&st, ev, m, p.InitialSalary, p.Assumptions.SalaryGrowth); !out.restored {
			applyAnnualGrowth(&st, m, p.Assumptions.SalaryGrowth)
		}

		r := mean + sigma*rng.NormFloat64()
		st.Wealth = math.Max(st.Wealth*(1+r)+contribution, 0)
		savings = savings*(1+savingsRate) + contribution

		path.Wealth[m] = st.Wealth
		path.Savings[m] = savings

		if trace != nil {
			*trace = append(*trace, MonthTrace{
				Month:        m,
				Event:        ev,
				Salary:       st.Salary,
				Expenses:     expenses,
				Surplus:      surplus,
				Contribution: contribution,
				Return:       r,
				ChildActive:  st.ChildActive,
				LayoffLeft:   st.LayoffMonthsRemaining,
			})
		}
	}
	return path
}
