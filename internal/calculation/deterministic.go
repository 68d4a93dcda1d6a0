package calculation

import (
	"math"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// DeterministicProjector computes the event-free, variance-free trajectories.
type DeterministicProjector struct {
	params ScenarioParams
}

// NewDeterministicProjector creates a projector for params.
func NewDeterministicProjector(params ScenarioParams) *DeterministicProjector {
	return &DeterministicProjector{params: params}
}

// Project returns the ideal path (flat mean return, no events) and the
// savings-account path. Output depends only on the parameters.
func (dp *DeterministicProjector) Project() (ideal, savings domain.DeterministicSeries) {
	p := dp.params
	n := p.HorizonMonths
	mean, _, savingsRate := p.monthlyRates()

	ideal = make(domain.DeterministicSeries, n+1)
	savings = make(domain.DeterministicSeries, n+1)
	st := domain.ScenarioState{Wealth: p.InitialWealth, Salary: p.InitialSalary}
	sav := p.InitialWealth
	ideal[0], savings[0] = st.Wealth, sav

	for m := 1; m <= n; m++ {
		_, _, contribution := p.monthlyBudget(&st, m)
		applyAnnualGrowth(&st, m, p.Assumptions.SalaryGrowth)

		st.Wealth = math.Max(st.Wealth*(1+mean)+contribution, 0)
		sav = sav*(1+savingsRate) + contribution

		ideal[m] = st.Wealth
		savings[m] = sav
	}
	return ideal, savings
}
