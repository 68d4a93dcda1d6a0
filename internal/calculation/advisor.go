package calculation

import (
	"github.com/rpgo/wealth-projector/internal/domain"
)

// Thresholds used by Advise.
const (
	MaxExpenseShare    = 0.70
	MinSurplusShare    = 0.30
	MinInvestedShare   = 0.50
	HousingAlertAmount = 1000.0
)

// FirstMonthBudget computes the month-1 cash flow of a request.
func FirstMonthBudget(r ProjectionRequest) domain.BudgetSummary {
	expenses := r.Spending.Total()
	surplus := r.InitialSalary - expenses
	b := domain.BudgetSummary{
		Salary:   r.InitialSalary,
		Expenses: expenses,
		Surplus:  surplus,
		Deficit:  surplus < 0,
	}
	if surplus > 0 {
		b.Contribution = r.Contribution.Resolve(surplus)
	}
	return b
}

// Advise returns budget suggestions for the first month. It always returns
// at least one suggestion.
func Advise(b domain.BudgetSummary, spending domain.SpendingProfile) []domain.Suggestion {
	var out []domain.Suggestion
	if b.Deficit {
		out = append(out, domain.Suggestion{
			Kind:    domain.SuggestDeficit,
			Message: "Expenses exceed salary: nothing can be invested until fixed costs come down.",
		})
	}
	if b.Expenses > b.Salary*MaxExpenseShare {
		out = append(out, domain.Suggestion{
			Kind:    domain.SuggestReduceExpenses,
			Message: "Fixed expenses are above 70% of salary; trim housing or leisure first.",
		})
	}
	if b.Surplus < b.Salary*MinSurplusShare {
		out = append(out, domain.Suggestion{
			Kind:    domain.SuggestIncreaseMargin,
			Message: "Aim to keep at least 30% of salary as monthly surplus.",
		})
	}
	if b.Surplus > 0 && b.Contribution < b.Surplus*MinInvestedShare {
		out = append(out, domain.Suggestion{
			Kind:    domain.SuggestInvestMore,
			Message: "Invest at least half of the monthly surplus.",
		})
	}
	if spending.Amount(domain.Housing) > HousingAlertAmount {
		out = append(out, domain.Suggestion{
			Kind:    domain.SuggestReviewHousing,
			Message: "Housing above 1,000 a month; sharing or a smaller place frees up the most money.",
		})
	}
	if len(out) == 0 {
		out = append(out, domain.Suggestion{Kind: domain.SuggestOnTrack, Message: "You are on track."})
	}
	return out
}
