package calculation

import (
	"testing"

	"github.com/rpgo/wealth-projector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func kinds(s []domain.Suggestion) []domain.SuggestionKind {
	out := make([]domain.SuggestionKind, len(s))
	for i, v := range s {
		out[i] = v.Kind
	}
	return out
}

func TestAdvise(t *testing.T) {
	tests := []struct {
		name     string
		salary   float64
		spending map[domain.Category]float64
		policy   domain.ContributionPolicy
		want     []domain.SuggestionKind
	}{
		{
			name:     "on track",
			salary:   10000,
			spending: map[domain.Category]float64{domain.Housing: 800, domain.Transport: 300},
			policy:   domain.FractionOfSurplus(0.8),
			want:     []domain.SuggestionKind{domain.SuggestOnTrack},
		},
		{
			name:     "expensive housing with low investment",
			salary:   3000,
			spending: map[domain.Category]float64{domain.Housing: 1400, domain.Transport: 1200},
			policy:   domain.FractionOfSurplus(0.3),
			want: []domain.SuggestionKind{
				domain.SuggestReduceExpenses,
				domain.SuggestIncreaseMargin,
				domain.SuggestInvestMore,
				domain.SuggestReviewHousing,
			},
		},
		{
			name:     "deficit",
			salary:   2000,
			spending: map[domain.Category]float64{domain.Housing: 1400, domain.Transport: 1200},
			policy:   domain.FractionOfSurplus(1),
			want: []domain.SuggestionKind{
				domain.SuggestDeficit,
				domain.SuggestReduceExpenses,
				domain.SuggestIncreaseMargin,
				domain.SuggestReviewHousing,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewProjectionRequest(0, tt.salary, domain.MustSpendingProfile(tt.spending), 12)
			req.Contribution = tt.policy
			budget := FirstMonthBudget(req)
			assert.Equal(t, tt.want, kinds(Advise(budget, req.Spending)))
		})
	}
}

func TestFirstMonthBudget(t *testing.T) {
	req := NewProjectionRequest(3000, 3000, starterSpending(), 12)
	b := FirstMonthBudget(req)
	assert.Equal(t, 1300.0, b.Expenses)
	assert.Equal(t, 1700.0, b.Surplus)
	assert.InDelta(t, 510.0, b.Contribution, 1e-9)
	assert.False(t, b.Deficit)
}
