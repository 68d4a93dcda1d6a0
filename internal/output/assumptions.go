package output

import (
	"fmt"

	"github.com/rpgo/wealth-projector/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind p for detailed outputs.
func GenerateAssumptions(p *domain.Projection) []string {
	a := p.Assumptions
	convention := p.Convention
	if convention == "" {
		convention = domain.RateNominal
	}
	return []string{
		fmt.Sprintf("Inflation: %s annually, applied to expenses once per elapsed year", FormatPercentage(a.Inflation)),
		fmt.Sprintf("Salary growth: %s annually", FormatPercentage(a.SalaryGrowth)),
		fmt.Sprintf("Portfolio return: %s mean, %s volatility (60%% fixed income / 40%% equity)",
			FormatPercentage(a.MeanReturn), FormatPercentage(a.Volatility)),
		fmt.Sprintf("Savings account: %s annually", FormatPercentage(a.SavingsRate)),
		fmt.Sprintf("Monthly rates use the %s convention", convention),
		contributionAssumption(p.Contribution),
	}
}

func contributionAssumption(c domain.ContributionPolicy) string {
	if c.Mode == domain.ContributionFixed {
		return fmt.Sprintf("Contribution: fixed %s per month, capped at the surplus", plain(c.Value))
	}
	return fmt.Sprintf("Contribution: %s of the monthly surplus", FormatPercentage(c.Value))
}
