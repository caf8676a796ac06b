package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/internal/domain"
	"github.com/dyaboykyl/investisizer/pkg/moneyutil"
)

// ProjectInvestment produces the year-indexed series for an investment.
// propertyFlows carries externally resolved cash flows from linked properties:
// propertyFlows[y-1] is the flow applied in year y (positive = the property
// contributes, negative = it draws). A nil slice means no links.
//
// The cash adjustment for a year (direct contribution plus property flow) is
// applied to the balance before growth compounds:
//
//	balance = (previous + cashFlow) * (1 + rate/100)
//
// Withdrawing first reduces the base that earns return that year.
func ProjectInvestment(in *domain.InvestmentInputs, years int, propertyFlows []decimal.Decimal) ([]domain.AnnualSnapshot, *domain.InvestmentSummary) {
	if years < 1 {
		years = 1
	}
	one := decimal.NewFromInt(1)
	growth := one.Add(moneyutil.Rate(in.RateOfReturn))
	rate := moneyutil.Rate(in.RateOfReturn)

	results := make([]domain.AnnualSnapshot, 0, years+1)
	results = append(results, domain.AnnualSnapshot{
		Year:        0,
		Balance:     moneyutil.Round2(in.InitialAmount),
		RealBalance: moneyutil.Round2(in.InitialAmount),
	})

	summary := &domain.InvestmentSummary{InitialAmount: moneyutil.Round2(in.InitialAmount)}

	// Running state kept at full precision; only stored fields are rounded.
	balance := in.InitialAmount
	netContributions := decimal.Zero

	for year := 1; year <= years; year++ {
		contribution := in.AnnualContribution
		if in.InflationAdjustedContributions {
			contribution = moneyutil.Compound(in.AnnualContribution, in.InflationRate, year)
		}

		propertyFlow := decimal.Zero
		if year-1 < len(propertyFlows) {
			propertyFlow = propertyFlows[year-1]
		}

		cashFlow := contribution.Add(propertyFlow)
		previous := balance
		balance = previous.Add(cashFlow).Mul(growth)
		netContributions = netContributions.Add(cashFlow)

		annualGain := previous.Mul(rate)
		yearlyGain := balance.Sub(previous).Sub(cashFlow)
		totalEarnings := balance.Sub(in.InitialAmount).Sub(netContributions)

		realContribution := moneyutil.Deflate(contribution, in.InflationRate, year)
		if in.InflationAdjustedContributions {
			// Constant by construction: the nominal amount grows exactly with
			// inflation, so the real value is the entered figure.
			realContribution = in.AnnualContribution
		}

		results = append(results, domain.AnnualSnapshot{
			Year:                     year,
			Balance:                  moneyutil.Round2(balance),
			RealBalance:              moneyutil.Round2(moneyutil.Deflate(balance, in.InflationRate, year)),
			AnnualContribution:       moneyutil.Round2(contribution),
			RealAnnualContribution:   moneyutil.Round2(realContribution),
			PropertyCashFlow:         moneyutil.Round2(propertyFlow),
			RealPropertyCashFlow:     moneyutil.Round2(moneyutil.Deflate(propertyFlow, in.InflationRate, year)),
			TotalEarnings:            moneyutil.Round2(totalEarnings),
			RealTotalEarnings:        moneyutil.Round2(moneyutil.Deflate(totalEarnings, in.InflationRate, year)),
			YearlyGain:               moneyutil.Round2(yearlyGain),
			RealYearlyGain:           moneyutil.Round2(moneyutil.Deflate(yearlyGain, in.InflationRate, year)),
			AnnualInvestmentGain:     moneyutil.Round2(annualGain),
			RealAnnualInvestmentGain: moneyutil.Round2(moneyutil.Deflate(annualGain, in.InflationRate, year)),
		})

		if contribution.IsPositive() {
			summary.TotalContributed = summary.TotalContributed.Add(contribution)
		} else {
			summary.TotalWithdrawn = summary.TotalWithdrawn.Add(contribution.Abs())
		}
		if propertyFlow.IsPositive() {
			summary.PropertyCashFlowContributed = summary.PropertyCashFlowContributed.Add(propertyFlow)
		} else {
			summary.PropertyCashFlowWithdrawn = summary.PropertyCashFlowWithdrawn.Add(propertyFlow.Abs())
		}
	}

	final := results[len(results)-1]
	summary.NetContributions = moneyutil.Round2(netContributions)
	summary.TotalContributed = moneyutil.Round2(summary.TotalContributed)
	summary.TotalWithdrawn = moneyutil.Round2(summary.TotalWithdrawn)
	summary.PropertyCashFlowContributed = moneyutil.Round2(summary.PropertyCashFlowContributed)
	summary.PropertyCashFlowWithdrawn = moneyutil.Round2(summary.PropertyCashFlowWithdrawn)
	summary.TotalEarnings = final.TotalEarnings
	summary.RealTotalEarnings = final.RealTotalEarnings
	summary.FinalBalance = final.Balance
	summary.FinalNetGain = moneyutil.Round2(final.TotalEarnings.Add(summary.NetContributions))

	return results, summary
}
