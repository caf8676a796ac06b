package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/pkg/moneyutil"
)

const monthsPerYear = 12

// MortgageTerms are the inputs to the amortization engine.
type MortgageTerms struct {
	// Principal is the financed amount: purchase price less down payment.
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermYears         int
	// PaymentOverride is the user-entered total monthly payment. When it
	// exceeds the calculated P&I payment, the excess is other fees and never
	// reduces the balance. An override below P&I is ignored.
	PaymentOverride decimal.Decimal
}

// MortgageYear is one projection year of the amortization schedule. Year 0 is
// the starting state (after any already-elapsed years); later years aggregate
// twelve months of payments each.
type MortgageYear struct {
	Year             int             `json:"year"`
	Balance          decimal.Decimal `json:"balance"`
	PrincipalPaid    decimal.Decimal `json:"principalPaid"`
	InterestPaid     decimal.Decimal `json:"interestPaid"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment"`
	OtherFeesMonthly decimal.Decimal `json:"otherFeesMonthly"`
}

// MonthlyPayment computes the fixed-rate P&I payment:
// M = P*r*(1+r)^n / ((1+r)^n - 1) with r the monthly rate and n the term in
// months. A zero rate degrades to straight-line P/n; a non-positive principal
// or term yields zero.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termYears int) decimal.Decimal {
	n := termYears * monthsPerYear
	if principal.LessThanOrEqual(decimal.Zero) || n <= 0 {
		return decimal.Zero
	}
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n)))
	}
	r := moneyutil.Rate(annualRatePercent).Div(decimal.NewFromInt(monthsPerYear))
	growth := decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(n)))
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// EffectivePayment returns the monthly payment actually made and the portion
// that is other fees. The fee portion exists only when the override exceeds
// the calculated P&I payment.
func (t MortgageTerms) EffectivePayment() (payment, otherFees decimal.Decimal) {
	pi := MonthlyPayment(t.Principal, t.AnnualRatePercent, t.TermYears)
	if t.PaymentOverride.GreaterThan(pi) {
		return t.PaymentOverride, t.PaymentOverride.Sub(pi)
	}
	return pi, decimal.Zero
}

// AmortizationSchedule runs the loan month by month and reports yearly rows
// for the requested horizon. yearsBought fast-forwards the schedule that many
// years before year 0 is read. The principal/interest split always uses the
// P&I payment, never the overridden total. Once the balance reaches zero,
// interest stops accruing and the balance never goes negative.
func AmortizationSchedule(terms MortgageTerms, yearsBought, years int) []MortgageYear {
	if yearsBought < 0 {
		yearsBought = 0
	}
	piPayment := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	effective, otherFees := terms.EffectivePayment()
	monthlyRate := moneyutil.Rate(terms.AnnualRatePercent).Div(decimal.NewFromInt(monthsPerYear))

	balance := terms.Principal
	if balance.LessThan(decimal.Zero) {
		balance = decimal.Zero
	}

	advanceMonth := func() (principal, interest decimal.Decimal) {
		if balance.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, decimal.Zero
		}
		interest = balance.Mul(monthlyRate)
		principal = piPayment.Sub(interest)
		if principal.GreaterThan(balance) {
			principal = balance
		}
		if principal.LessThan(decimal.Zero) {
			principal = decimal.Zero
		}
		balance = balance.Sub(principal)
		return principal, interest
	}

	for m := 0; m < yearsBought*monthsPerYear; m++ {
		advanceMonth()
	}

	schedule := make([]MortgageYear, 0, years+1)
	schedule = append(schedule, MortgageYear{
		Year:             0,
		Balance:          moneyutil.Round2(balance),
		MonthlyPayment:   moneyutil.Round2(effective),
		OtherFeesMonthly: moneyutil.Round2(otherFees),
	})

	for year := 1; year <= years; year++ {
		var principalPaid, interestPaid decimal.Decimal
		for m := 0; m < monthsPerYear; m++ {
			p, i := advanceMonth()
			principalPaid = principalPaid.Add(p)
			interestPaid = interestPaid.Add(i)
		}
		schedule = append(schedule, MortgageYear{
			Year:             year,
			Balance:          moneyutil.Round2(balance),
			PrincipalPaid:    moneyutil.Round2(principalPaid),
			InterestPaid:     moneyutil.Round2(interestPaid),
			MonthlyPayment:   moneyutil.Round2(effective),
			OtherFeesMonthly: moneyutil.Round2(otherFees),
		})
	}
	return schedule
}
