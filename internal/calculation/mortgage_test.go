package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		termYears int
		expected  string
	}{
		{"standard 30y at 7%", decimal.NewFromInt(400000), decimal.NewFromInt(7), 30, "2661.21"},
		{"zero rate is straight-line", decimal.NewFromInt(360000), decimal.Zero, 30, "1000.00"},
		{"zero principal", decimal.Zero, decimal.NewFromInt(7), 30, "0.00"},
		{"negative principal", decimal.NewFromInt(-100), decimal.NewFromInt(7), 30, "0.00"},
		{"zero term", decimal.NewFromInt(400000), decimal.NewFromInt(7), 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.rate, tt.termYears)
			assert.Equal(t, tt.expected, got.Round(2).StringFixed(2))
		})
	}
}

func TestAmortizationScheduleStartingBalance(t *testing.T) {
	// 500000 purchase at 20% down finances 400000.
	terms := MortgageTerms{
		Principal:         decimal.NewFromInt(400000),
		AnnualRatePercent: decimal.NewFromInt(7),
		TermYears:         30,
	}
	schedule := AmortizationSchedule(terms, 0, 10)
	require.Len(t, schedule, 11)

	assert.Equal(t, "400000.00", schedule[0].Balance.StringFixed(2))
	assert.True(t, schedule[10].Balance.IsPositive(), "30y loan still has a balance at year 10")
	assert.True(t, schedule[10].Balance.LessThan(decimal.NewFromInt(400000)))

	// Balances decrease monotonically while the loan is open.
	for y := 1; y <= 10; y++ {
		assert.True(t, schedule[y].Balance.LessThan(schedule[y-1].Balance),
			"year %d balance %s should be below year %d balance %s",
			y, schedule[y].Balance, y-1, schedule[y-1].Balance)
	}
}

func TestAmortizationPayoff(t *testing.T) {
	fifteen := MortgageTerms{
		Principal:         decimal.NewFromInt(400000),
		AnnualRatePercent: decimal.NewFromInt(7),
		TermYears:         15,
	}
	thirty := fifteen
	thirty.TermYears = 30

	s15 := AmortizationSchedule(fifteen, 0, 15)
	s30 := AmortizationSchedule(thirty, 0, 15)

	assert.True(t, s15[15].Balance.IsZero(), "15y loan pays off by year 15, got %s", s15[15].Balance)
	assert.True(t, s30[15].Balance.IsPositive(), "30y loan is not paid off at year 15")
}

func TestAmortizationNeverGoesNegative(t *testing.T) {
	terms := MortgageTerms{
		Principal:         decimal.NewFromInt(120000),
		AnnualRatePercent: decimal.NewFromInt(5),
		TermYears:         10,
	}
	// Project well past payoff.
	schedule := AmortizationSchedule(terms, 0, 20)
	for _, row := range schedule {
		assert.False(t, row.Balance.IsNegative(), "year %d balance %s", row.Year, row.Balance)
	}
	// After payoff no further principal or interest accrues.
	assert.True(t, schedule[11].PrincipalPaid.IsZero())
	assert.True(t, schedule[11].InterestPaid.IsZero())
}

func TestYearsBoughtFastForward(t *testing.T) {
	terms := MortgageTerms{
		Principal:         decimal.NewFromInt(400000),
		AnnualRatePercent: decimal.NewFromInt(7),
		TermYears:         30,
	}
	fresh := AmortizationSchedule(terms, 0, 10)
	seasoned := AmortizationSchedule(terms, 5, 5)

	// A loan 5 years in starts where the fresh schedule is at year 5.
	assert.Equal(t, fresh[5].Balance.StringFixed(2), seasoned[0].Balance.StringFixed(2))
	assert.Equal(t, fresh[10].Balance.StringFixed(2), seasoned[5].Balance.StringFixed(2))
}

func TestPaymentOverride(t *testing.T) {
	terms := MortgageTerms{
		Principal:         decimal.NewFromInt(400000),
		AnnualRatePercent: decimal.NewFromInt(7),
		TermYears:         30,
		PaymentOverride:   decimal.NewFromInt(3000),
	}
	base := terms
	base.PaymentOverride = decimal.Zero

	withOverride := AmortizationSchedule(terms, 0, 5)
	without := AmortizationSchedule(base, 0, 5)

	// The override is reported as the payment; the excess is other fees.
	assert.Equal(t, "3000.00", withOverride[1].MonthlyPayment.StringFixed(2))
	assert.Equal(t, "338.79", withOverride[1].OtherFeesMonthly.StringFixed(2))

	// Principal/interest split only ever uses the P&I portion, so the
	// balances are identical with and without the override.
	for y := 0; y <= 5; y++ {
		assert.Equal(t, without[y].Balance.StringFixed(2), withOverride[y].Balance.StringFixed(2))
	}

	// An override below P&I is ignored.
	low := base
	low.PaymentOverride = decimal.NewFromInt(1000)
	lowSchedule := AmortizationSchedule(low, 0, 1)
	assert.Equal(t, without[1].MonthlyPayment.StringFixed(2), lowSchedule[1].MonthlyPayment.StringFixed(2))
	assert.True(t, lowSchedule[1].OtherFeesMonthly.IsZero())
}
