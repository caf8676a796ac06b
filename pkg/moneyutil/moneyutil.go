// Package moneyutil provides the shared decimal helpers used by every
// projection component: free-text numeric parsing, percentage compounding,
// inflation deflation and cent rounding.
package moneyutil

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseNumber parses a free-text numeric field. Currency symbols, commas and
// surrounding whitespace are tolerated. Empty or invalid input yields zero;
// this function never fails, so a projection always proceeds with a defined
// result.
func ParseNumber(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// GrowthFactor returns (1 + ratePercent/100)^periods.
func GrowthFactor(ratePercent decimal.Decimal, periods int) decimal.Decimal {
	base := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	return base.Pow(decimal.NewFromInt(int64(periods)))
}

// Compound grows principal at ratePercent per period over the given number of
// periods: principal * (1 + ratePercent/100)^periods.
func Compound(principal, ratePercent decimal.Decimal, periods int) decimal.Decimal {
	return principal.Mul(GrowthFactor(ratePercent, periods))
}

// Deflate converts a nominal amount into constant purchasing-power terms:
// nominal / (1 + inflationPercent/100)^years.
func Deflate(nominal, inflationPercent decimal.Decimal, years int) decimal.Decimal {
	factor := GrowthFactor(inflationPercent, years)
	if factor.IsZero() {
		return decimal.Zero
	}
	return nominal.Div(factor)
}

// Round2 rounds to cents. Every stored result field passes through this so
// downstream sums are reproducible.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Rate converts a percentage to its decimal fraction (7 -> 0.07).
func Rate(ratePercent decimal.Decimal) decimal.Decimal {
	return ratePercent.Div(hundred)
}
