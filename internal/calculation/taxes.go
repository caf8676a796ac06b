package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets: 2024 long-term capital-gains brackets for all
//    projection years. No inflation indexing applied to future years.
//
// 2. State rates: static per-state flat rates for the same reference year
//    (see statetax.go). States without a capital-gains tax compute to zero.
//
// 3. Section 121: $250,000 exclusion ($500,000 married filing jointly) for a
//    primary residence, gated on a policy flag for prior use rather than
//    recomputed from dates.
//
// 4. Depreciation recapture: flat 25% on accumulated straight-line
//    depreciation, reported separately from bracket tax.

// CapitalGainsBracket is one row of a federal long-term capital-gains table.
type CapitalGainsBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// FederalTaxCalculator holds the 2024 long-term capital-gains brackets for the
// four filing statuses.
type FederalTaxCalculator struct {
	Year     int
	Brackets map[domain.FilingStatus][]CapitalGainsBracket
}

func bracket(min, max int64, rate float64) CapitalGainsBracket {
	return CapitalGainsBracket{
		Min:  decimal.NewFromInt(min),
		Max:  decimal.NewFromInt(max),
		Rate: decimal.NewFromFloat(rate),
	}
}

// NewFederalTaxCalculator2024 creates the federal calculator for tax year 2024.
func NewFederalTaxCalculator2024() *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Year: 2024,
		Brackets: map[domain.FilingStatus][]CapitalGainsBracket{
			domain.FilingSingle: {
				bracket(0, 47025, 0),
				bracket(47025, 518900, 0.15),
				bracket(518900, 999999999, 0.20),
			},
			domain.FilingMarriedJoint: {
				bracket(0, 94050, 0),
				bracket(94050, 583750, 0.15),
				bracket(583750, 999999999, 0.20),
			},
			domain.FilingMarriedSeparate: {
				bracket(0, 47025, 0),
				bracket(47025, 291850, 0.15),
				bracket(291850, 999999999, 0.20),
			},
			domain.FilingHeadOfHousehold: {
				bracket(0, 63000, 0),
				bracket(63000, 551350, 0.15),
				bracket(551350, 999999999, 0.20),
			},
		},
	}
}

// Rate returns the bracket rate matching min <= income < max for the filing
// status, falling back to the top bracket when income exceeds every max.
// An unknown status uses the single table.
func (ftc *FederalTaxCalculator) Rate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	brackets, ok := ftc.Brackets[status]
	if !ok {
		brackets = ftc.Brackets[domain.FilingSingle]
	}
	for _, b := range brackets {
		if income.GreaterThanOrEqual(b.Min) && income.LessThan(b.Max) {
			return b.Rate
		}
	}
	return brackets[len(brackets)-1].Rate
}

// Tax computes federal capital-gains tax: zero for non-positive gain, else
// gain times the bracket rate for the taxpayer's income.
func (ftc *FederalTaxCalculator) Tax(gain, income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if gain.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return gain.Mul(ftc.Rate(income, status))
}

// Section121Exclusion returns the primary-residence gain exclusion for the
// filing status: $500,000 married filing jointly, $250,000 otherwise.
func Section121Exclusion(status domain.FilingStatus) decimal.Decimal {
	if status == domain.FilingMarriedJoint {
		return decimal.NewFromInt(500000)
	}
	return decimal.NewFromInt(250000)
}

// Section121Eligible reports whether the sale qualifies for the exclusion.
func Section121Eligible(sale *domain.SaleConfig) bool {
	return sale != nil && sale.IsPrimaryResidence && !sale.ExclusionUsedRecently
}

// ApplySection121 reduces a capital gain by the exclusion when eligible. Only
// the gain exceeding the exclusion remains taxable.
func ApplySection121(gain decimal.Decimal, sale *domain.SaleConfig) decimal.Decimal {
	if !Section121Eligible(sale) {
		return gain
	}
	taxable := gain.Sub(Section121Exclusion(sale.FilingStatus))
	if taxable.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return taxable
}

// CapitalGainsTaxResult is the combined federal + state computation for one
// realized gain.
type CapitalGainsTaxResult struct {
	TaxableGain   decimal.Decimal `json:"taxableGain"`
	FederalTax    decimal.Decimal `json:"federalTax"`
	StateTax      decimal.Decimal `json:"stateTax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	StateNote     string          `json:"stateNote,omitempty"`
}

// CapitalGainsCalculator combines the federal bracket table with the state
// rate table.
type CapitalGainsCalculator struct {
	Federal *FederalTaxCalculator
	States  *StateTaxTable
}

// NewCapitalGainsCalculator creates the combined calculator with the 2024
// reference tables.
func NewCapitalGainsCalculator() *CapitalGainsCalculator {
	return &CapitalGainsCalculator{
		Federal: NewFederalTaxCalculator2024(),
		States:  NewStateTaxTable(),
	}
}

// Calculate computes federal plus state tax on a taxable gain. The effective
// rate is total tax over gain, zero when the gain is non-positive.
func (cgc *CapitalGainsCalculator) Calculate(gain, income decimal.Decimal, status domain.FilingStatus, state string) CapitalGainsTaxResult {
	result := CapitalGainsTaxResult{TaxableGain: gain}
	if gain.LessThanOrEqual(decimal.Zero) {
		result.TaxableGain = decimal.Zero
		return result
	}
	result.FederalTax = cgc.Federal.Tax(gain, income, status)
	stateTax, note := cgc.States.Tax(gain, state)
	result.StateTax = stateTax
	result.StateNote = note
	result.TotalTax = result.FederalTax.Add(result.StateTax)
	result.EffectiveRate = result.TotalTax.Div(gain)
	return result
}

// DepreciationRecaptureRate is the flat federal rate applied to accumulated
// depreciation on sale.
var DepreciationRecaptureRate = decimal.NewFromFloat(0.25)

// DepreciationRecaptureTax returns the recapture tax on accumulated
// depreciation, zero when disabled or nothing was depreciated.
func DepreciationRecaptureTax(sale *domain.SaleConfig, yearsOwned int) decimal.Decimal {
	if sale == nil || !sale.EnableDepreciationRecapture || yearsOwned <= 0 {
		return decimal.Zero
	}
	accumulated := sale.AnnualDepreciation.Mul(decimal.NewFromInt(int64(yearsOwned)))
	if accumulated.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return accumulated.Mul(DepreciationRecaptureRate)
}
