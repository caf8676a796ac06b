package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

func TestCapitalGainsRateLookup(t *testing.T) {
	ftc := NewFederalTaxCalculator2024()

	tests := []struct {
		name     string
		income   decimal.Decimal
		status   domain.FilingStatus
		expected string
	}{
		{"single zero bracket", decimal.NewFromInt(40000), domain.FilingSingle, "0"},
		{"single mid bracket", decimal.NewFromInt(100000), domain.FilingSingle, "0.15"},
		{"single top bracket", decimal.NewFromInt(600000), domain.FilingSingle, "0.2"},
		{"single at boundary", decimal.NewFromInt(47025), domain.FilingSingle, "0.15"},
		{"mfj zero bracket", decimal.NewFromInt(90000), domain.FilingMarriedJoint, "0"},
		{"mfj mid bracket", decimal.NewFromInt(200000), domain.FilingMarriedJoint, "0.15"},
		{"mfs mid bracket", decimal.NewFromInt(100000), domain.FilingMarriedSeparate, "0.15"},
		{"hoh zero bracket", decimal.NewFromInt(62000), domain.FilingHeadOfHousehold, "0"},
		{"income above every max", decimal.NewFromInt(2000000000), domain.FilingSingle, "0.2"},
		{"unknown status uses single table", decimal.NewFromInt(100000), domain.FilingStatus("other"), "0.15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ftc.Rate(tt.income, tt.status).String())
		})
	}
}

func TestFederalCapitalGainsTax(t *testing.T) {
	ftc := NewFederalTaxCalculator2024()

	tax := ftc.Tax(decimal.NewFromInt(100000), decimal.NewFromInt(100000), domain.FilingSingle)
	assert.Equal(t, "15000.00", tax.StringFixed(2))

	assert.True(t, ftc.Tax(decimal.Zero, decimal.NewFromInt(100000), domain.FilingSingle).IsZero())
	assert.True(t, ftc.Tax(decimal.NewFromInt(-5000), decimal.NewFromInt(100000), domain.FilingSingle).IsZero())
}

func TestSection121(t *testing.T) {
	gain := decimal.NewFromInt(300000)

	single := &domain.SaleConfig{FilingStatus: domain.FilingSingle, IsPrimaryResidence: true}
	assert.Equal(t, "50000", ApplySection121(gain, single).String())

	joint := &domain.SaleConfig{FilingStatus: domain.FilingMarriedJoint, IsPrimaryResidence: true}
	assert.True(t, ApplySection121(gain, joint).IsZero(), "fully excluded for married filing jointly")

	notPrimary := &domain.SaleConfig{FilingStatus: domain.FilingSingle}
	assert.Equal(t, gain.String(), ApplySection121(gain, notPrimary).String())

	usedRecently := &domain.SaleConfig{FilingStatus: domain.FilingSingle, IsPrimaryResidence: true, ExclusionUsedRecently: true}
	assert.Equal(t, gain.String(), ApplySection121(gain, usedRecently).String())

	assert.Equal(t, gain.String(), ApplySection121(gain, nil).String())
}

func TestCombinedCapitalGainsTax(t *testing.T) {
	cgc := NewCapitalGainsCalculator()

	result := cgc.Calculate(decimal.NewFromInt(100000), decimal.NewFromInt(100000), domain.FilingSingle, "CA")
	assert.Equal(t, "15000.00", result.FederalTax.StringFixed(2))
	assert.Equal(t, "13300.00", result.StateTax.StringFixed(2))
	assert.Equal(t, "28300.00", result.TotalTax.StringFixed(2))
	assert.Equal(t, "0.28", result.EffectiveRate.StringFixed(2))

	zero := cgc.Calculate(decimal.NewFromInt(-100), decimal.NewFromInt(100000), domain.FilingSingle, "CA")
	assert.True(t, zero.TotalTax.IsZero())
	assert.True(t, zero.EffectiveRate.IsZero())
}

func TestDepreciationRecaptureTax(t *testing.T) {
	sale := &domain.SaleConfig{
		EnableDepreciationRecapture: true,
		AnnualDepreciation:          decimal.NewFromInt(10000),
	}
	assert.Equal(t, "25000.00", DepreciationRecaptureTax(sale, 10).StringFixed(2))

	disabled := &domain.SaleConfig{AnnualDepreciation: decimal.NewFromInt(10000)}
	assert.True(t, DepreciationRecaptureTax(disabled, 10).IsZero())
	assert.True(t, DepreciationRecaptureTax(sale, 0).IsZero())
	assert.True(t, DepreciationRecaptureTax(nil, 10).IsZero())
}
