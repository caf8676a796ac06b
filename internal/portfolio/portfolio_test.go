package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

func newTestPortfolio() *Portfolio {
	return New(nil)
}

func TestNewPortfolioSeedsOneInvestment(t *testing.T) {
	p := newTestPortfolio()
	assets := p.Assets()
	require.Len(t, assets, 1)
	assert.Equal(t, domain.KindInvestment, assets[0].Kind)
	assert.Equal(t, assets[0].ID, p.ActiveAssetID)
	assert.Len(t, assets[0].Results, p.Years+1)
}

func TestCombinedBalancesSumEnabledAssets(t *testing.T) {
	p := newTestPortfolio()
	first := p.Assets()[0]
	require.NoError(t, p.UpdateAssetInput(first.ID, "initialAmount", "10000"))
	require.NoError(t, p.UpdateAssetInput(first.ID, "annualContribution", "0"))

	second := p.AddInvestment("Second")
	require.NoError(t, p.UpdateAssetInput(second.ID, "initialAmount", "20000"))
	require.NoError(t, p.UpdateAssetInput(second.ID, "annualContribution", "0"))

	combined := p.CombinedResults()
	require.Len(t, combined, p.Years+1)
	assert.Equal(t, "30000.00", combined[0].TotalBalance.StringFixed(2))
	assert.Len(t, combined[0].AssetBreakdown, 2)

	// Disabling removes the asset from totals and breakdown alike.
	require.NoError(t, p.SetEnabled(second.ID, false))
	combined = p.CombinedResults()
	assert.Equal(t, "10000.00", combined[0].TotalBalance.StringFixed(2))
	require.Len(t, combined[0].AssetBreakdown, 1)
	assert.Equal(t, first.ID, combined[0].AssetBreakdown[0].AssetID)
}

func TestCombinedSeparatesInvestmentAndPropertyTotals(t *testing.T) {
	p := newTestPortfolio()
	p.AddProperty("Rental")

	combined := p.CombinedResults()
	y0 := combined[0]
	assert.Equal(t, "500000.00", y0.TotalPropertyValue.StringFixed(2))
	assert.Equal(t, "400000.00", y0.TotalMortgageBalance.StringFixed(2))
	assert.Equal(t, "100000.00", y0.TotalPropertyEquity.StringFixed(2))
	assert.Equal(t, "10000.00", y0.TotalInvestmentBalance.StringFixed(2))
	assert.Equal(t, "110000.00", y0.TotalBalance.StringFixed(2))
}

func TestRemoveAsset(t *testing.T) {
	p := newTestPortfolio()
	first := p.Assets()[0]

	// The last asset can never be removed.
	err := p.RemoveAsset(first.ID)
	assert.ErrorIs(t, err, ErrLastAsset)

	second := p.AddInvestment("Second")
	require.NoError(t, p.RemoveAsset(first.ID))
	assert.Len(t, p.Assets(), 1)
	// Active selection moves off the removed asset.
	assert.Equal(t, second.ID, p.ActiveAssetID)

	err = p.RemoveAsset("no-such-id")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestDuplicateAssetIsIndependent(t *testing.T) {
	p := newTestPortfolio()
	first := p.Assets()[0]
	require.NoError(t, p.UpdateAssetInput(first.ID, "initialAmount", "42000"))

	dup, err := p.DuplicateAsset(first.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, dup.ID)
	assert.Equal(t, first.Name+" (copy)", dup.Name)
	assert.Equal(t, "42000", dup.Investment.InitialAmount.String())

	// Mutating the copy must not leak back into the source.
	require.NoError(t, p.UpdateAssetInput(dup.ID, "initialAmount", "1"))
	assert.Equal(t, "42000", first.Investment.InitialAmount.String())
}

func TestSetYearsClampsAndRegenerates(t *testing.T) {
	p := newTestPortfolio()
	p.SetYears(25)
	assert.Equal(t, 25, p.Years)
	assert.Len(t, p.Assets()[0].Results, 26)

	p.SetYears(0)
	assert.Equal(t, 1, p.Years)
	assert.Len(t, p.Assets()[0].Results, 2)
}

func TestSetInflationRatePropagates(t *testing.T) {
	p := newTestPortfolio()
	prop := p.AddProperty("Rental")

	p.SetInflationRate(decimal.NewFromInt(4))
	assert.Equal(t, "4", p.Assets()[0].Investment.InflationRate.String())
	assert.Equal(t, "4", prop.Property.InflationRate.String())
}

func TestDisplayTogglesNeverBothOff(t *testing.T) {
	p := newTestPortfolio()
	p.SetShowReal(false)
	assert.True(t, p.ShowNominal)
	assert.False(t, p.ShowReal)

	// Turning the remaining toggle off forces the other back on.
	p.SetShowNominal(false)
	assert.True(t, p.ShowReal)
	assert.False(t, p.ShowNominal)
}

func TestUnknownInputKeyIsIgnored(t *testing.T) {
	p := newTestPortfolio()
	first := p.Assets()[0]
	require.NoError(t, p.UpdateAssetInput(first.ID, "noSuchField", "5"))
	assert.Equal(t, "10000", first.Investment.InitialAmount.String())

	err := p.UpdateAssetInput("no-such-id", "initialAmount", "5")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestLinkedPropertyCashFlowsFeedInvestment(t *testing.T) {
	p := newTestPortfolio()
	inv := p.Assets()[0]
	require.NoError(t, p.UpdateAssetInput(inv.ID, "annualContribution", "0"))

	prop := p.AddProperty("Rental")
	prop.Property.IsRentalProperty = true
	prop.Property.DownPaymentPercentage = decimal.NewFromInt(100)
	prop.Property.LinkedInvestmentID = inv.ID
	p.RecomputeAll()

	flows := p.LinkedPropertyCashFlows(inv.ID)
	require.Len(t, flows, p.Years)
	for year := 1; year <= p.Years; year++ {
		expected := prop.Results[year].Property.AnnualCashFlow
		assert.Equal(t, expected.String(), flows[year-1].String(), "year %d", year)
	}

	// The investment's snapshots carry the flow through.
	assert.Equal(t, flows[0].Round(2).String(), inv.Results[1].PropertyCashFlow.String())

	// Disabled properties contribute nothing.
	require.NoError(t, p.SetEnabled(prop.ID, false))
	for _, flow := range p.LinkedPropertyCashFlows(inv.ID) {
		assert.True(t, flow.IsZero())
	}
}

func TestSaleProceedsReinvestedInSaleYear(t *testing.T) {
	p := newTestPortfolio()
	inv := p.Assets()[0]
	require.NoError(t, p.UpdateAssetInput(inv.ID, "annualContribution", "0"))

	prop := p.AddProperty("Rental")
	prop.Property.DownPaymentPercentage = decimal.NewFromInt(100)
	prop.Property.PropertyGrowthRate = decimal.Zero
	prop.Property.Sale = &domain.SaleConfig{
		IsPlannedForSale:       true,
		SaleYear:               3,
		ExpectedSalePrice:      decimal.NewFromInt(600000),
		SellingCostsPercentage: decimal.NewFromInt(6),
		FilingStatus:           domain.FilingSingle,
		State:                  "TX",
		ReinvestProceeds:       true,
		TargetInvestmentID:     inv.ID,
	}
	p.RecomputeAll()

	saleDetail := prop.Results[3].Property
	require.True(t, saleDetail.IsSaleYear)
	require.True(t, saleDetail.SaleProceeds.IsPositive())

	flows := p.LinkedPropertyCashFlows(inv.ID)
	assert.Equal(t, saleDetail.SaleProceeds.String(), flows[2].String())
	assert.Equal(t, saleDetail.SaleProceeds.Round(2).String(), inv.Results[3].PropertyCashFlow.String())

	// Years after the sale inject nothing.
	for year := 4; year <= p.Years; year++ {
		assert.True(t, flows[year-1].IsZero(), "year %d", year)
	}
}

func TestBuildReport(t *testing.T) {
	p := newTestPortfolio()
	p.AddProperty("Rental")

	report := p.BuildReport()
	assert.Equal(t, p.Years, report.Years)
	assert.Len(t, report.Assets, 2)
	assert.Len(t, report.Combined, p.Years+1)
	assert.NotNil(t, report.Assets[0].Summary)
	assert.Nil(t, report.Assets[1].Summary)
}
