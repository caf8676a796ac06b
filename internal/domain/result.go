package domain

import (
	"github.com/shopspring/decimal"
)

// AnnualSnapshot is the common per-year result shape shared by both asset
// kinds. Year 0 is the initial/purchase state; a projection over N years
// produces N+1 snapshots. Every monetary field is rounded to cents at the
// point of computation.
type AnnualSnapshot struct {
	Year int `json:"year"`

	// Balance is the investment balance, or property equity (value - debt).
	Balance     decimal.Decimal `json:"balance"`
	RealBalance decimal.Decimal `json:"realBalance"`

	// Direct contribution for the year (signed; negative = withdrawal).
	AnnualContribution     decimal.Decimal `json:"annualContribution"`
	RealAnnualContribution decimal.Decimal `json:"realAnnualContribution"`

	// PropertyCashFlow is the sum of linked property flows applied to an
	// investment this year, reported separately from the direct contribution.
	PropertyCashFlow     decimal.Decimal `json:"propertyCashFlow"`
	RealPropertyCashFlow decimal.Decimal `json:"realPropertyCashFlow"`

	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	RealTotalEarnings decimal.Decimal `json:"realTotalEarnings"`

	// YearlyGain is the total balance change net of cash movements.
	YearlyGain     decimal.Decimal `json:"yearlyGain"`
	RealYearlyGain decimal.Decimal `json:"realYearlyGain"`

	// AnnualInvestmentGain is growth only: previous balance times the rate.
	AnnualInvestmentGain     decimal.Decimal `json:"annualInvestmentGain"`
	RealAnnualInvestmentGain decimal.Decimal `json:"realAnnualInvestmentGain"`

	Property *PropertyYearDetail `json:"property,omitempty"`
}

// PropertyYearDetail carries the property-only portion of a yearly snapshot.
type PropertyYearDetail struct {
	PropertyValue     decimal.Decimal `json:"propertyValue"`
	RealPropertyValue decimal.Decimal `json:"realPropertyValue"`

	MortgageBalance  decimal.Decimal `json:"mortgageBalance"`
	PrincipalPaid    decimal.Decimal `json:"principalPaid"`
	InterestPaid     decimal.Decimal `json:"interestPaid"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment"`
	OtherFeesMonthly decimal.Decimal `json:"otherFeesMonthly"`

	GrossRentalIncome decimal.Decimal `json:"grossRentalIncome"`
	VacancyLoss       decimal.Decimal `json:"vacancyLoss"`
	MaintenanceCost   decimal.Decimal `json:"maintenanceCost"`
	ManagementFee     decimal.Decimal `json:"managementFee"`
	NetRentalIncome   decimal.Decimal `json:"netRentalIncome"`

	// AnnualCashFlow is what this property pushes to (positive) or pulls from
	// (negative) a linked investment in this year.
	AnnualCashFlow decimal.Decimal `json:"annualCashFlow"`

	IsSaleYear bool `json:"isSaleYear"`
	IsSold     bool `json:"isSold"`

	SalePrice                decimal.Decimal `json:"salePrice"`
	NetSaleProceeds          decimal.Decimal `json:"netSaleProceeds"`
	CapitalGain              decimal.Decimal `json:"capitalGain"`
	TaxableGain              decimal.Decimal `json:"taxableGain"`
	FederalTax               decimal.Decimal `json:"federalTax"`
	StateTax                 decimal.Decimal `json:"stateTax"`
	DepreciationRecaptureTax decimal.Decimal `json:"depreciationRecaptureTax"`
	TotalTax                 decimal.Decimal `json:"totalTax"`
	NetAfterTaxProceeds      decimal.Decimal `json:"netAfterTaxProceeds"`
	// SaleProceeds is the figure exposed for reinvestment. It is always the
	// after-tax amount.
	SaleProceeds decimal.Decimal `json:"saleProceeds"`
}

// InvestmentSummary aggregates an investment's projection over the whole
// horizon.
type InvestmentSummary struct {
	InitialAmount decimal.Decimal `json:"initialAmount"`

	TotalContributed decimal.Decimal `json:"totalContributed"`
	TotalWithdrawn   decimal.Decimal `json:"totalWithdrawn"`

	PropertyCashFlowContributed decimal.Decimal `json:"propertyCashFlowContributed"`
	PropertyCashFlowWithdrawn   decimal.Decimal `json:"propertyCashFlowWithdrawn"`

	NetContributions decimal.Decimal `json:"netContributions"`

	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	RealTotalEarnings decimal.Decimal `json:"realTotalEarnings"`

	FinalBalance decimal.Decimal `json:"finalBalance"`
	FinalNetGain decimal.Decimal `json:"finalNetGain"`
}

// AssetBreakdown is one asset's share of a combined yearly snapshot, listed in
// asset insertion order for deterministic output.
type AssetBreakdown struct {
	AssetID   string    `json:"assetId"`
	AssetName string    `json:"assetName"`
	Kind      AssetKind `json:"kind"`

	Balance            decimal.Decimal `json:"balance"`
	RealBalance        decimal.Decimal `json:"realBalance"`
	AnnualContribution decimal.Decimal `json:"annualContribution"`

	PropertyValue    decimal.Decimal `json:"propertyValue,omitempty"`
	MortgageBalance  decimal.Decimal `json:"mortgageBalance,omitempty"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment,omitempty"`
	OtherFeesMonthly decimal.Decimal `json:"otherFeesMonthly,omitempty"`
}

// CombinedSnapshot is one year of the consolidated portfolio timeline.
type CombinedSnapshot struct {
	Year int `json:"year"`

	TotalBalance     decimal.Decimal `json:"totalBalance"`
	RealTotalBalance decimal.Decimal `json:"realTotalBalance"`

	TotalAnnualContribution     decimal.Decimal `json:"totalAnnualContribution"`
	RealTotalAnnualContribution decimal.Decimal `json:"realTotalAnnualContribution"`

	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	RealTotalEarnings decimal.Decimal `json:"realTotalEarnings"`

	TotalYearlyGain     decimal.Decimal `json:"totalYearlyGain"`
	RealTotalYearlyGain decimal.Decimal `json:"realTotalYearlyGain"`

	TotalPropertyValue     decimal.Decimal `json:"totalPropertyValue"`
	TotalMortgageBalance   decimal.Decimal `json:"totalMortgageBalance"`
	TotalPropertyEquity    decimal.Decimal `json:"totalPropertyEquity"`
	TotalInvestmentBalance decimal.Decimal `json:"totalInvestmentBalance"`

	AssetBreakdown []AssetBreakdown `json:"assetBreakdown"`
}

// PortfolioReport is the read-only view handed to output formatters.
type PortfolioReport struct {
	Years         int                `json:"years"`
	InflationRate decimal.Decimal    `json:"inflationRate"`
	StartingYear  int                `json:"startingYear"`
	Combined      []CombinedSnapshot `json:"combined"`
	Assets        []AssetReport      `json:"assets"`
}

// AssetReport is one asset's computed series inside a PortfolioReport.
type AssetReport struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Kind    AssetKind          `json:"kind"`
	Enabled bool               `json:"enabled"`
	Results []AnnualSnapshot   `json:"results"`
	Summary *InvestmentSummary `json:"summary,omitempty"`
}
