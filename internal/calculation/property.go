package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/internal/domain"
	"github.com/dyaboykyl/investisizer/pkg/moneyutil"
)

// PropertyProjector turns property inputs into yearly snapshots. It owns the
// tax calculator used for sale modeling so the tables are built once.
type PropertyProjector struct {
	Taxes *CapitalGainsCalculator
}

// NewPropertyProjector creates a projector with the 2024 reference tax tables.
func NewPropertyProjector() *PropertyProjector {
	return &PropertyProjector{Taxes: NewCapitalGainsCalculator()}
}

// financedPrincipal is purchase price times (1 - down payment %).
func financedPrincipal(p *domain.PropertyInputs) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return p.PurchasePrice.Mul(one.Sub(moneyutil.Rate(p.DownPaymentPercentage)))
}

// projectedValue returns the appreciated property value for a projection year.
// The baseline is the purchase price with yearsBought years of growth already
// elapsed, or the stated current estimate when one is given.
func projectedValue(p *domain.PropertyInputs, year int) decimal.Decimal {
	if p.CurrentEstimatedValue.IsPositive() {
		return moneyutil.Compound(p.CurrentEstimatedValue, p.PropertyGrowthRate, year)
	}
	return moneyutil.Compound(p.PurchasePrice, p.PropertyGrowthRate, p.YearsBought+year)
}

// rentalFlow models one year of rental operation. Gross rent grows from year
// 2; year 1 uses the entered rent. Maintenance and management percentages are
// taken against rent or property value per the configured basis.
func rentalFlow(p *domain.PropertyInputs, year int, value, annualPayment decimal.Decimal) (gross, vacancyLoss, maintenance, management, net decimal.Decimal) {
	gross = moneyutil.Compound(p.MonthlyRent.Mul(decimal.NewFromInt(monthsPerYear)), p.RentGrowthRate, year-1)
	vacancyLoss = gross.Mul(moneyutil.Rate(p.VacancyRate))
	afterVacancy := gross.Sub(vacancyLoss)

	maintenanceBase := gross
	if p.MaintenanceBasis == domain.BasisValue {
		maintenanceBase = value
	}
	maintenance = maintenanceBase.Mul(moneyutil.Rate(p.MaintenanceRate))

	if p.IncludeManagementFee {
		management = afterVacancy.Mul(moneyutil.Rate(p.ManagementFeeRate))
	}

	net = afterVacancy.Sub(maintenance).Sub(management).Sub(annualPayment)
	return gross, vacancyLoss, maintenance, management, net
}

// Project produces the year-indexed series for a property. Year 0 is the
// current state; each later year carries value growth, amortization and, for
// rentals, the operating cash flow. When a sale is configured the sale year
// snapshot carries the full tax-adjusted disposition and every later year
// reports the asset as sold with nothing left to contribute.
func (pp *PropertyProjector) Project(p *domain.PropertyInputs, years int) []domain.AnnualSnapshot {
	if years < 1 {
		years = 1
	}
	terms := MortgageTerms{
		Principal:         financedPrincipal(p),
		AnnualRatePercent: p.InterestRate,
		TermYears:         p.LoanTerm,
		PaymentOverride:   p.MonthlyPayment,
	}
	schedule := AmortizationSchedule(terms, p.YearsBought, years)

	saleYear := 0
	if p.Sale != nil && p.Sale.IsPlannedForSale && p.Sale.SaleYear >= 1 {
		saleYear = p.Sale.SaleYear
	}

	results := make([]domain.AnnualSnapshot, 0, years+1)
	var initialEquity, previousEquity decimal.Decimal

	for year := 0; year <= years; year++ {
		sold := saleYear > 0 && year > saleYear
		detail := &domain.PropertyYearDetail{IsSold: sold}
		snapshot := domain.AnnualSnapshot{Year: year, Property: detail}

		if sold {
			// Converted to cash in the sale year; nothing remains here.
			snapshot.Balance = decimal.Zero
			snapshot.RealBalance = decimal.Zero
			snapshot.YearlyGain = moneyutil.Round2(decimal.Zero.Sub(previousEquity))
			snapshot.RealYearlyGain = snapshot.YearlyGain
			snapshot.TotalEarnings = moneyutil.Round2(decimal.Zero.Sub(initialEquity))
			snapshot.RealTotalEarnings = snapshot.TotalEarnings
			previousEquity = decimal.Zero
			results = append(results, snapshot)
			continue
		}

		value := projectedValue(p, year)
		mortgage := schedule[year]
		equity := value.Sub(mortgage.Balance)

		detail.PropertyValue = moneyutil.Round2(value)
		detail.RealPropertyValue = moneyutil.Round2(moneyutil.Deflate(value, p.InflationRate, year))
		detail.MortgageBalance = mortgage.Balance
		detail.PrincipalPaid = mortgage.PrincipalPaid
		detail.InterestPaid = mortgage.InterestPaid
		detail.MonthlyPayment = mortgage.MonthlyPayment
		detail.OtherFeesMonthly = mortgage.OtherFeesMonthly

		annualPayment := mortgage.MonthlyPayment.Mul(decimal.NewFromInt(monthsPerYear))
		if year >= 1 {
			if p.IsRentalProperty {
				gross, vacancy, maintenance, management, net := rentalFlow(p, year, value, annualPayment)
				detail.GrossRentalIncome = moneyutil.Round2(gross)
				detail.VacancyLoss = moneyutil.Round2(vacancy)
				detail.MaintenanceCost = moneyutil.Round2(maintenance)
				detail.ManagementFee = moneyutil.Round2(management)
				detail.NetRentalIncome = moneyutil.Round2(net)
				detail.AnnualCashFlow = detail.NetRentalIncome
			} else {
				// A non-rental property is a pure cash drain while held.
				detail.AnnualCashFlow = moneyutil.Round2(annualPayment.Neg())
			}
		}

		if year == saleYear && saleYear > 0 {
			pp.applySale(p, detail, value, mortgage.Balance)
		}

		snapshot.Balance = moneyutil.Round2(equity)
		snapshot.RealBalance = moneyutil.Round2(moneyutil.Deflate(equity, p.InflationRate, year))
		if year == 0 {
			initialEquity = equity
		} else {
			snapshot.YearlyGain = moneyutil.Round2(equity.Sub(previousEquity))
			snapshot.RealYearlyGain = moneyutil.Round2(moneyutil.Deflate(equity.Sub(previousEquity), p.InflationRate, year))
			snapshot.TotalEarnings = moneyutil.Round2(equity.Sub(initialEquity))
			snapshot.RealTotalEarnings = moneyutil.Round2(moneyutil.Deflate(equity.Sub(initialEquity), p.InflationRate, year))
		}
		previousEquity = equity
		results = append(results, snapshot)
	}
	return results
}

// applySale fills the sale-year fields. The exposed SaleProceeds is strictly
// the after-tax figure; reinvestment targets must never see pre-tax proceeds.
func (pp *PropertyProjector) applySale(p *domain.PropertyInputs, detail *domain.PropertyYearDetail, projectedValue, mortgageBalance decimal.Decimal) {
	sale := p.Sale
	detail.IsSaleYear = true

	salePrice := projectedValue
	if sale.ExpectedSalePrice.IsPositive() {
		salePrice = sale.ExpectedSalePrice
	}
	one := decimal.NewFromInt(1)
	netOfCosts := salePrice.Mul(one.Sub(moneyutil.Rate(sale.SellingCostsPercentage)))
	netSaleProceeds := netOfCosts.Sub(mortgageBalance)

	capitalGain := netOfCosts.
		Sub(p.PurchasePrice).
		Sub(sale.CapitalImprovements).
		Sub(sale.OriginalBuyingCosts)

	taxableGain := ApplySection121(capitalGain, sale)
	taxes := pp.Taxes.Calculate(taxableGain, sale.AnnualIncome, sale.FilingStatus, sale.State)
	recapture := DepreciationRecaptureTax(sale, p.YearsBought+sale.SaleYear)
	totalTax := taxes.TotalTax.Add(recapture)
	netAfterTax := netSaleProceeds.Sub(totalTax)

	detail.SalePrice = moneyutil.Round2(salePrice)
	detail.NetSaleProceeds = moneyutil.Round2(netSaleProceeds)
	detail.CapitalGain = moneyutil.Round2(capitalGain)
	detail.TaxableGain = moneyutil.Round2(taxes.TaxableGain)
	detail.FederalTax = moneyutil.Round2(taxes.FederalTax)
	detail.StateTax = moneyutil.Round2(taxes.StateTax)
	detail.DepreciationRecaptureTax = moneyutil.Round2(recapture)
	detail.TotalTax = moneyutil.Round2(totalTax)
	detail.NetAfterTaxProceeds = moneyutil.Round2(netAfterTax)
	detail.SaleProceeds = detail.NetAfterTaxProceeds
}
