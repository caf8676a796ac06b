// Package portfolio owns the asset collection and the aggregation layer:
// cross-asset cash-flow resolution, link-respecting recomputation and the
// consolidated yearly timeline.
package portfolio

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/internal/calculation"
	"github.com/dyaboykyl/investisizer/internal/domain"
	"github.com/dyaboykyl/investisizer/pkg/moneyutil"
)

// ErrLastAsset is returned when removal would leave the portfolio empty.
var ErrLastAsset = errors.New("cannot remove the last asset")

// ErrAssetNotFound is returned for operations on an unknown asset id.
var ErrAssetNotFound = errors.New("asset not found")

// Portfolio owns the assets (keyed by id, with explicit insertion order so the
// breakdown list is deterministic) and the shared projection settings. All
// per-asset series are derived state: every mutation regenerates the affected
// series in full from current inputs.
type Portfolio struct {
	assets map[string]*domain.Asset
	order  []string

	Years         int
	InflationRate decimal.Decimal
	StartingYear  int
	ActiveAssetID string
	ShowNominal   bool
	ShowReal      bool

	projector *calculation.PropertyProjector
	logger    calculation.Logger
}

// New creates a portfolio with one default investment. A portfolio is never
// empty: removal of the last asset is refused.
func New(logger calculation.Logger) *Portfolio {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	p := &Portfolio{
		assets:        make(map[string]*domain.Asset),
		Years:         10,
		InflationRate: decimal.NewFromFloat(2.5),
		StartingYear:  2024,
		ShowNominal:   true,
		ShowReal:      true,
		projector:     calculation.NewPropertyProjector(),
		logger:        logger,
	}
	first := p.AddInvestment("Investment 1")
	p.ActiveAssetID = first.ID
	return p
}

// Assets returns the assets in insertion order.
func (p *Portfolio) Assets() []*domain.Asset {
	out := make([]*domain.Asset, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.assets[id])
	}
	return out
}

// Asset looks up one asset by id.
func (p *Portfolio) Asset(id string) (*domain.Asset, bool) {
	a, ok := p.assets[id]
	return a, ok
}

func (p *Portfolio) insert(a *domain.Asset) *domain.Asset {
	p.assets[a.ID] = a
	p.order = append(p.order, a.ID)
	p.RecomputeAll()
	return a
}

// AddInvestment adds an investment with defaults merged from the
// portfolio-wide inflation rate.
func (p *Portfolio) AddInvestment(name string) *domain.Asset {
	if name == "" {
		name = fmt.Sprintf("Investment %d", len(p.order)+1)
	}
	return p.insert(domain.NewAsset(uuid.NewString(), name, domain.KindInvestment, p.InflationRate))
}

// AddProperty adds a property with defaults merged from the portfolio-wide
// inflation rate.
func (p *Portfolio) AddProperty(name string) *domain.Asset {
	if name == "" {
		name = fmt.Sprintf("Property %d", len(p.order)+1)
	}
	return p.insert(domain.NewAsset(uuid.NewString(), name, domain.KindProperty, p.InflationRate))
}

// AddAsset inserts an externally constructed asset (deserialization path).
func (p *Portfolio) AddAsset(a *domain.Asset) *domain.Asset {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return p.insert(a)
}

// RemoveAsset deletes an asset. Removing the last remaining asset is refused.
func (p *Portfolio) RemoveAsset(id string) error {
	if _, ok := p.assets[id]; !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if len(p.order) == 1 {
		return ErrLastAsset
	}
	delete(p.assets, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if p.ActiveAssetID == id {
		p.ActiveAssetID = p.order[0]
	}
	p.RecomputeAll()
	return nil
}

// DuplicateAsset deep-copies an asset's inputs and display flags under a new
// id and name.
func (p *Portfolio) DuplicateAsset(id string) (*domain.Asset, error) {
	src, ok := p.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	dup := src.Clone(uuid.NewString(), src.Name+" (copy)")
	return p.insert(dup), nil
}

// SetEnabled toggles an asset in or out of all aggregation and cross-asset
// resolution.
func (p *Portfolio) SetEnabled(id string, enabled bool) error {
	a, ok := p.assets[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	a.Enabled = enabled
	p.RecomputeAll()
	return nil
}

// SetYears updates the shared projection horizon. Values below 1 clamp to 1.
func (p *Portfolio) SetYears(years int) {
	if years < 1 {
		years = 1
	}
	p.Years = years
	p.RecomputeAll()
}

// SetInflationRate updates the shared default inflation rate and pushes it to
// every asset. Per-asset overrides are applied through UpdateAssetInput.
func (p *Portfolio) SetInflationRate(rate decimal.Decimal) {
	p.InflationRate = rate
	for _, a := range p.Assets() {
		switch a.Kind {
		case domain.KindProperty:
			a.Property.InflationRate = rate
		default:
			a.Investment.InflationRate = rate
		}
	}
	p.RecomputeAll()
}

// SetShowNominal toggles the portfolio-level nominal display flag. Both
// toggles can never be off at once; the other is forced back on.
func (p *Portfolio) SetShowNominal(on bool) {
	p.ShowNominal = on
	if !p.ShowNominal && !p.ShowReal {
		p.ShowReal = true
	}
}

// SetShowReal toggles the portfolio-level real display flag with the same
// both-off guard.
func (p *Portfolio) SetShowReal(on bool) {
	p.ShowReal = on
	if !p.ShowNominal && !p.ShowReal {
		p.ShowNominal = true
	}
}

// UpdateAssetInput applies one raw text mutation and regenerates every
// affected series. Unrecognized keys are ignored; invalid numeric text parses
// to zero, so the projection always proceeds.
func (p *Portfolio) UpdateAssetInput(id, key, value string) error {
	a, ok := p.assets[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if !a.SetInput(key, value) {
		p.logger.Warnf("ignoring unknown input key %q for %s asset %s", key, a.Kind, id)
	}
	p.RecomputeAll()
	return nil
}

// LinkedPropertyCashFlows resolves the per-year cash flows feeding an
// investment: for each year 1..Years, the annual cash flow of every enabled
// property linked to it, plus the after-tax sale proceeds of every enabled
// property whose sale config targets it for reinvestment in that property's
// sale year. Pure given current asset states; disabled properties contribute
// zero.
func (p *Portfolio) LinkedPropertyCashFlows(investmentID string) []decimal.Decimal {
	flows := make([]decimal.Decimal, p.Years)
	for i := range flows {
		flows[i] = decimal.Zero
	}
	for _, id := range p.order {
		a := p.assets[id]
		if a.Kind != domain.KindProperty || !a.Enabled {
			continue
		}
		prop := a.Property
		series := p.projector.Project(prop, p.Years)
		for year := 1; year <= p.Years; year++ {
			detail := series[year].Property
			if detail == nil {
				continue
			}
			if prop.LinkedInvestmentID == investmentID && !detail.IsSold {
				flows[year-1] = flows[year-1].Add(detail.AnnualCashFlow)
			}
			if detail.IsSaleYear && prop.Sale != nil && prop.Sale.ReinvestProceeds && prop.Sale.TargetInvestmentID == investmentID {
				flows[year-1] = flows[year-1].Add(detail.SaleProceeds)
			}
		}
	}
	return flows
}

// RecomputeAll regenerates every asset's series from current inputs.
// Properties are computed first since investments may consume their cash
// flows; no asset ever depends on another investment, so two phases suffice.
func (p *Portfolio) RecomputeAll() {
	for _, id := range p.order {
		a := p.assets[id]
		if a.Kind == domain.KindProperty {
			a.Results = p.projector.Project(a.Property, p.Years)
			a.Summary = nil
		}
	}
	for _, id := range p.order {
		a := p.assets[id]
		if a.Kind == domain.KindInvestment {
			flows := p.LinkedPropertyCashFlows(a.ID)
			a.Results, a.Summary = calculation.ProjectInvestment(a.Investment, p.Years, flows)
		}
	}
}

// CombinedResults derives the consolidated timeline over all enabled assets.
// It is a plain function of the freshly computed series, re-evaluated on
// demand rather than cached.
func (p *Portfolio) CombinedResults() []domain.CombinedSnapshot {
	combined := make([]domain.CombinedSnapshot, 0, p.Years+1)
	for year := 0; year <= p.Years; year++ {
		snap := domain.CombinedSnapshot{Year: year}
		for _, id := range p.order {
			a := p.assets[id]
			if !a.Enabled || year >= len(a.Results) {
				continue
			}
			r := a.Results[year]
			snap.TotalBalance = snap.TotalBalance.Add(r.Balance)
			snap.RealTotalBalance = snap.RealTotalBalance.Add(r.RealBalance)
			snap.TotalAnnualContribution = snap.TotalAnnualContribution.Add(r.AnnualContribution)
			snap.RealTotalAnnualContribution = snap.RealTotalAnnualContribution.Add(r.RealAnnualContribution)
			snap.TotalEarnings = snap.TotalEarnings.Add(r.TotalEarnings)
			snap.RealTotalEarnings = snap.RealTotalEarnings.Add(r.RealTotalEarnings)
			snap.TotalYearlyGain = snap.TotalYearlyGain.Add(r.YearlyGain)
			snap.RealTotalYearlyGain = snap.RealTotalYearlyGain.Add(r.RealYearlyGain)

			entry := domain.AssetBreakdown{
				AssetID:            a.ID,
				AssetName:          a.Name,
				Kind:               a.Kind,
				Balance:            r.Balance,
				RealBalance:        r.RealBalance,
				AnnualContribution: r.AnnualContribution,
			}
			if a.Kind == domain.KindProperty && r.Property != nil {
				entry.PropertyValue = r.Property.PropertyValue
				entry.MortgageBalance = r.Property.MortgageBalance
				entry.MonthlyPayment = r.Property.MonthlyPayment
				entry.OtherFeesMonthly = r.Property.OtherFeesMonthly
				snap.TotalPropertyValue = snap.TotalPropertyValue.Add(r.Property.PropertyValue)
				snap.TotalMortgageBalance = snap.TotalMortgageBalance.Add(r.Property.MortgageBalance)
				snap.TotalPropertyEquity = snap.TotalPropertyEquity.Add(r.Balance)
			} else {
				snap.TotalInvestmentBalance = snap.TotalInvestmentBalance.Add(r.Balance)
			}
			snap.AssetBreakdown = append(snap.AssetBreakdown, entry)
		}
		snap.TotalBalance = moneyutil.Round2(snap.TotalBalance)
		snap.RealTotalBalance = moneyutil.Round2(snap.RealTotalBalance)
		combined = append(combined, snap)
	}
	return combined
}

// BuildReport assembles the read-only view consumed by output formatters.
func (p *Portfolio) BuildReport() *domain.PortfolioReport {
	report := &domain.PortfolioReport{
		Years:         p.Years,
		InflationRate: p.InflationRate,
		StartingYear:  p.StartingYear,
		Combined:      p.CombinedResults(),
	}
	for _, a := range p.Assets() {
		report.Assets = append(report.Assets, domain.AssetReport{
			ID:      a.ID,
			Name:    a.Name,
			Kind:    a.Kind,
			Enabled: a.Enabled,
			Results: a.Results,
			Summary: a.Summary,
		})
	}
	return report
}
