package portfolio

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/internal/calculation"
	"github.com/dyaboykyl/investisizer/internal/domain"
)

// portfolioJSON is the persistence shape. Only inputs and settings are
// stored; every series is regenerated on load so the round-trip law holds by
// construction.
type portfolioJSON struct {
	Assets        []json.RawMessage `json:"assets"`
	ActiveTabID   string            `json:"activeTabId"`
	Years         int               `json:"years"`
	InflationRate decimal.Decimal   `json:"inflationRate"`
	StartingYear  int               `json:"startingYear"`
	ShowNominal   bool              `json:"showNominal"`
	ShowReal      bool              `json:"showReal"`
}

// ToJSON serializes the portfolio settings and every asset.
func (p *Portfolio) ToJSON() ([]byte, error) {
	pj := portfolioJSON{
		ActiveTabID:   p.ActiveAssetID,
		Years:         p.Years,
		InflationRate: p.InflationRate,
		StartingYear:  p.StartingYear,
		ShowNominal:   p.ShowNominal,
		ShowReal:      p.ShowReal,
	}
	for _, a := range p.Assets() {
		raw, err := a.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("serializing asset %s: %w", a.ID, err)
		}
		pj.Assets = append(pj.Assets, raw)
	}
	return json.MarshalIndent(pj, "", "  ")
}

// FromJSON deserializes a portfolio. Malformed JSON or an unknown asset type
// tag fails loudly; the persistence collaborator is expected to log and fall
// back to a default portfolio rather than crash.
func FromJSON(data []byte, logger calculation.Logger) (*Portfolio, error) {
	var pj portfolioJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("decoding portfolio: %w", err)
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	p := &Portfolio{
		assets:        make(map[string]*domain.Asset),
		Years:         pj.Years,
		InflationRate: pj.InflationRate,
		StartingYear:  pj.StartingYear,
		ActiveAssetID: pj.ActiveTabID,
		ShowNominal:   pj.ShowNominal,
		ShowReal:      pj.ShowReal,
		projector:     calculation.NewPropertyProjector(),
		logger:        logger,
	}
	if p.Years < 1 {
		p.Years = 1
	}
	if !p.ShowNominal && !p.ShowReal {
		p.ShowNominal = true
	}
	for i, raw := range pj.Assets {
		a, err := domain.AssetFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		p.assets[a.ID] = a
		p.order = append(p.order, a.ID)
	}
	if len(p.order) == 0 {
		// An empty asset list is valid JSON but not a valid portfolio.
		return New(logger), nil
	}
	if _, ok := p.assets[p.ActiveAssetID]; !ok {
		p.ActiveAssetID = p.order[0]
	}
	p.RecomputeAll()
	return p, nil
}
