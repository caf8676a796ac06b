// Package config loads portfolio definition files. YAML is the primary
// format; JSON parses through the same path since YAML is a superset.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dyaboykyl/investisizer/internal/calculation"
	"github.com/dyaboykyl/investisizer/internal/domain"
	"github.com/dyaboykyl/investisizer/internal/portfolio"
)

// AssetSpec is one asset entry of a portfolio definition file. The id is
// optional; it defaults to the name so cross-asset links can reference assets
// the user actually declared.
type AssetSpec struct {
	ID         string                   `yaml:"id"`
	Name       string                   `yaml:"name"`
	Type       domain.AssetKind         `yaml:"type"`
	Enabled    *bool                    `yaml:"enabled"`
	Investment *domain.InvestmentInputs `yaml:"investment"`
	Property   *domain.PropertyInputs   `yaml:"property"`
}

// PortfolioSpec is the top-level shape of a portfolio definition file.
type PortfolioSpec struct {
	Years         int             `yaml:"years"`
	InflationRate decimal.Decimal `yaml:"inflationRate"`
	StartingYear  int             `yaml:"startingYear"`
	Assets        []AssetSpec     `yaml:"assets"`
}

// InputParser handles parsing of portfolio definition files.
type InputParser struct {
	Logger calculation.Logger
}

// NewInputParser creates a parser with a no-op logger.
func NewInputParser() *InputParser {
	return &InputParser{Logger: calculation.NopLogger{}}
}

// LoadFromFile loads a portfolio definition from a YAML or JSON file.
func (ip *InputParser) LoadFromFile(filename string) (*portfolio.Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses and validates a portfolio definition.
func (ip *InputParser) Load(data []byte) (*portfolio.Portfolio, error) {
	var spec PortfolioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio definition: %w", err)
	}
	if err := ip.Validate(&spec); err != nil {
		return nil, fmt.Errorf("portfolio validation failed: %w", err)
	}
	return ip.build(&spec), nil
}

// Validate checks the structural rules of a definition. Numeric degradations
// are not errors (the zero-fallback policy applies); only shapes that cannot
// be loaded at all are rejected.
func (ip *InputParser) Validate(spec *PortfolioSpec) error {
	if len(spec.Assets) == 0 {
		return fmt.Errorf("no assets provided")
	}
	seen := make(map[string]bool)
	for i, as := range spec.Assets {
		if as.Name == "" {
			return fmt.Errorf("asset %d: name is required", i)
		}
		switch as.Type {
		case domain.KindInvestment, domain.KindProperty:
		default:
			return fmt.Errorf("asset %d (%s): %w: %q", i, as.Name, domain.ErrUnknownAssetType, as.Type)
		}
		id := as.ID
		if id == "" {
			id = as.Name
		}
		if seen[id] {
			return fmt.Errorf("asset %d (%s): duplicate id %q", i, as.Name, id)
		}
		seen[id] = true
	}
	// Dangling links are not fatal: a link is a weak reference that simply
	// resolves to nothing at computation time.
	for _, as := range spec.Assets {
		if as.Type == domain.KindProperty && as.Property != nil {
			if target := as.Property.LinkedInvestmentID; target != "" && !seen[target] {
				ip.Logger.Warnf("property %q links to unknown investment %q; the link will contribute nothing", as.Name, target)
			}
		}
	}
	return nil
}

func (ip *InputParser) build(spec *PortfolioSpec) *portfolio.Portfolio {
	p := portfolio.New(ip.Logger)
	if spec.Years > 0 {
		p.SetYears(spec.Years)
	}
	if !spec.InflationRate.IsZero() {
		p.SetInflationRate(spec.InflationRate)
	}
	if spec.StartingYear > 0 {
		p.StartingYear = spec.StartingYear
	}

	// New() seeds a default investment; drop it once real assets exist.
	seed := p.Assets()[0]

	for _, as := range spec.Assets {
		id := as.ID
		if id == "" {
			id = as.Name
		}
		a := domain.NewAsset(id, as.Name, as.Type, p.InflationRate)
		if as.Enabled != nil {
			a.Enabled = *as.Enabled
		}
		if as.Type == domain.KindInvestment && as.Investment != nil {
			inputs := *as.Investment
			if inputs.InflationRate.IsZero() {
				inputs.InflationRate = p.InflationRate
			}
			a.Investment = &inputs
		}
		if as.Type == domain.KindProperty && as.Property != nil {
			inputs := *as.Property
			if inputs.InflationRate.IsZero() {
				inputs.InflationRate = p.InflationRate
			}
			if inputs.MaintenanceBasis == "" {
				inputs.MaintenanceBasis = domain.BasisRent
			}
			a.Property = &inputs
		}
		p.AddAsset(a)
	}

	if err := p.RemoveAsset(seed.ID); err != nil {
		// Unreachable while validation guarantees at least one asset.
		ip.Logger.Warnf("could not drop seed asset: %v", err)
	}
	p.ActiveAssetID = p.Assets()[0].ID
	return p
}
