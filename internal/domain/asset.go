// Package domain holds the asset model shared by the projection engine and the
// portfolio aggregator: the two asset kinds, their raw input parameters, the
// yearly snapshot types they produce, and the JSON codec used for persistence.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dyaboykyl/investisizer/pkg/moneyutil"
)

// AssetKind discriminates the two asset variants. Every site that branches on
// kind must handle both; there is no third case.
type AssetKind string

const (
	KindInvestment AssetKind = "investment"
	KindProperty   AssetKind = "property"
)

// FilingStatus selects a federal capital-gains bracket table.
type FilingStatus string

const (
	FilingSingle           FilingStatus = "single"
	FilingMarriedJoint     FilingStatus = "married_joint"
	FilingMarriedSeparate  FilingStatus = "married_separate"
	FilingHeadOfHousehold  FilingStatus = "head_of_household"
)

// MaintenanceBasis selects what a property's maintenance and management
// percentages are taken against.
type MaintenanceBasis string

const (
	BasisRent  MaintenanceBasis = "rent"
	BasisValue MaintenanceBasis = "value"
)

// ErrUnknownAssetType is returned when deserialization meets a type tag that is
// neither "investment" nor "property". Silently dropping the asset would
// corrupt the portfolio, so this is fatal to the load.
var ErrUnknownAssetType = errors.New("unknown asset type")

// InvestmentInputs are the raw parameters of a cash/market investment.
type InvestmentInputs struct {
	InitialAmount      decimal.Decimal `json:"initialAmount" yaml:"initialAmount"`
	RateOfReturn       decimal.Decimal `json:"rateOfReturn" yaml:"rateOfReturn"`
	AnnualContribution decimal.Decimal `json:"annualContribution" yaml:"annualContribution"`
	// InflationAdjustedContributions keeps the real value of the entered
	// contribution constant by growing the nominal amount with inflation.
	InflationAdjustedContributions bool `json:"inflationAdjustedContributions" yaml:"inflationAdjustedContributions"`
	// InflationRate overrides the portfolio-wide default for this asset.
	InflationRate decimal.Decimal `json:"inflationRate" yaml:"inflationRate"`
}

// SaleConfig models a planned disposition of a property in a specific year.
type SaleConfig struct {
	IsPlannedForSale bool `json:"isPlannedForSale" yaml:"isPlannedForSale"`
	SaleYear         int  `json:"saleYear" yaml:"saleYear"`
	// ExpectedSalePrice overrides the projected appreciated value when
	// positive; zero means use the projection.
	ExpectedSalePrice      decimal.Decimal `json:"expectedSalePrice" yaml:"expectedSalePrice"`
	SellingCostsPercentage decimal.Decimal `json:"sellingCostsPercentage" yaml:"sellingCostsPercentage"`
	CapitalImprovements    decimal.Decimal `json:"capitalImprovements" yaml:"capitalImprovements"`
	OriginalBuyingCosts    decimal.Decimal `json:"originalBuyingCosts" yaml:"originalBuyingCosts"`

	ReinvestProceeds   bool   `json:"reinvestProceeds" yaml:"reinvestProceeds"`
	TargetInvestmentID string `json:"targetInvestmentId" yaml:"targetInvestmentId"`

	FilingStatus FilingStatus    `json:"filingStatus" yaml:"filingStatus"`
	AnnualIncome decimal.Decimal `json:"annualIncome" yaml:"annualIncome"`
	State        string          `json:"state" yaml:"state"`

	IsPrimaryResidence bool `json:"isPrimaryResidence" yaml:"isPrimaryResidence"`
	// ExclusionUsedRecently is a policy flag: the Section 121 exclusion was
	// claimed within the prior two years, which disqualifies this sale.
	ExclusionUsedRecently bool `json:"exclusionUsedRecently" yaml:"exclusionUsedRecently"`
	YearsLived            int  `json:"yearsLived" yaml:"yearsLived"`

	EnableDepreciationRecapture bool            `json:"enableDepreciationRecapture" yaml:"enableDepreciationRecapture"`
	AnnualDepreciation          decimal.Decimal `json:"annualDepreciation" yaml:"annualDepreciation"`
}

// PropertyInputs are the raw parameters of a mortgaged property.
type PropertyInputs struct {
	PurchasePrice         decimal.Decimal `json:"purchasePrice" yaml:"purchasePrice"`
	CurrentEstimatedValue decimal.Decimal `json:"currentEstimatedValue" yaml:"currentEstimatedValue"`
	DownPaymentPercentage decimal.Decimal `json:"downPaymentPercentage" yaml:"downPaymentPercentage"`
	InterestRate          decimal.Decimal `json:"interestRate" yaml:"interestRate"`
	LoanTerm              int             `json:"loanTerm" yaml:"loanTerm"`
	// YearsBought is how many years of amortization and appreciation have
	// already elapsed at year 0 of the projection.
	YearsBought        int             `json:"yearsBought" yaml:"yearsBought"`
	PropertyGrowthRate decimal.Decimal `json:"propertyGrowthRate" yaml:"propertyGrowthRate"`
	// MonthlyPayment optionally overrides the calculated P&I payment. Any
	// excess over P&I is categorized as other fees and never reduces the
	// mortgage balance.
	MonthlyPayment decimal.Decimal `json:"monthlyPayment" yaml:"monthlyPayment"`

	IsRentalProperty     bool             `json:"isRentalProperty" yaml:"isRentalProperty"`
	MonthlyRent          decimal.Decimal  `json:"monthlyRent" yaml:"monthlyRent"`
	RentGrowthRate       decimal.Decimal  `json:"rentGrowthRate" yaml:"rentGrowthRate"`
	VacancyRate          decimal.Decimal  `json:"vacancyRate" yaml:"vacancyRate"`
	MaintenanceRate      decimal.Decimal  `json:"maintenanceRate" yaml:"maintenanceRate"`
	MaintenanceBasis     MaintenanceBasis `json:"maintenanceBasis" yaml:"maintenanceBasis"`
	IncludeManagementFee bool             `json:"includeManagementFee" yaml:"includeManagementFee"`
	ManagementFeeRate    decimal.Decimal  `json:"managementFeeRate" yaml:"managementFeeRate"`

	// LinkedInvestmentID routes this property's annual net cash flow into an
	// investment. It is a weak reference resolved at computation time.
	LinkedInvestmentID string `json:"linkedInvestmentId" yaml:"linkedInvestmentId"`

	InflationRate decimal.Decimal `json:"inflationRate" yaml:"inflationRate"`

	Sale *SaleConfig `json:"saleConfig,omitempty" yaml:"saleConfig,omitempty"`
}

// Asset is the tagged union over the two asset kinds. Exactly one of
// Investment / Property is non-nil, matching Kind.
type Asset struct {
	ID      string
	Name    string
	Kind    AssetKind
	Enabled bool

	Investment *InvestmentInputs
	Property   *PropertyInputs

	ShowBalance       bool
	ShowContributions bool
	ShowNetGain       bool
	ShowNominal       bool
	ShowReal          bool

	// Results is derived state, regenerated in full on every input mutation.
	Results []AnnualSnapshot
	// Summary is populated for investments only.
	Summary *InvestmentSummary
}

// NewInvestmentInputs returns investment defaults with the portfolio-wide
// inflation rate merged in.
func NewInvestmentInputs(inflationRate decimal.Decimal) *InvestmentInputs {
	return &InvestmentInputs{
		InitialAmount:      decimal.NewFromInt(10000),
		RateOfReturn:       decimal.NewFromInt(7),
		AnnualContribution: decimal.NewFromInt(5000),
		InflationRate:      inflationRate,
	}
}

// NewPropertyInputs returns property defaults with the portfolio-wide
// inflation rate merged in.
func NewPropertyInputs(inflationRate decimal.Decimal) *PropertyInputs {
	return &PropertyInputs{
		PurchasePrice:         decimal.NewFromInt(500000),
		DownPaymentPercentage: decimal.NewFromInt(20),
		InterestRate:          decimal.NewFromInt(7),
		LoanTerm:              30,
		PropertyGrowthRate:    decimal.NewFromInt(3),
		MonthlyRent:           decimal.NewFromInt(2000),
		RentGrowthRate:        decimal.NewFromInt(3),
		VacancyRate:           decimal.NewFromInt(5),
		MaintenanceRate:       decimal.NewFromInt(5),
		MaintenanceBasis:      BasisRent,
		ManagementFeeRate:     decimal.NewFromInt(10),
		InflationRate:         inflationRate,
	}
}

// NewAsset builds an asset of the given kind with default inputs and all
// display toggles on.
func NewAsset(id, name string, kind AssetKind, inflationRate decimal.Decimal) *Asset {
	a := &Asset{
		ID:                id,
		Name:              name,
		Kind:              kind,
		Enabled:           true,
		ShowBalance:       true,
		ShowContributions: true,
		ShowNetGain:       true,
		ShowNominal:       true,
		ShowReal:          true,
	}
	switch kind {
	case KindProperty:
		a.Property = NewPropertyInputs(inflationRate)
	default:
		a.Kind = KindInvestment
		a.Investment = NewInvestmentInputs(inflationRate)
	}
	return a
}

// FinalResult returns the last snapshot, or nil before any computation.
func (a *Asset) FinalResult() *AnnualSnapshot {
	if len(a.Results) == 0 {
		return nil
	}
	return &a.Results[len(a.Results)-1]
}

// HasResults reports whether a projection has been computed.
func (a *Asset) HasResults() bool { return len(a.Results) > 0 }

// InflationRate returns the asset's own inflation rate regardless of kind.
func (a *Asset) InflationRate() decimal.Decimal {
	switch a.Kind {
	case KindProperty:
		return a.Property.InflationRate
	default:
		return a.Investment.InflationRate
	}
}

// SetShowNominal toggles the nominal display flag. Turning both display modes
// off is rejected by forcing the other back on.
func (a *Asset) SetShowNominal(on bool) {
	a.ShowNominal = on
	if !a.ShowNominal && !a.ShowReal {
		a.ShowReal = true
	}
}

// SetShowReal toggles the real display flag, with the same both-off guard.
func (a *Asset) SetShowReal(on bool) {
	a.ShowReal = on
	if !a.ShowNominal && !a.ShowReal {
		a.ShowNominal = true
	}
}

// SetInput applies one raw text mutation to the asset's inputs. Numeric fields
// parse through moneyutil.ParseNumber, so invalid text degrades to zero rather
// than failing. The return value reports whether the key was recognized for
// this asset kind.
func (a *Asset) SetInput(key, value string) bool {
	switch a.Kind {
	case KindProperty:
		return a.Property.set(key, value)
	default:
		return a.Investment.set(key, value)
	}
}

func parseBool(value string) bool { return value == "true" || value == "1" }

func (in *InvestmentInputs) set(key, value string) bool {
	switch key {
	case "initialAmount":
		in.InitialAmount = moneyutil.ParseNumber(value)
	case "rateOfReturn":
		in.RateOfReturn = moneyutil.ParseNumber(value)
	case "annualContribution":
		in.AnnualContribution = moneyutil.ParseNumber(value)
	case "inflationAdjustedContributions":
		in.InflationAdjustedContributions = parseBool(value)
	case "inflationRate":
		in.InflationRate = moneyutil.ParseNumber(value)
	default:
		return false
	}
	return true
}

func (p *PropertyInputs) set(key, value string) bool {
	switch key {
	case "purchasePrice":
		p.PurchasePrice = moneyutil.ParseNumber(value)
	case "currentEstimatedValue":
		p.CurrentEstimatedValue = moneyutil.ParseNumber(value)
	case "downPaymentPercentage":
		p.DownPaymentPercentage = moneyutil.ParseNumber(value)
	case "interestRate":
		p.InterestRate = moneyutil.ParseNumber(value)
	case "loanTerm":
		p.LoanTerm = int(moneyutil.ParseNumber(value).IntPart())
	case "yearsBought":
		p.YearsBought = int(moneyutil.ParseNumber(value).IntPart())
	case "propertyGrowthRate":
		p.PropertyGrowthRate = moneyutil.ParseNumber(value)
	case "monthlyPayment":
		p.MonthlyPayment = moneyutil.ParseNumber(value)
	case "isRentalProperty":
		p.IsRentalProperty = parseBool(value)
	case "monthlyRent":
		p.MonthlyRent = moneyutil.ParseNumber(value)
	case "rentGrowthRate":
		p.RentGrowthRate = moneyutil.ParseNumber(value)
	case "vacancyRate":
		p.VacancyRate = moneyutil.ParseNumber(value)
	case "maintenanceRate":
		p.MaintenanceRate = moneyutil.ParseNumber(value)
	case "maintenanceBasis":
		if MaintenanceBasis(value) == BasisValue {
			p.MaintenanceBasis = BasisValue
		} else {
			p.MaintenanceBasis = BasisRent
		}
	case "includeManagementFee":
		p.IncludeManagementFee = parseBool(value)
	case "managementFeeRate":
		p.ManagementFeeRate = moneyutil.ParseNumber(value)
	case "linkedInvestmentId":
		p.LinkedInvestmentID = value
	case "inflationRate":
		p.InflationRate = moneyutil.ParseNumber(value)
	default:
		return false
	}
	return true
}

// Clone deep-copies the asset's identity, inputs and display flags. Results
// are derived state and are not copied; the caller recomputes.
func (a *Asset) Clone(newID, newName string) *Asset {
	dup := &Asset{
		ID:                newID,
		Name:              newName,
		Kind:              a.Kind,
		Enabled:           a.Enabled,
		ShowBalance:       a.ShowBalance,
		ShowContributions: a.ShowContributions,
		ShowNetGain:       a.ShowNetGain,
		ShowNominal:       a.ShowNominal,
		ShowReal:          a.ShowReal,
	}
	if a.Investment != nil {
		inv := *a.Investment
		dup.Investment = &inv
	}
	if a.Property != nil {
		prop := *a.Property
		if a.Property.Sale != nil {
			sale := *a.Property.Sale
			prop.Sale = &sale
		}
		dup.Property = &prop
	}
	return dup
}

// assetJSON is the wire shape of one asset.
type assetJSON struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Type              AssetKind       `json:"type"`
	Enabled           bool            `json:"enabled"`
	Inputs            json.RawMessage `json:"inputs"`
	ShowBalance       bool            `json:"showBalance"`
	ShowContributions bool            `json:"showContributions"`
	ShowNetGain       bool            `json:"showNetGain"`
	ShowNominal       bool            `json:"showNominal"`
	ShowReal          bool            `json:"showReal"`
}

// ToJSON serializes identity, inputs and display flags. Derived results are
// never persisted; they are regenerated on load.
func (a *Asset) ToJSON() ([]byte, error) {
	var inputs any
	switch a.Kind {
	case KindProperty:
		inputs = a.Property
	default:
		inputs = a.Investment
	}
	raw, err := json.Marshal(inputs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(assetJSON{
		ID:                a.ID,
		Name:              a.Name,
		Type:              a.Kind,
		Enabled:           a.Enabled,
		Inputs:            raw,
		ShowBalance:       a.ShowBalance,
		ShowContributions: a.ShowContributions,
		ShowNetGain:       a.ShowNetGain,
		ShowNominal:       a.ShowNominal,
		ShowReal:          a.ShowReal,
	})
}

// AssetFromJSON deserializes one asset. An unknown type tag fails loudly:
// silently dropping an asset would corrupt the portfolio.
func AssetFromJSON(data []byte) (*Asset, error) {
	var aj assetJSON
	if err := json.Unmarshal(data, &aj); err != nil {
		return nil, fmt.Errorf("decoding asset: %w", err)
	}
	a := &Asset{
		ID:                aj.ID,
		Name:              aj.Name,
		Kind:              aj.Type,
		Enabled:           aj.Enabled,
		ShowBalance:       aj.ShowBalance,
		ShowContributions: aj.ShowContributions,
		ShowNetGain:       aj.ShowNetGain,
		ShowNominal:       aj.ShowNominal,
		ShowReal:          aj.ShowReal,
	}
	switch aj.Type {
	case KindInvestment:
		a.Investment = &InvestmentInputs{}
		if err := json.Unmarshal(aj.Inputs, a.Investment); err != nil {
			return nil, fmt.Errorf("decoding investment inputs: %w", err)
		}
	case KindProperty:
		a.Property = &PropertyInputs{}
		if err := json.Unmarshal(aj.Inputs, a.Property); err != nil {
			return nil, fmt.Errorf("decoding property inputs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssetType, aj.Type)
	}
	return a, nil
}
