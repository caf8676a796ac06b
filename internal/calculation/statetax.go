package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// StateTaxInfo describes one state's treatment of long-term capital gains.
// Rate is a percentage (13.3 means 13.3%). Most states tax capital gains as
// ordinary income; Rate holds the top marginal rate for the 2024 reference
// year.
type StateTaxInfo struct {
	Name               string          `json:"name"`
	HasCapitalGainsTax bool            `json:"hasCapitalGainsTax"`
	Rate               decimal.Decimal `json:"rate"`
	Notes              string          `json:"notes,omitempty"`
}

// StateTaxTable maps two-letter state codes to their capital-gains treatment.
type StateTaxTable struct {
	states map[string]StateTaxInfo
}

func taxed(name string, rate float64) StateTaxInfo {
	return StateTaxInfo{Name: name, HasCapitalGainsTax: true, Rate: decimal.NewFromFloat(rate)}
}

func noTax(name, notes string) StateTaxInfo {
	return StateTaxInfo{Name: name, HasCapitalGainsTax: false, Rate: decimal.Zero, Notes: notes}
}

// NewStateTaxTable builds the static 2024 reference table for all 50 states
// plus DC.
func NewStateTaxTable() *StateTaxTable {
	return &StateTaxTable{states: map[string]StateTaxInfo{
		"AL": taxed("Alabama", 5.0),
		"AK": noTax("Alaska", "No state income tax"),
		"AZ": taxed("Arizona", 2.5),
		"AR": taxed("Arkansas", 4.4),
		"CA": taxed("California", 13.3),
		"CO": taxed("Colorado", 4.4),
		"CT": taxed("Connecticut", 6.99),
		"DE": taxed("Delaware", 6.6),
		"DC": taxed("District of Columbia", 10.75),
		"FL": noTax("Florida", "No state income tax"),
		"GA": taxed("Georgia", 5.49),
		"HI": {Name: "Hawaii", HasCapitalGainsTax: true, Rate: decimal.NewFromFloat(7.25), Notes: "Capital gains taxed at a reduced rate"},
		"ID": taxed("Idaho", 5.8),
		"IL": taxed("Illinois", 4.95),
		"IN": taxed("Indiana", 3.05),
		"IA": taxed("Iowa", 5.7),
		"KS": taxed("Kansas", 5.7),
		"KY": taxed("Kentucky", 4.0),
		"LA": taxed("Louisiana", 4.25),
		"ME": taxed("Maine", 7.15),
		"MD": taxed("Maryland", 5.75),
		"MA": taxed("Massachusetts", 5.0),
		"MI": taxed("Michigan", 4.25),
		"MN": taxed("Minnesota", 9.85),
		"MS": taxed("Mississippi", 4.7),
		"MO": taxed("Missouri", 4.8),
		"MT": taxed("Montana", 5.9),
		"NE": taxed("Nebraska", 5.84),
		"NV": noTax("Nevada", "No state income tax"),
		"NH": noTax("New Hampshire", "No tax on capital gains; interest and dividends only"),
		"NJ": taxed("New Jersey", 10.75),
		"NM": taxed("New Mexico", 5.9),
		"NY": taxed("New York", 10.9),
		"NC": taxed("North Carolina", 4.5),
		"ND": taxed("North Dakota", 2.5),
		"OH": taxed("Ohio", 3.5),
		"OK": taxed("Oklahoma", 4.75),
		"OR": taxed("Oregon", 9.9),
		"PA": taxed("Pennsylvania", 3.07),
		"RI": taxed("Rhode Island", 5.99),
		"SC": {Name: "South Carolina", HasCapitalGainsTax: true, Rate: decimal.NewFromFloat(6.4), Notes: "44% of long-term gains excluded; effective top rate shown"},
		"SD": noTax("South Dakota", "No state income tax"),
		"TN": noTax("Tennessee", "No state income tax"),
		"TX": noTax("Texas", "No state income tax"),
		"UT": taxed("Utah", 4.65),
		"VT": taxed("Vermont", 8.75),
		"VA": taxed("Virginia", 5.75),
		"WA": {Name: "Washington", HasCapitalGainsTax: true, Rate: decimal.NewFromFloat(7.0), Notes: "Capital gains excise tax on gains above the annual deduction"},
		"WV": taxed("West Virginia", 5.12),
		"WI": taxed("Wisconsin", 7.65),
		"WY": noTax("Wyoming", "No state income tax"),
	}}
}

// Lookup resolves a state code case-insensitively.
func (st *StateTaxTable) Lookup(code string) (StateTaxInfo, bool) {
	info, ok := st.states[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}

// Tax computes state capital-gains tax. Non-positive gains, unknown codes and
// no-tax states all compute to zero; unknown codes additionally carry an
// explanatory note so the caller can surface the degradation.
func (st *StateTaxTable) Tax(gain decimal.Decimal, code string) (decimal.Decimal, string) {
	if gain.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ""
	}
	info, ok := st.Lookup(code)
	if !ok {
		return decimal.Zero, fmt.Sprintf("state %q not found; assuming no state tax", code)
	}
	if !info.HasCapitalGainsTax {
		return decimal.Zero, info.Notes
	}
	return gain.Mul(info.Rate).Div(decimal.NewFromInt(100)), info.Notes
}

// NoTaxStates returns the codes of states without a capital-gains tax, sorted
// for deterministic output.
func (st *StateTaxTable) NoTaxStates() []string {
	var codes []string
	for code, info := range st.states {
		if !info.HasCapitalGainsTax {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// StateComparison contrasts the state tax on one gain across two states.
type StateComparison struct {
	StateA        string          `json:"stateA"`
	StateB        string          `json:"stateB"`
	TaxA          decimal.Decimal `json:"taxA"`
	TaxB          decimal.Decimal `json:"taxB"`
	Difference    decimal.Decimal `json:"difference"`
	LowerTaxState string          `json:"lowerTaxState"`
	Note          string          `json:"note"`
}

// Recommendation thresholds for relocation analysis.
var (
	minimalThreshold    = decimal.NewFromInt(1000)
	notJustifyThreshold = decimal.NewFromInt(5000)
	moderateThreshold   = decimal.NewFromInt(25000)
)

func savingsRecommendation(savings decimal.Decimal) string {
	switch {
	case savings.Abs().LessThan(minimalThreshold):
		return "The tax difference is minimal and unlikely to matter."
	case savings.LessThan(notJustifyThreshold):
		return "Potential savings would likely not justify relocation costs."
	case savings.LessThan(moderateThreshold):
		return "Relocation would provide moderate tax savings."
	default:
		return "Relocation would provide significant tax savings."
	}
}

// CompareStates computes the tax on the same gain in two states and names the
// cheaper one. A difference under $1,000 is called out as minimal.
func (st *StateTaxTable) CompareStates(gain decimal.Decimal, stateA, stateB string) StateComparison {
	taxA, _ := st.Tax(gain, stateA)
	taxB, _ := st.Tax(gain, stateB)
	cmp := StateComparison{
		StateA:     strings.ToUpper(strings.TrimSpace(stateA)),
		StateB:     strings.ToUpper(strings.TrimSpace(stateB)),
		TaxA:       taxA,
		TaxB:       taxB,
		Difference: taxA.Sub(taxB).Abs(),
	}
	if taxA.LessThanOrEqual(taxB) {
		cmp.LowerTaxState = cmp.StateA
	} else {
		cmp.LowerTaxState = cmp.StateB
	}
	if cmp.Difference.LessThan(minimalThreshold) {
		cmp.Note = "The tax difference between these states is minimal."
	} else {
		cmp.Note = fmt.Sprintf("%s taxes this gain %s less.", cmp.LowerTaxState, cmp.Difference.StringFixed(2))
	}
	return cmp
}

// RelocationImpact quantifies moving from one state to another before
// realizing a gain.
type RelocationImpact struct {
	CurrentState   string          `json:"currentState"`
	TargetState    string          `json:"targetState"`
	CurrentTax     decimal.Decimal `json:"currentTax"`
	TargetTax      decimal.Decimal `json:"targetTax"`
	Savings        decimal.Decimal `json:"savings"`
	Recommendation string          `json:"recommendation"`
}

// RelocationTaxImpact computes the savings (possibly negative) of realizing
// the gain in the target state instead of the current one, with a
// deterministic recommendation string.
func (st *StateTaxTable) RelocationTaxImpact(gain decimal.Decimal, currentState, targetState string) RelocationImpact {
	currentTax, _ := st.Tax(gain, currentState)
	targetTax, _ := st.Tax(gain, targetState)
	savings := currentTax.Sub(targetTax)
	return RelocationImpact{
		CurrentState:   strings.ToUpper(strings.TrimSpace(currentState)),
		TargetState:    strings.ToUpper(strings.TrimSpace(targetState)),
		CurrentTax:     currentTax,
		TargetTax:      targetTax,
		Savings:        savings,
		Recommendation: savingsRecommendation(savings),
	}
}

// NoTaxStateSaving is the saving available by realizing a gain in one no-tax
// state.
type NoTaxStateSaving struct {
	State   string          `json:"state"`
	Name    string          `json:"name"`
	Savings decimal.Decimal `json:"savings"`
}

// NoTaxStateSavings lists, per no-tax state, what the taxpayer would save
// relative to their current state. The list is sorted by state code.
func (st *StateTaxTable) NoTaxStateSavings(gain decimal.Decimal, currentState string) []NoTaxStateSaving {
	currentTax, _ := st.Tax(gain, currentState)
	var savings []NoTaxStateSaving
	for _, code := range st.NoTaxStates() {
		info, _ := st.Lookup(code)
		savings = append(savings, NoTaxStateSaving{
			State:   code,
			Name:    info.Name,
			Savings: currentTax,
		})
	}
	return savings
}
