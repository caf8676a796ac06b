package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

func TestPortfolioRoundTrip(t *testing.T) {
	p := newTestPortfolio()
	inv := p.Assets()[0]
	require.NoError(t, p.UpdateAssetInput(inv.ID, "initialAmount", "25000"))
	require.NoError(t, p.UpdateAssetInput(inv.ID, "rateOfReturn", "6.5"))

	prop := p.AddProperty("Rental")
	prop.Property.IsRentalProperty = true
	prop.Property.LinkedInvestmentID = inv.ID
	p.SetYears(15)
	p.SetShowReal(false)

	data, err := p.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data, nil)
	require.NoError(t, err)

	assert.Equal(t, p.Years, loaded.Years)
	assert.Equal(t, p.StartingYear, loaded.StartingYear)
	assert.Equal(t, p.InflationRate.String(), loaded.InflationRate.String())
	assert.Equal(t, p.ActiveAssetID, loaded.ActiveAssetID)
	assert.True(t, loaded.ShowNominal)
	assert.False(t, loaded.ShowReal)

	require.Len(t, loaded.Assets(), 2)
	loadedInv, ok := loaded.Asset(inv.ID)
	require.True(t, ok)
	assert.Equal(t, "25000", loadedInv.Investment.InitialAmount.String())
	assert.Equal(t, "6.5", loadedInv.Investment.RateOfReturn.String())

	loadedProp, ok := loaded.Asset(prop.ID)
	require.True(t, ok)
	assert.True(t, loadedProp.Property.IsRentalProperty)
	assert.Equal(t, inv.ID, loadedProp.Property.LinkedInvestmentID)

	// Series are regenerated on load, not persisted: the recomputed numbers
	// must match the originals exactly.
	require.Len(t, loadedInv.Results, len(inv.Results))
	for year := range inv.Results {
		assert.Equal(t, inv.Results[year].Balance.String(), loadedInv.Results[year].Balance.String(), "year %d", year)
	}
}

func TestFromJSONUnknownAssetType(t *testing.T) {
	data := []byte(`{
		"assets": [{"id": "a1", "name": "Mystery", "type": "cryptobond", "enabled": true}],
		"years": 10,
		"inflationRate": "2.5",
		"startingYear": 2024,
		"showNominal": true,
		"showReal": true
	}`)

	_, err := FromJSON(data, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownAssetType)
}

func TestFromJSONMalformed(t *testing.T) {
	_, err := FromJSON([]byte(`{"assets": [`), nil)
	assert.Error(t, err)
}

func TestFromJSONEmptyAssetsFallsBackToDefault(t *testing.T) {
	data := []byte(`{"assets": [], "years": 10, "inflationRate": "2.5", "startingYear": 2024, "showNominal": true, "showReal": true}`)
	p, err := FromJSON(data, nil)
	require.NoError(t, err)
	assert.Len(t, p.Assets(), 1)
}

func TestFromJSONNormalizesBadSettings(t *testing.T) {
	p := newTestPortfolio()
	data, err := p.ToJSON()
	require.NoError(t, err)

	var pj map[string]any
	require.NoError(t, json.Unmarshal(data, &pj))
	pj["years"] = 0
	pj["showNominal"] = false
	pj["showReal"] = false
	pj["activeTabId"] = "no-such-asset"
	data, err = json.Marshal(pj)
	require.NoError(t, err)

	loaded, err := FromJSON(data, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Years)
	assert.True(t, loaded.ShowNominal)
	assert.Equal(t, loaded.Assets()[0].ID, loaded.ActiveAssetID)
}

func TestSerializedShapeOmitsResults(t *testing.T) {
	p := newTestPortfolio()
	data, err := p.ToJSON()
	require.NoError(t, err)

	var pj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &pj))
	require.Contains(t, pj, "assets")

	var assets []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(pj["assets"], &assets))
	require.Len(t, assets, 1)
	assert.Contains(t, assets[0], "inputs")
	assert.NotContains(t, assets[0], "results")
}
