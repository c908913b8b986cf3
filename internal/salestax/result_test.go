package salestax

import (
	"encoding/json"
	"testing"

	"github.com/flexprice/salestax/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZeroResult(t *testing.T) {
	r := NewZeroResult("cur_usd", types.CalculationOutcomeIneligible)
	assert.True(t, r.Amount.IsZero())
	assert.Equal(t, "cur_usd", r.Amount.CurrencyID)
	assert.Empty(t, r.Breakdown)

	total, err := r.BreakdownTotal()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestResult_BreakdownTotal(t *testing.T) {
	r := &Result{
		Amount: types.NewAmount(decimal.RequireFromString("8.50"), "cur_usd"),
		Breakdown: []Breakdown{
			{Amount: types.NewAmount(decimal.RequireFromString("1.00"), "cur_usd"), Level: types.JurisdictionLevelCity},
			{Amount: types.NewAmount(decimal.RequireFromString("7.50"), "cur_usd"), Level: types.JurisdictionLevelState},
		},
	}

	total, err := r.BreakdownTotal()
	require.NoError(t, err)
	assert.True(t, total.Value.Equal(r.Amount.Value))

	r.Breakdown[1].Amount.CurrencyID = "cur_eur"
	_, err = r.BreakdownTotal()
	assert.Error(t, err)
}

func TestJurisdictions_MarshalKeepsOrder(t *testing.T) {
	j := Jurisdictions{
		{Level: types.JurisdictionLevelCity, Name: "LOS ANGELES"},
		{Level: types.JurisdictionLevelCounty, Name: "LOS ANGELES"},
		{Level: types.JurisdictionLevelState, Name: "CA"},
		{Level: types.JurisdictionLevelCountry, Name: "US"},
	}

	b, err := json.Marshal(j)
	require.NoError(t, err)
	assert.Equal(t, `{"city":"LOS ANGELES","county":"LOS ANGELES","state":"CA","country":"US"}`, string(b))

	name, ok := j.Get(types.JurisdictionLevelState)
	assert.True(t, ok)
	assert.Equal(t, "CA", name)

	_, ok = j.Get("district")
	assert.False(t, ok)
}
