package salestax

import (
	"bytes"
	"encoding/json"

	"github.com/flexprice/salestax/internal/types"
)

// Result is the normalized outcome of a sales tax calculation
type Result struct {
	Amount        types.Amount             `json:"amount"`
	Jurisdictions Jurisdictions            `json:"jurisdictions,omitempty"`
	Breakdown     []Breakdown              `json:"breakdown,omitempty"`
	Outcome       types.CalculationOutcome `json:"outcome"`
}

// Breakdown is the share of the tax attributed to one jurisdiction level
type Breakdown struct {
	Amount types.Amount            `json:"amount"`
	Level  types.JurisdictionLevel `json:"level"`
}

// Jurisdiction names the authority of one level the sale is attributed to
type Jurisdiction struct {
	Level types.JurisdictionLevel
	Name  string
}

// Jurisdictions is an ordered level -> name mapping. It marshals to a JSON
// object whose keys keep the slice order.
type Jurisdictions []Jurisdiction

// Get returns the name recorded for a level
func (j Jurisdictions) Get(level types.JurisdictionLevel) (string, bool) {
	for _, item := range j {
		if item.Level == level {
			return item.Name, true
		}
	}
	return "", false
}

func (j Jurisdictions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range j {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(item.Level))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(item.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewZeroResult returns a zero tax result in the given currency
func NewZeroResult(currencyID string, outcome types.CalculationOutcome) *Result {
	return &Result{
		Amount:  types.ZeroAmount(currencyID),
		Outcome: outcome,
	}
}

// BreakdownTotal sums the breakdown amounts. Results with no breakdown sum
// to zero in the result currency.
func (r *Result) BreakdownTotal() (types.Amount, error) {
	total := types.ZeroAmount(r.Amount.CurrencyID)
	for _, item := range r.Breakdown {
		var err error
		if total, err = total.Add(item.Amount); err != nil {
			return types.Amount{}, err
		}
	}
	return total, nil
}
