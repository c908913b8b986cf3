package types

import (
	"fmt"

	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/shopspring/decimal"
)

// Amount is a monetary value tagged with the host platform's currency id.
// The currency id is opaque here, it is resolved to an ISO code through the
// currency service.
type Amount struct {
	Value      decimal.Decimal `json:"value"`
	CurrencyID string          `json:"currency_id"`
}

// NewAmount creates an amount in the given currency
func NewAmount(value decimal.Decimal, currencyID string) Amount {
	return Amount{Value: value, CurrencyID: currencyID}
}

// ZeroAmount returns a zero value in the given currency
func ZeroAmount(currencyID string) Amount {
	return Amount{Value: decimal.Zero, CurrencyID: currencyID}
}

// IsZero reports whether the value is zero
func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

// Add sums two amounts. Amounts in different currencies cannot be added.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.CurrencyID != b.CurrencyID {
		return Amount{}, ierr.NewErrorf("currency mismatch: %s != %s", a.CurrencyID, b.CurrencyID).
			Mark(ierr.ErrInvalidOperation)
	}
	return Amount{Value: a.Value.Add(b.Value), CurrencyID: a.CurrencyID}, nil
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Value.StringFixed(2), a.CurrencyID)
}
