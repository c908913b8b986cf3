package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_Add(t *testing.T) {
	a := NewAmount(decimal.RequireFromString("1.25"), "cur_usd")
	b := NewAmount(decimal.RequireFromString("0.75"), "cur_usd")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Value.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "cur_usd", sum.CurrencyID)
}

func TestAmount_AddCurrencyMismatch(t *testing.T) {
	_, err := ZeroAmount("cur_usd").Add(ZeroAmount("cur_eur"))
	assert.Error(t, err)
}

func TestZeroAmount(t *testing.T) {
	zero := ZeroAmount("cur_usd")
	assert.True(t, zero.IsZero())
	assert.Equal(t, "0.00 cur_usd", zero.String())
}

func TestEqualCode(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same case", "US", "US", true},
		{"different case", "us", "US", true},
		{"padded", " usd ", "USD", false},
		{"different", "CA", "US", false},
		{"empty", "", "US", false},
		{"whitespace only", "  ", "US", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EqualCode(tt.a, tt.b))
		})
	}
}
