package order

import (
	"github.com/shopspring/decimal"
)

// Address is a snapshot of a postal address used as ship-from or ship-to
type Address struct {
	AddressLine1   string `json:"address_line_1,omitempty"`
	AddressLine2   string `json:"address_line_2,omitempty"`
	City           string `json:"city,omitempty"`
	Region         string `json:"region,omitempty"`
	ZipCode        string `json:"zip_code,omitempty"`
	CountryISOCode string `json:"country_iso_code,omitempty"`
}

// Order is the read-only view of an order the host platform hands to a
// sales tax provider
type Order struct {
	ID           string       `json:"id"`
	StoreID      string       `json:"store_id"`
	CurrencyID   string       `json:"currency_id"`
	Lines        []*Line      `json:"lines"`
	ShippingInfo ShippingInfo `json:"shipping_info"`
	PaymentInfo  PaymentInfo  `json:"payment_info"`
}

// ShippingInfo holds the shipping destination. An empty CountryID means no
// destination has been chosen yet.
type ShippingInfo struct {
	CountryID string `json:"country_id,omitempty"`
	RegionID  string `json:"region_id,omitempty"`
}

// PaymentInfo holds the billing location
type PaymentInfo struct {
	CountryID string `json:"country_id,omitempty"`
	RegionID  string `json:"region_id,omitempty"`
}

// Line is a single order line. TaxClassID is empty when the line uses the
// store default tax class.
type Line struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Quantity   decimal.Decimal `json:"quantity"`
	TaxClassID string          `json:"tax_class_id,omitempty"`
}

// Price is a monetary value split into its tax components
type Price struct {
	WithoutTax decimal.Decimal `json:"without_tax"`
	Tax        decimal.Decimal `json:"tax"`
	WithTax    decimal.Decimal `json:"with_tax"`
}

// NewPrice builds a price from its tax exclusive value and tax
func NewPrice(withoutTax, tax decimal.Decimal) Price {
	return Price{WithoutTax: withoutTax, Tax: tax, WithTax: withoutTax.Add(tax)}
}

// Calculation is the host platform's price calculation for an order
type Calculation struct {
	SubtotalPrice      Price                       `json:"subtotal_price"`
	ShippingTotalPrice Price                       `json:"shipping_total_price"`
	Lines              map[string]*LineCalculation `json:"lines"`
}

// LineCalculation holds the calculated prices of one order line
type LineCalculation struct {
	UnitPrice  Price      `json:"unit_price"`
	TotalPrice TotalPrice `json:"total_price"`
}

// TotalPrice is a line total together with the sum of the adjustments
// (discounts and fees) applied to it
type TotalPrice struct {
	Value           Price `json:"value"`
	TotalAdjustment Price `json:"total_adjustment"`
}

// Line returns the calculation of the given order line, or nil
func (c *Calculation) Line(lineID string) *LineCalculation {
	if c == nil || c.Lines == nil {
		return nil
	}
	return c.Lines[lineID]
}
