package taxjar

import (
	"github.com/shopspring/decimal"
)

const (
	// SandboxURL is the base URL of the TaxJar sandbox API
	SandboxURL = "https://api.sandbox.taxjar.com"

	// ProductionURL is the base URL of the TaxJar live API
	ProductionURL = "https://api.taxjar.com"

	// TaxesEndpoint calculates sales tax for an order
	TaxesEndpoint = "/v2/taxes"

	// APIVersion is sent in the x-api-version header
	APIVersion = "2022-01-24"
)

// Decimal is a decimal that marshals as a bare JSON number, the format the
// TaxJar API expects for amounts
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps d
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	return d.Decimal.UnmarshalJSON(b)
}

// TaxRequest is the body of POST /v2/taxes
type TaxRequest struct {
	FromCountry string     `json:"from_country,omitempty"`
	FromZip     string     `json:"from_zip,omitempty"`
	FromState   string     `json:"from_state,omitempty"`
	FromCity    string     `json:"from_city,omitempty"`
	FromStreet  string     `json:"from_street,omitempty"`
	ToCountry   string     `json:"to_country"`
	ToZip       string     `json:"to_zip,omitempty"`
	ToState     string     `json:"to_state,omitempty"`
	ToCity      string     `json:"to_city,omitempty"`
	ToStreet    string     `json:"to_street,omitempty"`
	Amount      Decimal    `json:"amount"`
	Shipping    Decimal    `json:"shipping"`
	LineItems   []LineItem `json:"line_items,omitempty"`
}

// LineItem is one order line of a TaxRequest. ProductTaxCode is omitted
// when empty so TaxJar applies its default treatment.
type LineItem struct {
	ID             string  `json:"id"`
	Quantity       int     `json:"quantity"`
	ProductTaxCode string  `json:"product_tax_code,omitempty"`
	UnitPrice      Decimal `json:"unit_price"`
	Discount       Decimal `json:"discount"`
}

// TaxResponse wraps the tax object returned by POST /v2/taxes
type TaxResponse struct {
	Tax *Tax `json:"tax"`
}

// Tax is the calculated sales tax of an order
type Tax struct {
	OrderTotalAmount decimal.Decimal `json:"order_total_amount"`
	Shipping         decimal.Decimal `json:"shipping"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	AmountToCollect  decimal.Decimal `json:"amount_to_collect"`
	Rate             decimal.Decimal `json:"rate"`
	HasNexus         bool            `json:"has_nexus"`
	FreightTaxable   bool            `json:"freight_taxable"`
	TaxSource        string          `json:"tax_source,omitempty"`
	Jurisdictions    Jurisdictions   `json:"jurisdictions"`
	Breakdown        Breakdown       `json:"breakdown"`
}

// Jurisdictions names the authorities the sale is attributed to
type Jurisdictions struct {
	Country string `json:"country"`
	State   string `json:"state"`
	County  string `json:"county"`
	City    string `json:"city"`
}

// Breakdown splits the collectable tax by jurisdiction level
type Breakdown struct {
	TaxableAmount         decimal.Decimal `json:"taxable_amount"`
	TaxCollectable        decimal.Decimal `json:"tax_collectable"`
	CombinedTaxRate       decimal.Decimal `json:"combined_tax_rate"`
	CityTaxCollectable    decimal.Decimal `json:"city_tax_collectable"`
	CountyTaxCollectable  decimal.Decimal `json:"county_tax_collectable"`
	StateTaxCollectable   decimal.Decimal `json:"state_tax_collectable"`
	CountryTaxCollectable decimal.Decimal `json:"country_tax_collectable"`
}

// ErrorResponse is the body TaxJar returns with non-2xx statuses
type ErrorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}
