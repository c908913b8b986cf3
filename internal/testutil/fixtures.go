package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/salestax/internal/domain/currency"
	"github.com/flexprice/salestax/internal/domain/order"
	"github.com/flexprice/salestax/internal/domain/store"
	"github.com/flexprice/salestax/internal/domain/taxclass"
	"github.com/flexprice/salestax/internal/repository/memory"
	"github.com/shopspring/decimal"
)

const (
	StoreID          = "store_1"
	StoreNoDefaultID = "store_no_default"
	CurrencyUSD      = "cur_usd"
	CurrencyEUR      = "cur_eur"
	TaxClassStandard = "tc_standard"
	TaxClassClothing = "tc_clothing"
	TaxClassDigital  = "tc_digital"
)

// NewCatalog returns an in-memory host catalog with two currencies, a store
// whose default tax class is tc_standard, a store without a default, and
// three tax classes
func NewCatalog() *memory.Catalog {
	ctx := context.Background()
	c := memory.NewCatalog()

	c.Currencies.Upsert(ctx, CurrencyUSD, &currency.Currency{ID: CurrencyUSD, Code: "USD"})
	c.Currencies.Upsert(ctx, CurrencyEUR, &currency.Currency{ID: CurrencyEUR, Code: "EUR"})

	c.Stores.Upsert(ctx, StoreID, &store.Store{ID: StoreID, Name: "Main", DefaultTaxClassID: TaxClassStandard})
	c.Stores.Upsert(ctx, StoreNoDefaultID, &store.Store{ID: StoreNoDefaultID, Name: "No default"})

	c.TaxClasses.Upsert(ctx, TaxClassStandard, &taxclass.TaxClass{
		ID:             TaxClassStandard,
		StoreID:        StoreID,
		Name:           "Standard",
		DefaultTaxCode: "00000",
		TaxCodes:       map[string]string{"US-CA": "00001"},
	})
	c.TaxClasses.Upsert(ctx, TaxClassClothing, &taxclass.TaxClass{
		ID:             TaxClassClothing,
		StoreID:        StoreID,
		Name:           "Clothing",
		DefaultTaxCode: "20010",
		TaxCodes:       map[string]string{"US-CA": "20011"},
	})
	c.TaxClasses.Upsert(ctx, TaxClassDigital, &taxclass.TaxClass{
		ID:             TaxClassDigital,
		StoreID:        StoreNoDefaultID,
		Name:           "Digital",
		DefaultTaxCode: "31000",
	})

	return c
}

// USAddress returns a ship-from style US address
func USAddress() order.Address {
	return order.Address{
		AddressLine1:   "9500 Gilman Drive",
		City:           "La Jolla",
		Region:         "CA",
		ZipCode:        "92093",
		CountryISOCode: "US",
	}
}

// USDestination returns a ship-to style US address
func USDestination() order.Address {
	return order.Address{
		AddressLine1:   "1335 E 103rd St",
		City:           "Los Angeles",
		Region:         "CA",
		ZipCode:        "90002",
		CountryISOCode: "US",
	}
}

// NewOrder returns a one line USD order shipped to California: subtotal
// 100.00, shipping 10.00, 2 x 45.00 with no explicit tax class
func NewOrder() (*order.Order, *order.Calculation) {
	o := &order.Order{
		ID:         "ord_1",
		StoreID:    StoreID,
		CurrencyID: CurrencyUSD,
		Lines: []*order.Line{
			{ID: "line_1", SKU: "SKU-1", Quantity: decimal.NewFromInt(2)},
		},
		ShippingInfo: order.ShippingInfo{CountryID: "US", RegionID: "CA"},
		PaymentInfo:  order.PaymentInfo{CountryID: "US", RegionID: "NY"},
	}

	calc := &order.Calculation{
		SubtotalPrice:      order.NewPrice(decimal.RequireFromString("100.00"), decimal.Zero),
		ShippingTotalPrice: order.NewPrice(decimal.RequireFromString("10.00"), decimal.Zero),
		Lines: map[string]*order.LineCalculation{
			"line_1": {
				UnitPrice: order.NewPrice(decimal.RequireFromString("45.00"), decimal.Zero),
				TotalPrice: order.TotalPrice{
					Value:           order.NewPrice(decimal.RequireFromString("90.00"), decimal.Zero),
					TotalAdjustment: order.NewPrice(decimal.Zero, decimal.Zero),
				},
			},
		},
	}
	return o, calc
}

// FailingCurrencyService fails every lookup with Err
type FailingCurrencyService struct {
	Err error
}

func (f FailingCurrencyService) GetCurrency(ctx context.Context, id string) (*currency.Currency, error) {
	return nil, f.Err
}

// CountingCurrencyService counts lookups made through it
type CountingCurrencyService struct {
	currency.Service
	mu    sync.Mutex
	calls int
}

func (c *CountingCurrencyService) GetCurrency(ctx context.Context, id string) (*currency.Currency, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Service.GetCurrency(ctx, id)
}

// Calls returns the number of lookups
func (c *CountingCurrencyService) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
