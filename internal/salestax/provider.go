// Package salestax defines the contract between the host commerce platform's
// tax pipeline and the sales tax providers that plug into it.
package salestax

import (
	"context"

	"github.com/flexprice/salestax/internal/domain/currency"
	"github.com/flexprice/salestax/internal/domain/order"
	"github.com/flexprice/salestax/internal/domain/store"
	"github.com/flexprice/salestax/internal/domain/taxclass"
	"github.com/flexprice/salestax/internal/types"
)

// Provider calculates sales tax for an order.
//
// CalculateSalesTax never fails: when tax cannot or should not be computed
// the provider returns a zero result in the order's currency, so the
// surrounding checkout is never aborted. Implementations hold no per-call
// state and are safe for concurrent use.
type Provider interface {
	Alias() types.SalesTaxProviderAlias
	CalculateSalesTax(ctx context.Context, req *Request) *Result
}

// Request is everything the host platform knows about the sale. Providers
// read it and never modify it.
type Request struct {
	Order       *order.Order
	Calculation *order.Calculation
	FromAddress order.Address
	ToAddress   order.Address
}

// HostServices bundles the host platform lookups providers depend on.
// Tests substitute in-memory implementations.
type HostServices struct {
	Currencies currency.Service
	Stores     store.Service
	TaxClasses taxclass.Service
}

// FaultReporter receives faults that were contained by a provider
type FaultReporter interface {
	CaptureException(ctx context.Context, err error)
}

type nopReporter struct{}

func (nopReporter) CaptureException(context.Context, error) {}

// NopFaultReporter discards every fault
var NopFaultReporter FaultReporter = nopReporter{}
