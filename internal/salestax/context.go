package salestax

import (
	"context"

	"github.com/flexprice/salestax/internal/domain/order"
	"github.com/flexprice/salestax/internal/domain/store"
	"github.com/flexprice/salestax/internal/domain/taxclass"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/samber/lo"
)

// CalculationContext is the host reference data a calculation needs
type CalculationContext struct {
	Store           *store.Store
	TaxClasses      []*taxclass.TaxClass
	DefaultTaxClass *taxclass.TaxClass
	TaxSource       taxclass.TaxSource
}

// ResolveTaxSource picks the jurisdiction of record: the shipping destination
// when one is set, otherwise the billing location. An order with neither is
// an upstream data fault.
func ResolveTaxSource(o *order.Order) (taxclass.TaxSource, error) {
	if o.ShippingInfo.CountryID != "" {
		return taxclass.TaxSource{
			CountryID: o.ShippingInfo.CountryID,
			RegionID:  o.ShippingInfo.RegionID,
		}, nil
	}

	if o.PaymentInfo.CountryID == "" {
		return taxclass.TaxSource{}, ierr.NewError("order has no shipping or billing country").
			WithHint("A shipping or billing country is required to calculate sales tax").
			WithReportableDetails(map[string]any{"order_id": o.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	return taxclass.TaxSource{
		CountryID: o.PaymentInfo.CountryID,
		RegionID:  o.PaymentInfo.RegionID,
	}, nil
}

// ResolveContext loads the store, its tax classes and default tax class, and
// the tax source of the order
func (h HostServices) ResolveContext(ctx context.Context, o *order.Order) (*CalculationContext, error) {
	s, err := h.Stores.GetStore(ctx, o.StoreID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("resolving store").
			Mark(ierr.ErrNotFound)
	}

	classes, err := h.TaxClasses.GetTaxClasses(ctx, o.StoreID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("resolving tax classes").
			Mark(ierr.ErrNotFound)
	}

	source, err := ResolveTaxSource(o)
	if err != nil {
		return nil, err
	}

	cc := &CalculationContext{
		Store:      s,
		TaxClasses: classes,
		TaxSource:  source,
	}
	if s.HasDefaultTaxClass() {
		cc.DefaultTaxClass = cc.TaxClass(s.DefaultTaxClassID)
	}
	return cc, nil
}

// TaxClass finds a tax class of the store by id
func (c *CalculationContext) TaxClass(id string) *taxclass.TaxClass {
	class, ok := lo.Find(c.TaxClasses, func(tc *taxclass.TaxClass) bool {
		return tc != nil && tc.ID == id
	})
	if !ok {
		return nil
	}
	return class
}

// TaxCodeForLine resolves the tax code of an order line for the tax source.
// A line's own tax class takes precedence over the store default. An empty
// string means no code, leaving the tax service to apply its default.
func (c *CalculationContext) TaxCodeForLine(line *order.Line) string {
	class := c.DefaultTaxClass
	if line.TaxClassID != "" {
		class = c.TaxClass(line.TaxClassID)
	}
	return class.GetTaxCode(c.TaxSource)
}
