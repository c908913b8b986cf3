package dto

import (
	"fmt"

	"github.com/flexprice/salestax/internal/domain/order"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/salestax"
	"github.com/flexprice/salestax/internal/types"
	"github.com/flexprice/salestax/internal/types/settings"
	"github.com/flexprice/salestax/internal/validator"
	"github.com/samber/lo"
)

// CalculateSalesTaxRequest asks for the sales tax of an order
// @Description Order, price calculation and addresses to calculate sales tax for
type CalculateSalesTaxRequest struct {
	// order is the order being taxed; its lines must all have a calculation
	Order *order.Order `json:"order" validate:"required"`

	// calculation holds the host platform's prices for the order
	Calculation *order.Calculation `json:"calculation" validate:"required"`

	// from_address is where the goods ship from
	FromAddress order.Address `json:"from_address"`

	// to_address is where the goods ship to
	ToAddress order.Address `json:"to_address"`
}

func (r *CalculateSalesTaxRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Order.ID == "" || r.Order.StoreID == "" || r.Order.CurrencyID == "" {
		return ierr.NewError("order id, store_id and currency_id are required").
			WithHint("Order id, store and currency are required").
			Mark(ierr.ErrValidation)
	}

	for _, line := range r.Order.Lines {
		if line == nil || line.ID == "" {
			return ierr.NewError("order line without id").
				WithHint("Every order line must have an id").
				WithReportableDetails(map[string]any{"order_id": r.Order.ID}).
				Mark(ierr.ErrValidation)
		}
		if line.Quantity.IsNegative() {
			return ierr.NewErrorf("order line %s has a negative quantity", line.ID).
				WithHint("Order line quantities cannot be negative").
				WithReportableDetails(map[string]any{"order_line_id": line.ID}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ToRequest converts the DTO into a provider request
func (r *CalculateSalesTaxRequest) ToRequest() *salestax.Request {
	return &salestax.Request{
		Order:       r.Order,
		Calculation: r.Calculation,
		FromAddress: r.FromAddress,
		ToAddress:   r.ToAddress,
	}
}

// SalesTaxResponse is the calculated sales tax of an order
type SalesTaxResponse struct {
	ID       string                      `json:"id"`
	OrderID  string                      `json:"order_id"`
	StoreID  string                      `json:"store_id"`
	Provider types.SalesTaxProviderAlias `json:"provider,omitempty"`

	*salestax.Result `json:",inline"`
}

// SettingResponse describes one provider setting
type SettingResponse struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Description string        `json:"description,omitempty"`
	SortOrder   int           `json:"sort_order"`
	Kind        settings.Kind `json:"kind"`
	Secret      bool          `json:"secret"`
}

// ProviderResponse describes a registered sales tax provider
type ProviderResponse struct {
	Alias       types.SalesTaxProviderAlias `json:"alias"`
	Label       string                      `json:"label"`
	Description string                      `json:"description,omitempty"`
	Settings    []SettingResponse           `json:"settings"`
}

// NewProviderResponse builds the response of a registration, settings in
// form order
func NewProviderResponse(reg salestax.Registration) *ProviderResponse {
	return &ProviderResponse{
		Alias:       reg.Alias,
		Label:       reg.Label,
		Description: reg.Description,
		Settings: lo.Map(reg.Schema.Sorted(), func(d settings.Definition, _ int) SettingResponse {
			return SettingResponse{
				Key:         d.Key,
				Label:       d.Label,
				Description: d.Description,
				SortOrder:   d.SortOrder,
				Kind:        d.Kind,
				Secret:      d.Secret,
			}
		}),
	}
}

// ListProvidersResponse lists the registered providers
type ListProvidersResponse struct {
	Items []*ProviderResponse `json:"items"`
}

// StoreProviderResponse is the provider configured for a store with secret
// settings masked
type StoreProviderResponse struct {
	StoreID  string         `json:"store_id"`
	Alias    string         `json:"alias"`
	Settings map[string]any `json:"settings"`
}

// NewStoreProviderResponse masks the secret settings of sp
func NewStoreProviderResponse(sp *providerconfig.StoreProvider, schema *settings.Schema) *StoreProviderResponse {
	values := sp.Settings
	if schema != nil {
		values = schema.Redact(sp.Settings)
	}
	return &StoreProviderResponse{
		StoreID:  sp.StoreID,
		Alias:    sp.Alias,
		Settings: values,
	}
}

// MaskAll masks every non-empty setting value
func (r *StoreProviderResponse) MaskAll() *StoreProviderResponse {
	masked := make(map[string]any, len(r.Settings))
	for k, v := range r.Settings {
		if fmt.Sprint(v) == "" {
			masked[k] = v
			continue
		}
		masked[k] = settings.RedactedValue
	}
	r.Settings = masked
	return r
}
