package service

import (
	"context"

	"github.com/flexprice/salestax/internal/api/dto"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/metrics"
	"github.com/flexprice/salestax/internal/salestax"
	"github.com/flexprice/salestax/internal/types"
	"github.com/samber/lo"
)

// SalesTaxService calculates sales tax for orders through the provider
// configured for the order's store
type SalesTaxService interface {
	Calculate(ctx context.Context, req dto.CalculateSalesTaxRequest) (*dto.SalesTaxResponse, error)
	ListProviders(ctx context.Context) (*dto.ListProvidersResponse, error)
	GetStoreProvider(ctx context.Context, storeID string) (*dto.StoreProviderResponse, error)
}

type salesTaxService struct {
	ServiceParams
}

func NewSalesTaxService(params ServiceParams) SalesTaxService {
	return &salesTaxService{
		ServiceParams: params,
	}
}

// Calculate returns zero tax for stores without a provider. Provider faults
// never surface here; only invalid requests and provider misconfiguration do.
func (s *salesTaxService) Calculate(ctx context.Context, req dto.CalculateSalesTaxRequest) (*dto.SalesTaxResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o := req.Order
	ctx = types.WithStoreID(ctx, o.StoreID)

	resp := &dto.SalesTaxResponse{
		ID:      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SALES_TAX_CALCULATION),
		OrderID: o.ID,
		StoreID: o.StoreID,
	}

	provider, err := s.IntegrationFactory.GetSalesTaxProvider(ctx, o.StoreID)
	if err != nil {
		if ierr.IsNotFound(err) && !ierr.IsValidation(err) {
			s.Logger.WithContext(ctx).Debugw("no sales tax provider configured for store",
				"store_id", o.StoreID,
				"order_id", o.ID)
			metrics.ObserveCalculation("none", string(types.CalculationOutcomeUnconfigured))
			resp.Result = salestax.NewZeroResult(o.CurrencyID, types.CalculationOutcomeUnconfigured)
			return resp, nil
		}
		return nil, err
	}

	result := provider.CalculateSalesTax(ctx, req.ToRequest())
	metrics.ObserveCalculation(string(provider.Alias()), string(result.Outcome))

	s.Sentry.AddBreadcrumb(ctx, "salestax", "sales tax calculated", map[string]interface{}{
		"order_id": o.ID,
		"provider": string(provider.Alias()),
		"outcome":  string(result.Outcome),
		"amount":   result.Amount.String(),
	})
	s.Logger.WithContext(ctx).Infow("calculated sales tax",
		"order_id", o.ID,
		"store_id", o.StoreID,
		"provider", provider.Alias(),
		"outcome", result.Outcome,
		"amount", result.Amount.Value.String())

	resp.Provider = provider.Alias()
	resp.Result = result
	return resp, nil
}

func (s *salesTaxService) ListProviders(ctx context.Context) (*dto.ListProvidersResponse, error) {
	regs := s.IntegrationFactory.Registry().List()
	return &dto.ListProvidersResponse{
		Items: lo.Map(regs, func(reg salestax.Registration, _ int) *dto.ProviderResponse {
			return dto.NewProviderResponse(reg)
		}),
	}, nil
}

func (s *salesTaxService) GetStoreProvider(ctx context.Context, storeID string) (*dto.StoreProviderResponse, error) {
	if storeID == "" {
		return nil, ierr.NewError("store_id is required").
			WithHint("Store ID is required").
			Mark(ierr.ErrValidation)
	}

	sp, err := s.ProviderConfigRepo.GetByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	reg, err := s.IntegrationFactory.Registry().Get(types.SalesTaxProviderAlias(sp.Alias))
	if err != nil {
		// unknown providers have no schema, mask every value
		return dto.NewStoreProviderResponse(sp, nil).MaskAll(), nil
	}
	return dto.NewStoreProviderResponse(sp, reg.Schema), nil
}
