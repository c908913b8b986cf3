package memory

import (
	"context"
	"strings"

	"github.com/flexprice/salestax/internal/domain/currency"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	"github.com/flexprice/salestax/internal/domain/store"
	"github.com/flexprice/salestax/internal/domain/taxclass"
	ierr "github.com/flexprice/salestax/internal/errors"
)

// CurrencyRepository implements currency.Service
type CurrencyRepository struct {
	*Store[*currency.Currency]
}

func NewCurrencyRepository() *CurrencyRepository {
	return &CurrencyRepository{Store: NewStore[*currency.Currency]("currency")}
}

func (r *CurrencyRepository) GetCurrency(ctx context.Context, id string) (*currency.Currency, error) {
	return r.Get(ctx, id)
}

// StoreRepository implements store.Service
type StoreRepository struct {
	*Store[*store.Store]
}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{Store: NewStore[*store.Store]("store")}
}

func (r *StoreRepository) GetStore(ctx context.Context, id string) (*store.Store, error) {
	return r.Get(ctx, id)
}

// TaxClassRepository implements taxclass.Service
type TaxClassRepository struct {
	*Store[*taxclass.TaxClass]
}

func NewTaxClassRepository() *TaxClassRepository {
	return &TaxClassRepository{Store: NewStore[*taxclass.TaxClass]("tax class")}
}

// GetTaxClasses returns the tax classes of a store ordered by id
func (r *TaxClassRepository) GetTaxClasses(ctx context.Context, storeID string) ([]*taxclass.TaxClass, error) {
	return r.List(ctx,
		func(_ context.Context, tc *taxclass.TaxClass) bool { return tc.StoreID == storeID },
		func(a, b *taxclass.TaxClass) bool { return a.ID < b.ID },
	), nil
}

// ProviderConfigRepository implements providerconfig.Repository
type ProviderConfigRepository struct {
	*Store[*providerconfig.StoreProvider]
}

func NewProviderConfigRepository() *ProviderConfigRepository {
	return &ProviderConfigRepository{Store: NewStore[*providerconfig.StoreProvider]("store provider")}
}

func (r *ProviderConfigRepository) GetByStore(ctx context.Context, storeID string) (*providerconfig.StoreProvider, error) {
	sp, err := r.Get(ctx, storeID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("No sales tax provider configured for store %s", storeID).
			Mark(ierr.ErrNotFound)
	}
	return sp, nil
}

// normalizeTaxCodes upper-cases jurisdiction keys; config loaders lower-case
// map keys
func normalizeTaxCodes(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}
