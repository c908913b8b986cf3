package memory

import (
	"context"

	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/domain/currency"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	"github.com/flexprice/salestax/internal/domain/store"
	"github.com/flexprice/salestax/internal/domain/taxclass"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/logger"
)

// Catalog is the in-memory stand-in for the host platform's reference data
type Catalog struct {
	Currencies *CurrencyRepository
	Stores     *StoreRepository
	TaxClasses *TaxClassRepository
	Providers  *ProviderConfigRepository
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		Currencies: NewCurrencyRepository(),
		Stores:     NewStoreRepository(),
		TaxClasses: NewTaxClassRepository(),
		Providers:  NewProviderConfigRepository(),
	}
}

// NewCatalogFromConfig creates a catalog seeded from the configuration
func NewCatalogFromConfig(cfg *config.Configuration, log *logger.Logger) (*Catalog, error) {
	c := NewCatalog()
	ctx := context.Background()

	for _, seed := range cfg.Catalog.Currencies {
		if err := c.Currencies.Create(ctx, seed.ID, &currency.Currency{ID: seed.ID, Code: seed.Code}); err != nil {
			return nil, err
		}
	}

	for _, seed := range cfg.Catalog.Stores {
		if err := c.Stores.Create(ctx, seed.ID, &store.Store{
			ID:                seed.ID,
			Name:              seed.Name,
			DefaultTaxClassID: seed.DefaultTaxClassID,
		}); err != nil {
			return nil, err
		}
	}

	for _, seed := range cfg.Catalog.TaxClasses {
		if _, err := c.Stores.Get(ctx, seed.StoreID); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Tax class %s references unknown store %s", seed.ID, seed.StoreID).
				Mark(ierr.ErrValidation)
		}
		if err := c.TaxClasses.Create(ctx, seed.ID, &taxclass.TaxClass{
			ID:             seed.ID,
			StoreID:        seed.StoreID,
			Name:           seed.Name,
			DefaultTaxCode: seed.DefaultTaxCode,
			TaxCodes:       normalizeTaxCodes(seed.TaxCodes),
		}); err != nil {
			return nil, err
		}
	}

	for _, p := range cfg.Providers {
		if err := c.Providers.Create(ctx, p.StoreID, &providerconfig.StoreProvider{
			StoreID:  p.StoreID,
			Alias:    p.Alias,
			Settings: p.Settings,
		}); err != nil {
			return nil, err
		}
	}

	log.Infow("seeded host catalog",
		"currencies", len(cfg.Catalog.Currencies),
		"stores", len(cfg.Catalog.Stores),
		"tax_classes", len(cfg.Catalog.TaxClasses),
		"store_providers", len(cfg.Providers))

	return c, nil
}
