package integration

import (
	"context"

	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/httpclient"
	"github.com/flexprice/salestax/internal/integration/taxjar"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/salestax"
	"github.com/flexprice/salestax/internal/types"
)

// NewRegistry returns a registry with every built-in sales tax provider
func NewRegistry() (*salestax.Registry, error) {
	registry := salestax.NewRegistry()
	for _, reg := range []salestax.Registration{
		taxjar.Registration(),
	} {
		if err := registry.Register(reg); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Factory builds the sales tax provider configured for a store
type Factory struct {
	config       *config.Configuration
	logger       *logger.Logger
	httpClient   httpclient.Client
	host         salestax.HostServices
	reporter     salestax.FaultReporter
	registry     *salestax.Registry
	providerRepo providerconfig.Repository
}

// NewFactory creates a new integration factory
func NewFactory(
	config *config.Configuration,
	logger *logger.Logger,
	httpClient httpclient.Client,
	host salestax.HostServices,
	reporter salestax.FaultReporter,
	registry *salestax.Registry,
	providerRepo providerconfig.Repository,
) *Factory {
	return &Factory{
		config:       config,
		logger:       logger,
		httpClient:   httpClient,
		host:         host,
		reporter:     reporter,
		registry:     registry,
		providerRepo: providerRepo,
	}
}

// Registry returns the provider registry the factory builds from
func (f *Factory) Registry() *salestax.Registry {
	return f.registry
}

// GetSalesTaxProvider returns the provider configured for a store.
// ErrNotFound means the store has no provider configured.
func (f *Factory) GetSalesTaxProvider(ctx context.Context, storeID string) (salestax.Provider, error) {
	sp, err := f.providerRepo.GetByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	provider, err := f.registry.New(types.SalesTaxProviderAlias(sp.Alias), salestax.Dependencies{
		Config:     f.config,
		Logger:     f.logger,
		HTTPClient: f.httpClient,
		Host:       f.host,
		Reporter:   f.reporter,
	}, sp.Settings)
	if err != nil {
		return nil, ierr.WithError(err).
			WithReportableDetails(map[string]any{
				"store_id": storeID,
				"alias":    sp.Alias,
			}).
			Mark(ierr.ErrValidation)
	}

	f.logger.Debugw("created sales tax provider",
		"store_id", storeID,
		"alias", sp.Alias)
	return provider, nil
}
