package service

import (
	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	"github.com/flexprice/salestax/internal/integration"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Sentry *sentry.Service

	// Repositories
	ProviderConfigRepo providerconfig.Repository

	// Integrations
	IntegrationFactory *integration.Factory
}

// NewServiceParams creates a new ServiceParams
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	sentry *sentry.Service,
	providerConfigRepo providerconfig.Repository,
	integrationFactory *integration.Factory,
) ServiceParams {
	return ServiceParams{
		Logger:             logger,
		Config:             config,
		Sentry:             sentry,
		ProviderConfigRepo: providerConfigRepo,
		IntegrationFactory: integrationFactory,
	}
}
