package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/salestax/internal/api"
	v1 "github.com/flexprice/salestax/internal/api/v1"
	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	"github.com/flexprice/salestax/internal/httpclient"
	"github.com/flexprice/salestax/internal/integration"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/metrics"
	"github.com/flexprice/salestax/internal/repository/memory"
	"github.com/flexprice/salestax/internal/salestax"
	"github.com/flexprice/salestax/internal/sentry"
	"github.com/flexprice/salestax/internal/service"
	"github.com/flexprice/salestax/internal/types"
	"github.com/flexprice/salestax/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Sales Tax API
// @version 1.0
// @description Sales tax calculation for commerce orders
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// HTTP Client
			provideHTTPClient,

			// Host platform
			memory.NewCatalogFromConfig,
			provideHostServices,
			provideProviderConfigRepository,
			provideFaultReporter,

			// Integrations
			integration.NewRegistry,
			integration.NewFactory,
		),
		sentry.Module(),
	)

	// Services
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewSalesTaxService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			metrics.RegisterDefault,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHTTPClient(cfg *config.Configuration) httpclient.Client {
	return httpclient.NewClient(httpclient.ClientConfig{Timeout: cfg.TaxJar.Timeout})
}

func provideHostServices(catalog *memory.Catalog) salestax.HostServices {
	return salestax.HostServices{
		Currencies: catalog.Currencies,
		Stores:     catalog.Stores,
		TaxClasses: catalog.TaxClasses,
	}
}

func provideProviderConfigRepository(catalog *memory.Catalog) providerconfig.Repository {
	return catalog.Providers
}

func provideFaultReporter(svc *sentry.Service) salestax.FaultReporter {
	return svc
}

func provideHandlers(
	logger *logger.Logger,
	salesTaxService service.SalesTaxService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		SalesTax: v1.NewSalesTaxHandler(salesTaxService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address, "mode", cfg.Deployment.Mode)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
