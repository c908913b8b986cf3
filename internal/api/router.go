package api

import (
	v1 "github.com/flexprice/salestax/internal/api/v1"
	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/metrics"
	"github.com/flexprice/salestax/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health   *v1.HealthHandler
	SalesTax *v1.SalesTaxHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.SentryScopeMiddleware,
		middleware.MetricsMiddleware,
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	salesTax := router.Group("/sales-tax")
	{
		salesTax.POST("/calculate", handlers.SalesTax.Calculate)
		salesTax.GET("/providers", handlers.SalesTax.ListProviders)
		salesTax.GET("/stores/:store_id/provider", handlers.SalesTax.GetStoreProvider)
	}
}
