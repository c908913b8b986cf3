package v1

import (
	"net/http"

	"github.com/flexprice/salestax/internal/api/dto"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/service"
	"github.com/gin-gonic/gin"
)

type SalesTaxHandler struct {
	service service.SalesTaxService
	logger  *logger.Logger
}

func NewSalesTaxHandler(service service.SalesTaxService, logger *logger.Logger) *SalesTaxHandler {
	return &SalesTaxHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Calculate sales tax
// @Description Calculate the sales tax of an order with the provider configured for its store. Provider faults yield zero tax with outcome "failed".
// @Tags Sales Tax
// @Accept json
// @Produce json
// @Param request body dto.CalculateSalesTaxRequest true "Order to calculate sales tax for"
// @Success 200 {object} dto.SalesTaxResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sales-tax/calculate [post]
func (h *SalesTaxHandler) Calculate(c *gin.Context) {
	var req dto.CalculateSalesTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List sales tax providers
// @Description List the registered sales tax providers and their settings
// @Tags Sales Tax
// @Produce json
// @Success 200 {object} dto.ListProvidersResponse
// @Router /sales-tax/providers [get]
func (h *SalesTaxHandler) ListProviders(c *gin.Context) {
	resp, err := h.service.ListProviders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a store's sales tax provider
// @Description Get the sales tax provider configured for a store with secret settings masked
// @Tags Sales Tax
// @Produce json
// @Param store_id path string true "Store ID"
// @Success 200 {object} dto.StoreProviderResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sales-tax/stores/{store_id}/provider [get]
func (h *SalesTaxHandler) GetStoreProvider(c *gin.Context) {
	resp, err := h.service.GetStoreProvider(c.Request.Context(), c.Param("store_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
