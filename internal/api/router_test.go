package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flexprice/salestax/internal/api/dto"
	v1 "github.com/flexprice/salestax/internal/api/v1"
	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/domain/providerconfig"
	"github.com/flexprice/salestax/internal/integration"
	"github.com/flexprice/salestax/internal/integration/taxjar"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/metrics"
	"github.com/flexprice/salestax/internal/rest/middleware"
	"github.com/flexprice/salestax/internal/salestax"
	"github.com/flexprice/salestax/internal/sentry"
	"github.com/flexprice/salestax/internal/service"
	"github.com/flexprice/salestax/internal/testutil"
	"github.com/flexprice/salestax/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const taxResponseBody = `{"tax":{"amount_to_collect":8.5,
"jurisdictions":{"country":"US","state":"CA","county":"LOS ANGELES","city":"LOS ANGELES"},
"breakdown":{"city_tax_collectable":1.0,"county_tax_collectable":0.5,"state_tax_collectable":6.0,"country_tax_collectable":1.0}}}`

type RouterSuite struct {
	suite.Suite
	httpClient *testutil.MockHTTPClient
	router     *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	metrics.RegisterDefault()

	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()
	s.httpClient = testutil.NewMockHTTPClient()

	catalog := testutil.NewCatalog()
	catalog.Providers.Upsert(ctx, testutil.StoreID, &providerconfig.StoreProvider{
		StoreID:  testutil.StoreID,
		Alias:    string(types.SalesTaxProviderTaxJar),
		Settings: map[string]any{"sandboxToken": "sb", "testMode": true},
	})

	registry, err := integration.NewRegistry()
	s.Require().NoError(err)
	factory := integration.NewFactory(cfg, log, s.httpClient, salestax.HostServices{
		Currencies: catalog.Currencies,
		Stores:     catalog.Stores,
		TaxClasses: catalog.TaxClasses,
	}, salestax.NopFaultReporter, registry, catalog.Providers)

	svc := service.NewSalesTaxService(service.NewServiceParams(log, cfg, sentry.NewSentryService(cfg, log), catalog.Providers, factory))
	s.router = NewRouter(Handlers{
		Health:   v1.NewHealthHandler(log),
		SalesTax: v1.NewSalesTaxHandler(svc, log),
	}, cfg, log)
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) calculateRequest() dto.CalculateSalesTaxRequest {
	o, calc := testutil.NewOrder()
	return dto.CalculateSalesTaxRequest{
		Order:       o,
		Calculation: calc,
		FromAddress: testutil.USAddress(),
		ToAddress:   testutil.USDestination(),
	}
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestCalculate() {
	s.httpClient.RegisterJSONResponse(taxjar.TaxesEndpoint, http.StatusOK, taxResponseBody)

	w := s.do(http.MethodPost, "/v1/sales-tax/calculate", s.calculateRequest())
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
		Amount  struct {
			Value      decimal.Decimal `json:"value"`
			CurrencyID string          `json:"currency_id"`
		} `json:"amount"`
		Jurisdictions map[string]string `json:"jurisdictions"`
		Breakdown     []map[string]any  `json:"breakdown"`
		Outcome       string            `json:"outcome"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(strings.HasPrefix(resp.ID, "stc_"))
	s.Equal("ord_1", resp.OrderID)
	s.True(resp.Amount.Value.Equal(decimal.RequireFromString("8.5")))
	s.Equal(testutil.CurrencyUSD, resp.Amount.CurrencyID)
	s.Equal("CA", resp.Jurisdictions["state"])
	s.Len(resp.Breakdown, 4)
	s.Equal(string(types.CalculationOutcomeComputed), resp.Outcome)

	// jurisdictions keep city, county, state, country order on the wire
	body := w.Body.String()
	s.Less(strings.Index(body, `"city":`), strings.Index(body, `"county":`))
	s.Less(strings.Index(body, `"state":`), strings.Index(body, `"country":`))
}

func (s *RouterSuite) TestCalculate_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1/sales-tax/calculate", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	var resp middleware.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	s.Equal("Invalid request format", resp.Error.Display)
}

func (s *RouterSuite) TestCalculate_MissingCalculation() {
	req := s.calculateRequest()
	req.Calculation = nil

	w := s.do(http.MethodPost, "/v1/sales-tax/calculate", req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestListProviders() {
	w := s.do(http.MethodGet, "/v1/sales-tax/providers", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ListProvidersResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Items, 1)
	s.Equal(types.SalesTaxProviderTaxJar, resp.Items[0].Alias)
}

func (s *RouterSuite) TestGetStoreProvider() {
	w := s.do(http.MethodGet, "/v1/sales-tax/stores/"+testutil.StoreID+"/provider", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), `"sb"`)

	w = s.do(http.MethodGet, "/v1/sales-tax/stores/store_missing/provider", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestMetrics() {
	s.do(http.MethodGet, "/health", nil)

	w := s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "http_requests_total")
}
