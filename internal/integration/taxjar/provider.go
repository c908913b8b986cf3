package taxjar

import (
	"context"
	"strings"

	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/domain/order"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/salestax"
	"github.com/flexprice/salestax/internal/types"
	"github.com/flexprice/salestax/internal/types/settings"
	"github.com/shopspring/decimal"
)

// Registration describes the TaxJar provider to a salestax.Registry
func Registration() salestax.Registration {
	return salestax.Registration{
		Alias:       types.SalesTaxProviderTaxJar,
		Label:       "TaxJar",
		Description: "TaxJar sales tax provider",
		Schema:      Schema,
		Factory:     New,
	}
}

// Provider calculates US sales tax for USD orders through TaxJar
type Provider struct {
	client    Client
	host      salestax.HostServices
	settings  Settings
	endpoints config.TaxJarConfig
	logger    *logger.Logger
	reporter  salestax.FaultReporter
}

// New is the salestax.Factory of the TaxJar provider
func New(deps salestax.Dependencies, raw map[string]any) (salestax.Provider, error) {
	s, err := settings.Decode[Settings](Schema, raw)
	if err != nil {
		return nil, err
	}
	return NewProvider(NewClient(deps.HTTPClient, deps.Logger), deps, s), nil
}

// NewProvider creates a provider around an existing client
func NewProvider(client Client, deps salestax.Dependencies, s Settings) *Provider {
	endpoints := config.TaxJarConfig{SandboxURL: SandboxURL, ProductionURL: ProductionURL}
	if deps.Config != nil {
		endpoints = deps.Config.TaxJar
	}
	reporter := deps.Reporter
	if reporter == nil {
		reporter = salestax.NopFaultReporter
	}
	log := deps.Logger
	if log == nil {
		log = logger.L
	}
	return &Provider{
		client:    client,
		host:      deps.Host,
		settings:  s,
		endpoints: endpoints,
		logger:    log,
		reporter:  reporter,
	}
}

func (p *Provider) Alias() types.SalesTaxProviderAlias {
	return types.SalesTaxProviderTaxJar
}

// IsDomestic reports whether both addresses are in the US and carry a zip code
func IsDomestic(from, to order.Address) bool {
	return types.EqualCode(from.CountryISOCode, types.CountryCodeUS) &&
		!isBlank(from.ZipCode) &&
		types.EqualCode(to.CountryISOCode, types.CountryCodeUS) &&
		!isBlank(to.ZipCode)
}

// CalculateSalesTax returns the tax TaxJar computes for the order. Orders
// that are not domestic or not in USD get zero tax without a call; every
// fault is logged, reported and turned into zero tax.
func (p *Provider) CalculateSalesTax(ctx context.Context, req *salestax.Request) (result *salestax.Result) {
	currencyID := req.Order.CurrencyID
	log := p.logger.WithContext(ctx)

	if !IsDomestic(req.FromAddress, req.ToAddress) {
		log.Debugw("order is not domestic, skipping TaxJar",
			"order_id", req.Order.ID,
			"from_country", req.FromAddress.CountryISOCode,
			"to_country", req.ToAddress.CountryISOCode)
		return salestax.NewZeroResult(currencyID, types.CalculationOutcomeIneligible)
	}

	defer func() {
		if r := recover(); r != nil {
			result = p.contain(ctx, req, &Failure{
				Stage: StagePanic,
				Err: ierr.NewErrorf("panic during TaxJar calculation: %v", r).
					Mark(ierr.ErrSystem),
			})
		}
	}()

	cur, err := p.host.Currencies.GetCurrency(ctx, currencyID)
	if err != nil {
		return p.contain(ctx, req, &Failure{Stage: StageContext, Detail: "resolving currency", Err: err})
	}
	if !types.EqualCode(cur.Code, types.CurrencyCodeUSD) {
		log.Debugw("order currency is not USD, skipping TaxJar",
			"order_id", req.Order.ID,
			"currency_code", cur.Code)
		return salestax.NewZeroResult(currencyID, types.CalculationOutcomeIneligible)
	}

	cc, err := p.host.ResolveContext(ctx, req.Order)
	if err != nil {
		return p.contain(ctx, req, &Failure{Stage: StageContext, Err: err})
	}

	taxReq, err := BuildTaxRequest(req, cc)
	if err != nil {
		return p.contain(ctx, req, &Failure{Stage: StageRequest, Err: err})
	}

	res := p.client.TaxForOrder(ctx, p.settings.Credentials(p.endpoints), taxReq)
	if !res.OK() {
		if res.Failure == nil {
			res.Failure = &Failure{Stage: StageDecode, Err: ierr.NewError("empty TaxJar result").Mark(ierr.ErrInternal)}
		}
		return p.contain(ctx, req, res.Failure)
	}

	return NormalizeTax(res.Tax, currencyID)
}

// BuildTaxRequest maps the order onto a TaxJar request
func BuildTaxRequest(req *salestax.Request, cc *salestax.CalculationContext) (*TaxRequest, error) {
	if req.Calculation == nil {
		return nil, ierr.NewError("order calculation is missing").
			WithReportableDetails(map[string]any{"order_id": req.Order.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	lineItems := make([]LineItem, 0, len(req.Order.Lines))
	for _, line := range req.Order.Lines {
		calc := req.Calculation.Line(line.ID)
		if calc == nil {
			return nil, ierr.NewErrorf("no calculation for order line %s", line.ID).
				WithReportableDetails(map[string]any{"order_id": req.Order.ID, "order_line_id": line.ID}).
				Mark(ierr.ErrInvalidOperation)
		}

		lineItems = append(lineItems, LineItem{
			ID:             line.SKU,
			Quantity:       int(line.Quantity.IntPart()),
			ProductTaxCode: cc.TaxCodeForLine(line),
			UnitPrice:      NewDecimal(calc.UnitPrice.WithoutTax),
			Discount:       NewDecimal(lineDiscount(calc.TotalPrice.TotalAdjustment.WithoutTax)),
		})
	}

	from, to := req.FromAddress, req.ToAddress
	return &TaxRequest{
		FromStreet:  from.AddressLine1,
		FromCity:    from.City,
		FromState:   from.Region,
		FromCountry: from.CountryISOCode,
		FromZip:     from.ZipCode,

		ToStreet:  to.AddressLine1,
		ToCity:    to.City,
		ToState:   to.Region,
		ToCountry: to.CountryISOCode,
		ToZip:     to.ZipCode,

		Amount:   NewDecimal(req.Calculation.SubtotalPrice.WithoutTax),
		Shipping: NewDecimal(req.Calculation.ShippingTotalPrice.WithoutTax),

		LineItems: lineItems,
	}, nil
}

// NormalizeTax converts a TaxJar tax into a result in the order currency
func NormalizeTax(tax *Tax, currencyID string) *salestax.Result {
	return &salestax.Result{
		Amount: types.NewAmount(tax.AmountToCollect, currencyID),
		Jurisdictions: salestax.Jurisdictions{
			{Level: types.JurisdictionLevelCity, Name: tax.Jurisdictions.City},
			{Level: types.JurisdictionLevelCounty, Name: tax.Jurisdictions.County},
			{Level: types.JurisdictionLevelState, Name: tax.Jurisdictions.State},
			{Level: types.JurisdictionLevelCountry, Name: tax.Jurisdictions.Country},
		},
		Breakdown: []salestax.Breakdown{
			{Amount: types.NewAmount(tax.Breakdown.CityTaxCollectable, currencyID), Level: types.JurisdictionLevelCity},
			{Amount: types.NewAmount(tax.Breakdown.CountyTaxCollectable, currencyID), Level: types.JurisdictionLevelCounty},
			{Amount: types.NewAmount(tax.Breakdown.StateTaxCollectable, currencyID), Level: types.JurisdictionLevelState},
			{Amount: types.NewAmount(tax.Breakdown.CountryTaxCollectable, currencyID), Level: types.JurisdictionLevelCountry},
		},
		Outcome: types.CalculationOutcomeComputed,
	}
}

// contain logs and reports a failure and returns zero tax
func (p *Provider) contain(ctx context.Context, req *salestax.Request, f *Failure) *salestax.Result {
	p.logger.WithContext(ctx).Errorw("Failed to calculate sales tax using TaxJar API",
		"order_id", req.Order.ID,
		"store_id", req.Order.StoreID,
		"stage", f.Stage,
		"status_code", f.StatusCode,
		"detail", f.Detail,
		"test_mode", p.settings.TestMode,
		"error", f.Err)
	p.reporter.CaptureException(ctx, f)

	return salestax.NewZeroResult(req.Order.CurrencyID, types.CalculationOutcomeFailed)
}

// lineDiscount turns a line adjustment into a TaxJar discount. Discounts are
// negative adjustments; surcharges are not discounts and send zero.
func lineDiscount(adjustment decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, adjustment.Neg())
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
