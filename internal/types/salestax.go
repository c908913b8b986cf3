package types

// JurisdictionLevel is the level of the authority a share of sales tax is
// attributed to.
type JurisdictionLevel string

const (
	JurisdictionLevelCity    JurisdictionLevel = "city"
	JurisdictionLevelCounty  JurisdictionLevel = "county"
	JurisdictionLevelState   JurisdictionLevel = "state"
	JurisdictionLevelCountry JurisdictionLevel = "country"
)

// JurisdictionLevels lists the levels in the order results report them
var JurisdictionLevels = []JurisdictionLevel{
	JurisdictionLevelCity,
	JurisdictionLevelCounty,
	JurisdictionLevelState,
	JurisdictionLevelCountry,
}

// SalesTaxProviderAlias identifies a registered sales tax provider
type SalesTaxProviderAlias string

const (
	SalesTaxProviderTaxJar SalesTaxProviderAlias = "taxjar"
)

// CalculationOutcome describes how a sales tax calculation ended
type CalculationOutcome string

const (
	// CalculationOutcomeComputed means the tax service returned a result
	CalculationOutcomeComputed CalculationOutcome = "computed"
	// CalculationOutcomeIneligible means the order was short-circuited to zero tax
	CalculationOutcomeIneligible CalculationOutcome = "ineligible"
	// CalculationOutcomeFailed means a fault was contained and zero tax returned
	CalculationOutcomeFailed CalculationOutcome = "failed"
	// CalculationOutcomeUnconfigured means the store has no sales tax provider
	CalculationOutcomeUnconfigured CalculationOutcome = "unconfigured"
)
