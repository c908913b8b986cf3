package taxclass

import (
	"context"
	"strings"
)

// TaxSource is the jurisdiction whose rules govern a sale
type TaxSource struct {
	CountryID string `json:"country_id"`
	RegionID  string `json:"region_id,omitempty"`
}

// Keys returns the lookup keys for the source from most to least specific,
// e.g. ["US-CA", "US"]
func (s TaxSource) Keys() []string {
	country := strings.ToUpper(strings.TrimSpace(s.CountryID))
	if country == "" {
		return nil
	}
	region := strings.ToUpper(strings.TrimSpace(s.RegionID))
	if region == "" {
		return []string{country}
	}
	return []string{country + "-" + region, country}
}

// TaxClass categorises products for tax purposes. TaxCodes maps jurisdiction
// keys ("US", "US-CA") to the tax code that applies there.
type TaxClass struct {
	ID             string            `json:"id"`
	StoreID        string            `json:"store_id"`
	Name           string            `json:"name"`
	DefaultTaxCode string            `json:"default_tax_code,omitempty"`
	TaxCodes       map[string]string `json:"tax_codes,omitempty"`
}

// GetTaxCode resolves the tax code of the class for a jurisdiction. The most
// specific configured code wins, then the class default. An empty string
// means no code is configured.
func (t *TaxClass) GetTaxCode(source TaxSource) string {
	if t == nil {
		return ""
	}
	for _, key := range source.Keys() {
		for k, code := range t.TaxCodes {
			if strings.EqualFold(k, key) && code != "" {
				return code
			}
		}
	}
	return t.DefaultTaxCode
}

// Service looks up tax classes on the host platform
type Service interface {
	GetTaxClasses(ctx context.Context, storeID string) ([]*TaxClass, error)
}
