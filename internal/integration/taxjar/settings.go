package taxjar

import (
	"github.com/flexprice/salestax/internal/config"
	"github.com/flexprice/salestax/internal/types/settings"
)

// Settings are the per store TaxJar settings
type Settings struct {
	SandboxToken string `setting:"sandboxToken"`
	LiveToken    string `setting:"liveToken"`
	TestMode     bool   `setting:"testMode"`
}

// Schema enumerates the TaxJar settings in settings form order
var Schema = settings.MustNewSchema(
	settings.Definition{
		Key:         "sandboxToken",
		SortOrder:   100,
		Label:       "Sandbox Token",
		Description: "The TaxJar Sandbox API token.",
		Kind:        settings.KindString,
		Secret:      true,
	},
	settings.Definition{
		Key:         "liveToken",
		SortOrder:   200,
		Label:       "Live Token",
		Description: "The TaxJar Live API token.",
		Kind:        settings.KindString,
		Secret:      true,
	},
	settings.Definition{
		Key:         "testMode",
		SortOrder:   10000,
		Label:       "Test Mode",
		Description: "Set whether to run in test mode.",
		Kind:        settings.KindBool,
	},
)

// Credentials are the token and base URL of one TaxJar call
type Credentials struct {
	Token   string
	BaseURL string
	Sandbox bool
}

// Credentials selects the sandbox or live token and endpoint
func (s Settings) Credentials(endpoints config.TaxJarConfig) Credentials {
	if s.TestMode {
		return Credentials{
			Token:   s.SandboxToken,
			BaseURL: orDefault(endpoints.SandboxURL, SandboxURL),
			Sandbox: true,
		}
	}
	return Credentials{
		Token:   s.LiveToken,
		BaseURL: orDefault(endpoints.ProductionURL, ProductionURL),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
