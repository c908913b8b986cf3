package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/salestax/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Sentry     SentryConfig
	TaxJar     TaxJarConfig `mapstructure:"taxjar" validate:"required"`
	Catalog    CatalogConfig
	Providers  []StoreProviderConfig `validate:"dive"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// TaxJarConfig holds the TaxJar endpoints. Tokens are per store and live in
// the provider settings, not here.
type TaxJarConfig struct {
	SandboxURL    string        `mapstructure:"sandbox_url" validate:"required,url"`
	ProductionURL string        `mapstructure:"production_url" validate:"required,url"`
	Timeout       time.Duration `validate:"required"`
}

// CatalogConfig seeds the in-memory host platform data
type CatalogConfig struct {
	Currencies []CurrencySeed `validate:"dive"`
	Stores     []StoreSeed    `validate:"dive"`
	TaxClasses []TaxClassSeed `mapstructure:"tax_classes" validate:"dive"`
}

type CurrencySeed struct {
	ID   string `validate:"required"`
	Code string `validate:"required,len=3"`
}

type StoreSeed struct {
	ID                string `validate:"required"`
	Name              string
	DefaultTaxClassID string `mapstructure:"default_tax_class_id"`
}

type TaxClassSeed struct {
	ID             string `validate:"required"`
	StoreID        string `mapstructure:"store_id" validate:"required"`
	Name           string
	DefaultTaxCode string `mapstructure:"default_tax_code"`
	// TaxCodes maps "US" or "US-CA" style jurisdiction keys to a tax code
	TaxCodes map[string]string `mapstructure:"tax_codes"`
}

// StoreProviderConfig binds a store to a sales tax provider and its raw settings
type StoreProviderConfig struct {
	StoreID  string         `mapstructure:"store_id" validate:"required"`
	Alias    string         `validate:"required"`
	Settings map[string]any `mapstructure:"settings"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/salestax")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return load(v)
}

// LoadFromFile reads the configuration from an explicit file path
func LoadFromFile(path string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return load(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("SALESTAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	defaults := GetDefaultConfig()
	v.SetDefault("deployment.mode", defaults.Deployment.Mode)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("taxjar.sandbox_url", defaults.TaxJar.SandboxURL)
	v.SetDefault("taxjar.production_url", defaults.TaxJar.ProductionURL)
	v.SetDefault("taxjar.timeout", defaults.TaxJar.Timeout)
	return v
}

func load(v *viper.Viper) (*Configuration, error) {
	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		TaxJar: TaxJarConfig{
			SandboxURL:    "https://api.sandbox.taxjar.com",
			ProductionURL: "https://api.taxjar.com",
			Timeout:       30 * time.Second,
		},
	}
}
