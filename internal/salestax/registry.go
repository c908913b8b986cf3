package salestax

import (
	"sort"
	"sync"

	"github.com/flexprice/salestax/internal/config"
	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/httpclient"
	"github.com/flexprice/salestax/internal/logger"
	"github.com/flexprice/salestax/internal/types"
	"github.com/flexprice/salestax/internal/types/settings"
)

// Dependencies are handed to provider factories
type Dependencies struct {
	Config     *config.Configuration
	Logger     *logger.Logger
	HTTPClient httpclient.Client
	Host       HostServices
	Reporter   FaultReporter
}

// Factory builds a provider from its raw settings
type Factory func(deps Dependencies, raw map[string]any) (Provider, error)

// Registration describes a provider to the registry
type Registration struct {
	Alias       types.SalesTaxProviderAlias
	Label       string
	Description string
	Schema      *settings.Schema
	Factory     Factory
}

// Registry maps provider aliases to their registrations
type Registry struct {
	registrations map[types.SalesTaxProviderAlias]Registration
	mu            sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[types.SalesTaxProviderAlias]Registration),
	}
}

// Register adds a provider. Aliases must be unique.
func (r *Registry) Register(reg Registration) error {
	if reg.Alias == "" || reg.Factory == nil || reg.Schema == nil {
		return ierr.NewError("incomplete provider registration").
			WithHintf("Provider %q must declare an alias, a settings schema and a factory", reg.Alias).
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.registrations[reg.Alias]; exists {
		return ierr.NewErrorf("provider %s already registered", reg.Alias).
			Mark(ierr.ErrAlreadyExists)
	}

	r.registrations[reg.Alias] = reg
	return nil
}

// Get retrieves a registration by alias
func (r *Registry) Get(alias types.SalesTaxProviderAlias) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, exists := r.registrations[alias]
	if !exists {
		return Registration{}, ierr.NewErrorf("provider %s not found", alias).
			WithHintf("Sales tax provider %q is not supported", alias).
			Mark(ierr.ErrNotFound)
	}
	return reg, nil
}

// List returns all registrations ordered by alias
func (r *Registry) List() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]Registration, 0, len(r.registrations))
	for _, reg := range r.registrations {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].Alias < regs[j].Alias
	})
	return regs
}

// New builds the provider registered under alias
func (r *Registry) New(alias types.SalesTaxProviderAlias, deps Dependencies, raw map[string]any) (Provider, error) {
	reg, err := r.Get(alias)
	if err != nil {
		return nil, err
	}

	if deps.Reporter == nil {
		deps.Reporter = NopFaultReporter
	}
	if deps.Logger == nil {
		deps.Logger = logger.L
	}

	provider, err := reg.Factory(deps, raw)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid settings for sales tax provider %q", alias).
			Mark(ierr.ErrValidation)
	}
	return provider, nil
}
