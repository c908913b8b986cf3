package salestax

import (
	"context"
	"testing"

	ierr "github.com/flexprice/salestax/internal/errors"
	"github.com/flexprice/salestax/internal/types"
	"github.com/flexprice/salestax/internal/types/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettings struct {
	Rate string `setting:"rate"`
}

type stubProvider struct {
	alias types.SalesTaxProviderAlias
	deps  Dependencies
}

func (p *stubProvider) Alias() types.SalesTaxProviderAlias { return p.alias }

func (p *stubProvider) CalculateSalesTax(ctx context.Context, req *Request) *Result {
	return NewZeroResult(req.Order.CurrencyID, types.CalculationOutcomeComputed)
}

func stubRegistration(alias types.SalesTaxProviderAlias) Registration {
	schema := settings.MustNewSchema(settings.Definition{Key: "rate", SortOrder: 1, Label: "Rate"})
	return Registration{
		Alias:  alias,
		Label:  string(alias),
		Schema: schema,
		Factory: func(deps Dependencies, raw map[string]any) (Provider, error) {
			if _, err := settings.Decode[stubSettings](schema, raw); err != nil {
				return nil, err
			}
			return &stubProvider{alias: alias, deps: deps}, nil
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubRegistration("zeta")))
	require.NoError(t, r.Register(stubRegistration("alpha")))

	reg, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, types.SalesTaxProviderAlias("alpha"), reg.Alias)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, types.SalesTaxProviderAlias("alpha"), list[0].Alias)
	assert.Equal(t, types.SalesTaxProviderAlias("zeta"), list[1].Alias)
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubRegistration("alpha")))

	err := r.Register(stubRegistration("alpha"))
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))
}

func TestRegistry_Incomplete(t *testing.T) {
	err := NewRegistry().Register(Registration{Alias: "alpha"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestRegistry_NewUnknown(t *testing.T) {
	_, err := NewRegistry().New("missing", Dependencies{}, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestRegistry_NewDefaultsDependencies(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubRegistration("alpha")))

	p, err := r.New("alpha", Dependencies{}, map[string]any{"rate": "1"})
	require.NoError(t, err)
	assert.Equal(t, types.SalesTaxProviderAlias("alpha"), p.Alias())

	stub := p.(*stubProvider)
	assert.NotNil(t, stub.deps.Logger)
	assert.Equal(t, NopFaultReporter, stub.deps.Reporter)
}

func TestRegistry_NewInvalidSettings(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubRegistration("alpha")))

	_, err := r.New("alpha", Dependencies{}, map[string]any{"unknown": "x"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
