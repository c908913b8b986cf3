package providerconfig

import "context"

// StoreProvider binds a store to a sales tax provider. Settings holds the raw
// values entered for the provider's settings schema.
type StoreProvider struct {
	StoreID  string         `json:"store_id"`
	Alias    string         `json:"alias"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Repository looks up the sales tax provider configured for a store
type Repository interface {
	// GetByStore returns ErrNotFound when the store has no provider configured
	GetByStore(ctx context.Context, storeID string) (*StoreProvider, error)
}
