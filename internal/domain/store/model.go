package store

import "context"

// Store is a host platform store. DefaultTaxClassID is empty when the store
// has no default tax class.
type Store struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DefaultTaxClassID string `json:"default_tax_class_id,omitempty"`
}

// HasDefaultTaxClass reports whether the store has a default tax class configured
func (s *Store) HasDefaultTaxClass() bool {
	return s != nil && s.DefaultTaxClassID != ""
}

// Service looks up stores on the host platform
type Service interface {
	GetStore(ctx context.Context, id string) (*Store, error)
}
