package currency

import "context"

// Currency is a host platform currency. ID is the platform's identifier,
// Code the ISO 4217 code.
type Currency struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// Service looks up currencies on the host platform
type Service interface {
	GetCurrency(ctx context.Context, id string) (*Currency, error)
}
