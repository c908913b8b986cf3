package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxStoreID   ContextKey = "ctx_store_id"

	HeaderRequestID = "X-Request-ID"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetStoreID(ctx context.Context) string {
	if storeID, ok := ctx.Value(CtxStoreID).(string); ok {
		return storeID
	}
	return ""
}

// WithStoreID returns a copy of ctx carrying the store id, used for log correlation
func WithStoreID(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, CtxStoreID, storeID)
}
