// Package sessionstore persists small key/value state for the client
// between runs, most importantly the serialized session identity.
package sessionstore

import "context"

// Repository is a durable key-value store. Get returns (nil, nil) for a
// missing key; absence is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
