// Package metadata is the client-local key/value store backed by the
// SQLite "metadata" table. Values are opaque byte slices.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes every listed key; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
