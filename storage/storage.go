package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document exists under the requested key.
// Corrupt documents are reported the same way: callers treat both as "state
// absent, start fresh" rather than as a fatal condition.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable key → JSON document store. It plays the role browser
// local storage played in the original storefront: small named documents,
// read back at startup, rewritten in full on every change.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
